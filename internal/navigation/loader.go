package navigation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/codemateteam/php-handbook-sub005/internal/model"
)

// Format selects the decoder used for a site config.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the decoder from the file extension. Anything that is
// not .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadFile reads and validates the site config at path.
func LoadFile(path string) (model.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SiteConfig{}, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	cfg, err := Load(data, FormatFromPath(path))
	if err != nil {
		var parseErr *ConfigParseError
		if errors.As(err, &parseErr) {
			parseErr.Source = path
		}
		return model.SiteConfig{}, err
	}
	return cfg, nil
}

// Load decodes a site config and validates it. Decoding failures and missing
// or malformed required fields are reported as *ConfigParseError. The
// sidebar is kept exactly as declared: no section or item is dropped or
// reordered.
func Load(data []byte, format Format) (model.SiteConfig, error) {
	var cfg model.SiteConfig

	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case FormatYAML, "":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return model.SiteConfig{}, fmt.Errorf("unsupported site config format %q", format)
	}
	if err != nil {
		return model.SiteConfig{}, syntaxError(err)
	}

	applyDefaults(&cfg)

	if err := validateSite(&cfg); err != nil {
		return model.SiteConfig{}, validationError(err)
	}
	return cfg, nil
}

func applyDefaults(cfg *model.SiteConfig) {
	cfg.Title = strings.TrimSpace(cfg.Title)
	if cfg.Base == "" {
		cfg.Base = "/"
	}
	if !strings.HasSuffix(cfg.Base, "/") {
		cfg.Base += "/"
	}

	theme := &cfg.ThemeConfig
	if theme.SiteTitle == "" {
		theme.SiteTitle = cfg.Title
	}
	if theme.DocFooter.Prev == "" {
		theme.DocFooter.Prev = "Previous page"
	}
	if theme.DocFooter.Next == "" {
		theme.DocFooter.Next = "Next page"
	}
	if theme.OutlineTitle == "" {
		theme.OutlineTitle = "On this page"
	}
	if theme.Outline.Label == "" {
		theme.Outline.Label = theme.OutlineTitle
	}
	if theme.LastUpdated.Text == "" {
		theme.LastUpdated.Text = "Last updated"
	}
	if theme.LastUpdated.Format == "" {
		theme.LastUpdated.Format = "2006-01-02"
	}
	if theme.NotFound.Title == "" {
		theme.NotFound.Title = "PAGE NOT FOUND"
	}
	if theme.NotFound.LinkText == "" {
		theme.NotFound.LinkText = "Take me home"
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codemateteam/php-handbook-sub005/internal/config"
	"github.com/codemateteam/php-handbook-sub005/internal/content"
	"github.com/codemateteam/php-handbook-sub005/internal/linkcheck"
	"github.com/codemateteam/php-handbook-sub005/internal/logging"
	"github.com/codemateteam/php-handbook-sub005/internal/model"
	"github.com/codemateteam/php-handbook-sub005/internal/navigation"
	"github.com/codemateteam/php-handbook-sub005/internal/render"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts and static assets",
	Long: `The build command loads the site config, collects the Markdown chapters
from the content directory, checks internal links, copies static assets and
renders every page with its sidebar and previous/next links into the output
directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuildProcess(cmd.Context(), appConfig, logs.GetLogger("build"))
		return err
	},
}

// buildResult is what a finished build knows about the site.
type buildResult struct {
	Site  model.SiteConfig
	Nav   *navigation.Model
	Pages int
}

func runBuildProcess(ctx context.Context, cfg config.Config, logger logging.Logger) (*buildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	logger.Info("build.started", "site", cfg.SiteConfig, "content", cfg.ContentDir, "out", cfg.OutputDir)

	site, err := navigation.LoadFile(cfg.SiteConfig)
	if err != nil {
		return nil, navigation.Categorize(err)
	}
	nav := navigation.New(site)
	logger.Info("build.site_loaded", "title", site.Title, "base", site.Base,
		"sections", len(site.ThemeConfig.Sidebar), "pages", nav.Len())

	docs, err := content.Collect(cfg.ContentDir, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("build.content_collected", "documents", len(docs))

	idx := content.NewIndex(docs)
	ignore := site.DeadLinksIgnored() && !cfg.StrictLinks
	if err := linkcheck.Enforce(linkcheck.Check(site, idx), ignore, logger); err != nil {
		return nil, err
	}

	outputDir := cfg.OutputDir
	if err := os.RemoveAll(outputDir); err != nil {
		return nil, fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	if err := render.CopyStatic(cfg.StaticDir, outputDir, logger); err != nil {
		return nil, err
	}

	renderer, err := render.New(nav, render.Options{
		LayoutsDir: cfg.LayoutsDir,
		Workers:    cfg.Workers,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	if err := renderer.RenderSite(ctx, docs, outputDir); err != nil {
		return nil, err
	}

	logger.Info("build.completed", "pages", len(docs), "duration", time.Since(started).String())
	return &buildResult{Site: site, Nav: nav, Pages: len(docs)}, nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

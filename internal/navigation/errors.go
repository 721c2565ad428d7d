package navigation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// ErrConfigParse matches every *ConfigParseError via errors.Is.
var ErrConfigParse = errors.New("site config parse error")

const siteConfigInvalidCode = "SITE_CONFIG_INVALID"

// Issue is one problem found in the site config. Path is a dotted field path
// such as themeConfig.sidebar[0].items[1].link; it is empty for syntax
// errors that cannot be pinned to a field.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ConfigParseError reports a site config that could not be decoded or that
// is missing required fields. A build must not proceed past it.
type ConfigParseError struct {
	Source string
	Issues []Issue
	Cause  error
}

func (e *ConfigParseError) Error() string {
	var b strings.Builder
	b.WriteString("invalid site config")
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
	}
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			b.WriteString(": ")
			b.WriteString(e.Cause.Error())
		}
		return b.String()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	b.WriteString(": ")
	b.WriteString(strings.Join(parts, "; "))
	return b.String()
}

func (e *ConfigParseError) Unwrap() error { return e.Cause }

func (e *ConfigParseError) Is(target error) bool { return target == ErrConfigParse }

// Categorize tags site config failures with the validation category so the
// CLI can tell user mistakes apart from I/O failures. Other errors pass
// through untouched.
func Categorize(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	var parseErr *ConfigParseError
	if !errors.As(err, &parseErr) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "site config invalid").
		WithTextCode(siteConfigInvalidCode)
}

func syntaxError(err error) *ConfigParseError {
	return &ConfigParseError{
		Issues: []Issue{{Message: err.Error()}},
		Cause:  err,
	}
}

func validationError(err error) *ConfigParseError {
	issues := collectIssues("", err, nil)
	return &ConfigParseError{Issues: issues, Cause: err}
}

// collectIssues walks nested validation.Errors depth first with sorted keys
// so the issue order is stable between runs.
func collectIssues(prefix string, err error, out []Issue) []Issue {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return append(out, Issue{Path: prefix, Message: err.Error()})
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aErr := strconv.Atoi(keys[i])
		b, bErr := strconv.Atoi(keys[j])
		if aErr == nil && bErr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if errs[k] == nil {
			continue
		}
		out = collectIssues(joinPath(prefix, k), errs[k], out)
	}
	return out
}

func joinPath(prefix, key string) string {
	if _, err := strconv.Atoi(key); err == nil {
		return fmt.Sprintf("%s[%s]", prefix, key)
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

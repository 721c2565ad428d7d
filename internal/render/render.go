// Package render turns collected documents plus the navigation model into
// HTML pages.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codemateteam/php-handbook-sub005/internal/logging"
	"github.com/codemateteam/php-handbook-sub005/internal/model"
	"github.com/codemateteam/php-handbook-sub005/internal/navigation"
)

//go:embed templates/*.html
var defaultLayouts embed.FS

const (
	pageLayout     = "page.html"
	notFoundLayout = "404.html"
)

// Renderer executes page layouts. It only reads the navigation model, so a
// single Renderer serves all pages of a build concurrently.
type Renderer struct {
	nav       *navigation.Model
	templates *template.Template
	logger    logging.Logger
	workers   int
}

// Options tune a Renderer. LayoutsDir may be empty or missing, in which case
// only the embedded layouts are used.
type Options struct {
	LayoutsDir string
	Workers    int
	Logger     logging.Logger
}

// New parses the embedded layouts and then any .html file under
// opts.LayoutsDir, so a site can override a whole layout or a single
// {{define}} block such as "sidebar".
func New(nav *navigation.Model, opts Options) (*Renderer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	base := nav.Base()
	funcs := template.FuncMap{
		"href":     func(link string) string { return navigation.ResolvePath(link, base) },
		"headTags": headTags,
	}

	templates, err := template.New("site").Funcs(funcs).ParseFS(defaultLayouts, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded layouts: %w", err)
	}

	overrides, err := layoutFiles(opts.LayoutsDir)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		templates, err = templates.ParseFiles(overrides...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layout files: %w", err)
		}
		logger.Info("render.layouts_loaded", "dir", opts.LayoutsDir, "files", len(overrides))
	}

	return &Renderer{nav: nav, templates: templates, logger: logger, workers: workers}, nil
}

// layoutFiles lists the .html files of dir, partials first so that top level
// layouts parsed afterwards win on name clashes.
func layoutFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	var partials, layouts []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		if filepath.Dir(path) == filepath.Clean(dir) {
			layouts = append(layouts, path)
		} else {
			partials = append(partials, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files in '%s': %w", dir, err)
	}
	return append(partials, layouts...), nil
}

// RenderSite writes one index.html per document plus 404.html into outDir.
func (r *Renderer) RenderSite(ctx context.Context, docs []*model.Document, outDir string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := filepath.Join(outDir, OutputPath(doc.Route))
			if err := r.writePage(target, r.layoutFor(doc), r.Page(doc)); err != nil {
				return fmt.Errorf("failed to render '%s': %w", doc.SourcePath, err)
			}
			r.logger.Debug("render.page_written", "route", doc.Route, "file", target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return r.writePage(filepath.Join(outDir, "404.html"), notFoundLayout, r.NotFound())
}

// OutputPath maps a route to the file it is written to, relative to the
// output dir: /guide/intro -> guide/intro/index.html, / -> index.html.
func OutputPath(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(route), "index.html")
}

func (r *Renderer) layoutFor(doc *model.Document) string {
	if doc.Layout != "" {
		name := doc.Layout
		if !strings.HasSuffix(name, ".html") {
			name += ".html"
		}
		if r.templates.Lookup(name) != nil {
			return name
		}
		r.logger.Warn("render.layout_missing", "layout", doc.Layout, "path", doc.SourcePath, "fallback", pageLayout)
	}
	return pageLayout
}

func (r *Renderer) writePage(target, layout string, data model.PageData) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, layout, data); err != nil {
		return fmt.Errorf("failed to execute template '%s': %w", layout, err)
	}
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", target, err)
	}
	return nil
}

// headTags renders the configured <head> extras. Attribute order is sorted
// so output is reproducible.
func headTags(tags []model.HeadTag) template.HTML {
	var b strings.Builder
	for _, tag := range tags {
		name := html.EscapeString(tag.Tag)
		b.WriteString("<" + name)
		keys := make([]string, 0, len(tag.Attrs))
		for k := range tag.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, ` %s="%s"`, html.EscapeString(k), html.EscapeString(tag.Attrs[k]))
		}
		b.WriteString(">")
		switch strings.ToLower(tag.Tag) {
		case "meta", "link", "base":
		default:
			b.WriteString(html.EscapeString(tag.Content))
			b.WriteString("</" + name + ">")
		}
		b.WriteString("\n")
	}
	return template.HTML(b.String())
}

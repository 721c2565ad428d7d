// Package content collects the Markdown chapters of the site.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/codemateteam/php-handbook-sub005/internal/logging"
	"github.com/codemateteam/php-handbook-sub005/internal/model"
)

// NewMarkdown returns the goldmark engine used for every chapter.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// Collect walks dir for .md files and returns them sorted by route.
func Collect(dir string, logger logging.Logger) ([]*model.Document, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("content directory '%s' not found. Please create it and add your Markdown files", dir)
	}

	md := NewMarkdown()
	var docs []*model.Document

	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", p, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", p, err)
		}
		source, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", p, err)
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat file '%s': %w", p, err)
		}

		doc, err := Parse(md, filepath.ToSlash(rel), source, logger)
		if err != nil {
			return err
		}
		doc.Modified = info.ModTime()
		docs = append(docs, doc)
		logger.Debug("content.collected", "path", doc.SourcePath, "route", doc.Route)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", walkErr)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Route < docs[j].Route })
	return docs, nil
}

// Parse turns one Markdown source into a Document. rel is the slash
// separated path relative to the content dir.
func Parse(md goldmark.Markdown, rel string, source []byte, logger logging.Logger) (*model.Document, error) {
	if logger == nil {
		logger = logging.NoOp()
	}

	var fm map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &fm)
	if err != nil {
		logger.Warn("content.frontmatter_invalid", "path", rel, "error", err)
		body = source
		fm = nil
	}
	if fm == nil {
		fm = make(map[string]interface{})
	}

	reader := text.NewReader(body)
	root := md.Parser().Parse(reader)

	var headings []model.Heading
	var links []string
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			h := model.Heading{Level: node.Level, Text: string(node.Text(body))}
			if id, ok := node.AttributeString("id"); ok {
				if b, ok := id.([]byte); ok {
					h.ID = string(b)
				}
			}
			headings = append(headings, h)
		case *ast.Link:
			links = append(links, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to inspect markdown for file '%s': %w", rel, err)
	}

	var html bytes.Buffer
	if err := md.Renderer().Render(&html, body, root); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", rel, err)
	}

	doc := &model.Document{
		SourcePath:  rel,
		Route:       RouteFor(rel),
		ContentHTML: template.HTML(html.String()),
		Frontmatter: fm,
		Headings:    headings,
		Links:       links,
	}
	doc.Title = pageTitle(fm, headings, rel)
	if s, ok := fm["description"].(string); ok {
		doc.Description = s
	}
	if s, ok := fm["layout"].(string); ok {
		doc.Layout = s
	}
	return doc, nil
}

// RouteFor maps a content path to its site route:
// guide/intro.md -> /guide/intro, guide/index.md -> /guide/, index.md -> /.
func RouteFor(rel string) string {
	rel = strings.TrimSuffix(filepath.ToSlash(rel), path.Ext(rel))
	if rel == "index" {
		return "/"
	}
	if strings.HasSuffix(rel, "/index") {
		return "/" + strings.TrimSuffix(rel, "index")
	}
	return "/" + rel
}

func pageTitle(fm map[string]interface{}, headings []model.Heading, rel string) string {
	if title, ok := fm["title"].(string); ok && title != "" {
		return title
	}
	for _, h := range headings {
		if h.Level == 1 && h.Text != "" {
			return h.Text
		}
	}
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if base == "index" {
		if dir := path.Base(path.Dir(rel)); dir != "." && dir != "/" {
			base = dir
		}
	}
	words := strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return cases.Title(language.English).String(words)
}

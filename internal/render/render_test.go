package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/codemateteam/php-handbook-sub005/internal/model"
	"github.com/codemateteam/php-handbook-sub005/internal/navigation"
)

func testSite() model.SiteConfig {
	return model.SiteConfig{
		Title: "PHP Handbook",
		Lang:  "en-US",
		Base:  "/php-handbook/",
		Head: []model.HeadTag{
			{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/favicon.ico"}},
		},
		ThemeConfig: model.ThemeConfig{
			SiteTitle: "PHP Handbook",
			Nav:       []model.NavItem{{Text: "Roadmap", Link: "/roadmap"}},
			Sidebar: []model.NavSection{
				{Title: "A", Items: []model.NavItem{
					{Text: "One", Link: "/a/1"},
					{Text: "Two", Link: "/a/2"},
				}},
				{Title: "B", Collapsed: true, Items: []model.NavItem{
					{Text: "Three", Link: "/b/3"},
				}},
			},
			EditLink:    &model.EditLink{Pattern: "https://github.com/x/y/edit/main/docs/:path", Text: "Edit"},
			Outline:     model.Outline{Level: []int{2, 3}, Label: "On this page"},
			DocFooter:   model.DocFooter{Prev: "Previous page", Next: "Next page"},
			LastUpdated: model.LastUpdated{Text: "Last updated", Format: "2006-01-02"},
			NotFound:    model.NotFound{Title: "PAGE NOT FOUND", LinkText: "Take me home"},
		},
	}
}

func testDocs() []*model.Document {
	modified := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []*model.Document{
		{Title: "One", Route: "/a/1", SourcePath: "a/1.md", ContentHTML: "<p>one</p>", Modified: modified},
		{Title: "Two", Route: "/a/2", SourcePath: "a/2.md", ContentHTML: "<p>two</p>", Modified: modified,
			Headings: []model.Heading{
				{Level: 1, Text: "Two", ID: "two"},
				{Level: 2, Text: "Usage", ID: "usage"},
				{Level: 4, Text: "Deep", ID: "deep"},
			}},
		{Title: "Three", Route: "/b/3", SourcePath: "b/3.md", ContentHTML: "<p>three</p>",
			Frontmatter: map[string]interface{}{"prev": false, "editLink": false}},
	}
}

func newRenderer(t *testing.T, layoutsDir string) *Renderer {
	t.Helper()
	r, err := New(navigation.New(testSite()), Options{LayoutsDir: layoutsDir, Workers: 2})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestPageData(t *testing.T) {
	r := newRenderer(t, "")
	docs := testDocs()

	data := r.Page(docs[1])
	if data.PageTitle != "Two | PHP Handbook" {
		t.Fatalf("unexpected title %q", data.PageTitle)
	}
	if data.Prev == nil || data.Prev.Href != "/php-handbook/a/1" || data.Prev.Label != "Previous page" {
		t.Fatalf("unexpected prev %+v", data.Prev)
	}
	if data.Next == nil || data.Next.Href != "/php-handbook/b/3" || data.Next.Text != "Three" {
		t.Fatalf("unexpected next %+v", data.Next)
	}
	if len(data.Outline) != 1 || data.Outline[0].ID != "usage" {
		t.Fatalf("unexpected outline %+v", data.Outline)
	}
	if data.EditURL != "https://github.com/x/y/edit/main/docs/a/2.md" {
		t.Fatalf("unexpected edit url %q", data.EditURL)
	}
	if data.LastUpdated != "2024-05-01" {
		t.Fatalf("unexpected last updated %q", data.LastUpdated)
	}
	if !data.Sidebar[0].Active || !data.Sidebar[0].Items[1].Active || data.Sidebar[0].Items[0].Active {
		t.Fatalf("unexpected active flags %+v", data.Sidebar[0])
	}
	if !data.Sidebar[1].Collapsed {
		t.Fatal("inactive collapsed section must stay collapsed")
	}

	first := r.Page(docs[0])
	if first.Prev != nil {
		t.Fatalf("first page must not have prev, got %+v", first.Prev)
	}

	last := r.Page(docs[2])
	if last.Next != nil || last.Prev != nil {
		t.Fatalf("last page: expected no pager links, got prev=%+v next=%+v", last.Prev, last.Next)
	}
	if last.EditURL != "" {
		t.Fatalf("editLink: false must hide the edit link, got %q", last.EditURL)
	}
	if last.Sidebar[1].Collapsed {
		t.Fatal("collapsed section holding the active page must open")
	}
}

func TestPagerMatchesIndexRoutes(t *testing.T) {
	site := testSite()
	site.ThemeConfig.Sidebar[0].Items[1].Link = "/a"
	r, err := New(navigation.New(site), Options{})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	data := r.Page(&model.Document{Title: "A", Route: "/a/", SourcePath: "a/index.md"})
	if data.Prev == nil || data.Prev.Href != "/php-handbook/a/1" {
		t.Fatalf("expected /a/ to match sidebar link /a, got prev=%+v", data.Prev)
	}
	if !data.Sidebar[0].Items[1].Active {
		t.Fatal("expected sidebar link /a to be active on /a/")
	}
}

func TestRenderSiteWritesPages(t *testing.T) {
	r := newRenderer(t, "")
	out := t.TempDir()

	if err := r.RenderSite(context.Background(), testDocs(), out); err != nil {
		t.Fatalf("render: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(out, "a", "2", "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	html := string(page)
	for _, want := range []string{
		`<html lang="en-US">`,
		`<link href="/favicon.ico" rel="icon">`,
		`<p>two</p>`,
		`href="/php-handbook/a/1"`,
		`href="/php-handbook/b/3"`,
		`href="/php-handbook/roadmap"`,
		`aria-current="page"`,
		`https://github.com/x/y/edit/main/docs/a/2.md`,
		`<a href="#usage">Usage</a>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected page to contain %q:\n%s", want, html)
		}
	}

	for _, rel := range []string{"a/1/index.html", "b/3/index.html", "404.html"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("expected %s: %v", rel, err)
		}
	}
	notFound, err := os.ReadFile(filepath.Join(out, "404.html"))
	if err != nil {
		t.Fatalf("read 404: %v", err)
	}
	if !strings.Contains(string(notFound), "PAGE NOT FOUND") {
		t.Fatalf("unexpected 404 page:\n%s", notFound)
	}
}

func TestRenderSiteHonoursCancellation(t *testing.T) {
	r := newRenderer(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.RenderSite(ctx, testDocs(), t.TempDir()); err == nil {
		t.Fatal("expected cancelled render to fail")
	}
}

func TestLayoutOverrides(t *testing.T) {
	layouts := t.TempDir()
	custom := `<main>{{.PageTitle}}|{{.Content}}</main>`
	if err := os.WriteFile(filepath.Join(layouts, "wide.html"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(layouts, "partials"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	sidebar := `{{define "sidebar"}}<aside>custom sidebar</aside>{{end}}`
	if err := os.WriteFile(filepath.Join(layouts, "partials", "sidebar.html"), []byte(sidebar), 0o644); err != nil {
		t.Fatalf("write partial: %v", err)
	}

	r := newRenderer(t, layouts)
	docs := testDocs()
	docs[0].Layout = "wide"
	docs[1].Layout = "missing"
	out := t.TempDir()
	if err := r.RenderSite(context.Background(), docs, out); err != nil {
		t.Fatalf("render: %v", err)
	}

	wide, _ := os.ReadFile(filepath.Join(out, "a", "1", "index.html"))
	if string(wide) != "<main>One | PHP Handbook|<p>one</p></main>" {
		t.Fatalf("unexpected custom layout output %q", wide)
	}
	fallback, _ := os.ReadFile(filepath.Join(out, "a", "2", "index.html"))
	if !strings.Contains(string(fallback), "custom sidebar") {
		t.Fatalf("expected overridden sidebar block in fallback layout:\n%s", fallback)
	}
}

func TestOutputPath(t *testing.T) {
	cases := map[string]string{
		"/":          "index.html",
		"/roadmap":   filepath.Join("roadmap", "index.html"),
		"/laravel/":  filepath.Join("laravel", "index.html"),
		"/php/types": filepath.Join("php", "types", "index.html"),
	}
	for route, want := range cases {
		if got := OutputPath(route); got != want {
			t.Fatalf("OutputPath(%q) = %q, want %q", route, got, want)
		}
	}
}

package model

import (
	"html/template"
	"time"
)

// Document is a single Markdown chapter after frontmatter extraction and
// rendering.
type Document struct {
	Title       string
	Description string
	SourcePath  string // relative to the content dir, slash separated
	Route       string // site-relative route without base, e.g. /guide/intro
	ContentHTML template.HTML
	Frontmatter map[string]interface{}
	Headings    []Heading
	Links       []string // raw link destinations found in the body
	Layout      string
	Modified    time.Time
}

// Heading is a rendered heading with its generated anchor id.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// SidebarSection is a NavSection prepared for one particular page.
type SidebarSection struct {
	Title     string
	Collapsed bool
	Active    bool
	Items     []SidebarItem
}

type SidebarItem struct {
	Text   string
	Href   string
	Active bool
	Items  []SidebarItem
}

// PageLink is a resolved prev/next target.
type PageLink struct {
	Label string
	Text  string
	Href  string
}

// PageData is the template context for a single rendered page.
type PageData struct {
	Site        *SiteConfig
	Doc         *Document
	SiteTitle   string
	PageTitle   string
	Content     template.HTML
	Base        string
	Nav         []SidebarItem
	Sidebar     []SidebarSection
	Outline     []Heading
	Prev        *PageLink
	Next        *PageLink
	EditURL     string
	LastUpdated string
}

package render

import (
	"strings"

	"github.com/codemateteam/php-handbook-sub005/internal/model"
	"github.com/codemateteam/php-handbook-sub005/internal/navigation"
)

// Page builds the template context for doc.
func (r *Renderer) Page(doc *model.Document) model.PageData {
	site := r.nav.Site()
	theme := site.ThemeConfig

	data := r.chrome(&site, doc.Route)
	data.Doc = doc
	data.Content = doc.ContentHTML
	data.PageTitle = doc.Title
	if doc.Title != "" && doc.Title != site.Title {
		data.PageTitle = doc.Title + " | " + site.Title
	}

	minLevel, maxLevel := theme.Outline.Levels()
	for _, h := range doc.Headings {
		if h.Level >= minLevel && h.Level <= maxLevel && h.ID != "" {
			data.Outline = append(data.Outline, h)
		}
	}

	prev, next, _ := r.nav.Pager(doc.Route)
	if prev != nil && enabled(doc.Frontmatter, "prev") {
		data.Prev = &model.PageLink{Label: theme.DocFooter.Prev, Text: prev.Text, Href: r.nav.Resolve(*prev)}
	}
	if next != nil && enabled(doc.Frontmatter, "next") {
		data.Next = &model.PageLink{Label: theme.DocFooter.Next, Text: next.Text, Href: r.nav.Resolve(*next)}
	}

	if theme.EditLink != nil && enabled(doc.Frontmatter, "editLink") {
		data.EditURL = strings.ReplaceAll(theme.EditLink.Pattern, ":path", doc.SourcePath)
	}
	if !doc.Modified.IsZero() && enabled(doc.Frontmatter, "lastUpdated") {
		data.LastUpdated = doc.Modified.Format(theme.LastUpdated.Format)
	}
	return data
}

// NotFound builds the context for 404.html.
func (r *Renderer) NotFound() model.PageData {
	site := r.nav.Site()
	data := r.chrome(&site, "")
	data.PageTitle = "404 | " + site.Title
	return data
}

func (r *Renderer) chrome(site *model.SiteConfig, route string) model.PageData {
	data := model.PageData{
		Site:      site,
		SiteTitle: site.ThemeConfig.SiteTitle,
		Base:      site.Base,
	}
	data.Nav = r.items(site.ThemeConfig.Nav, route)
	for _, section := range site.ThemeConfig.Sidebar {
		items := r.items(section.Items, route)
		active := anyActive(items)
		data.Sidebar = append(data.Sidebar, model.SidebarSection{
			Title:     section.Title,
			Collapsed: section.Collapsed && !active,
			Active:    active,
			Items:     items,
		})
	}
	return data
}

func (r *Renderer) items(items []model.NavItem, route string) []model.SidebarItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]model.SidebarItem, 0, len(items))
	for _, item := range items {
		out = append(out, model.SidebarItem{
			Text:   item.Text,
			Href:   r.nav.Resolve(item),
			Active: route != "" && item.Link != "" && navigation.SamePage(item.Link, route),
			Items:  r.items(item.Items, route),
		})
	}
	return out
}

func anyActive(items []model.SidebarItem) bool {
	for _, item := range items {
		if item.Active || anyActive(item.Items) {
			return true
		}
	}
	return false
}

// enabled reads an opt-out flag from frontmatter: only an explicit false
// disables the feature.
func enabled(fm map[string]interface{}, key string) bool {
	v, ok := fm[key].(bool)
	return !ok || v
}

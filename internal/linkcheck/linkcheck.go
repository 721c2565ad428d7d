// Package linkcheck finds internal links that point at no content document.
//
// Whether dead links fail a build is a site policy: ignoreDeadLinks in the
// site config defaults to true, in which case findings are only logged.
package linkcheck

import (
	"fmt"
	"path"
	"strings"

	"github.com/codemateteam/php-handbook-sub005/internal/content"
	"github.com/codemateteam/php-handbook-sub005/internal/logging"
	"github.com/codemateteam/php-handbook-sub005/internal/model"
	"github.com/codemateteam/php-handbook-sub005/internal/navigation"
)

// DeadLink is an internal link without a matching document. Source is
// "sidebar", "nav" or the content path of the page containing the link.
type DeadLink struct {
	Source string
	Link   string
}

func (d DeadLink) String() string { return fmt.Sprintf("%s -> %s", d.Source, d.Link) }

// DeadLinkError fails a build that does not tolerate dead links.
type DeadLinkError struct {
	Links []DeadLink
}

func (e *DeadLinkError) Error() string {
	parts := make([]string, 0, len(e.Links))
	for _, l := range e.Links {
		parts = append(parts, l.String())
	}
	return fmt.Sprintf("found %d dead link(s): %s", len(e.Links), strings.Join(parts, ", "))
}

// Check returns every dead link in the sidebar, the top nav and the
// documents themselves, in that order.
func Check(site model.SiteConfig, idx *content.Index) []DeadLink {
	var dead []DeadLink

	for _, item := range navigation.Flatten(site) {
		if isCheckable(item.Link) {
			if _, ok := idx.Lookup(item.Link); !ok {
				dead = append(dead, DeadLink{Source: "sidebar", Link: item.Link})
			}
		}
	}
	dead = checkNav("nav", site.ThemeConfig.Nav, idx, dead)

	for _, doc := range idx.Docs() {
		for _, link := range doc.Links {
			target := ResolveRelative(doc.Route, link)
			if !isCheckable(target) {
				continue
			}
			if _, ok := idx.Lookup(target); !ok {
				dead = append(dead, DeadLink{Source: doc.SourcePath, Link: link})
			}
		}
	}
	return dead
}

func checkNav(source string, items []model.NavItem, idx *content.Index, dead []DeadLink) []DeadLink {
	for _, item := range items {
		if isCheckable(item.Link) {
			if _, ok := idx.Lookup(item.Link); !ok {
				dead = append(dead, DeadLink{Source: source, Link: item.Link})
			}
		}
		dead = checkNav(source, item.Items, idx, dead)
	}
	return dead
}

// Enforce applies the dead link policy. With ignore set the findings are
// logged at debug level and the build continues.
func Enforce(dead []DeadLink, ignore bool, logger logging.Logger) error {
	if len(dead) == 0 {
		return nil
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	if ignore {
		for _, d := range dead {
			logger.Debug("linkcheck.dead_link_ignored", "source", d.Source, "link", d.Link)
		}
		return nil
	}
	for _, d := range dead {
		logger.Error("linkcheck.dead_link", "source", d.Source, "link", d.Link)
	}
	return &DeadLinkError{Links: dead}
}

// ResolveRelative turns a link found on the page at route into a
// site-relative path. External links and pure fragments come back as-is.
func ResolveRelative(route, link string) string {
	if link == "" || strings.HasPrefix(link, "#") || strings.HasPrefix(link, "/") || navigation.IsExternal(link) {
		return link
	}
	dir := route
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir)
	}
	suffix := ""
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link, suffix = link[:i], link[i:]
	}
	joined := path.Join(dir, link)
	if strings.HasSuffix(link, "/") && joined != "/" {
		joined += "/"
	}
	return joined + suffix
}

// isCheckable limits checks to internal page links. Asset links such as
// /images/diagram.png are served from the static dir and are skipped.
func isCheckable(link string) bool {
	if link == "" || !strings.HasPrefix(link, "/") || navigation.IsExternal(link) {
		return false
	}
	p := link
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch path.Ext(p) {
	case "", ".md", ".html":
		return true
	default:
		return false
	}
}

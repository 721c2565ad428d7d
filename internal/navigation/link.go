package navigation

import (
	"net/url"
	"strings"

	"github.com/codemateteam/php-handbook-sub005/internal/model"
)

// IsExternal reports whether link is scheme-qualified (https://…, mailto:…)
// or protocol-relative.
func IsExternal(link string) bool {
	if strings.HasPrefix(link, "//") {
		return true
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

// allowedSchemes are the URL schemes a config may link to.
var allowedSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

func validLink(link string) bool {
	if strings.HasPrefix(link, "//") {
		return true
	}
	if IsExternal(link) {
		u, err := url.Parse(link)
		return err == nil && allowedSchemes[u.Scheme]
	}
	if !strings.HasPrefix(link, "/") {
		return false
	}
	_, err := url.Parse(link)
	return err == nil
}

// ResolveLink prefixes site-relative links with base. External links are
// returned unchanged.
func ResolveLink(item model.NavItem, base string) string {
	return resolve(item.Link, base)
}

func resolve(link, base string) string {
	if link == "" || IsExternal(link) || !strings.HasPrefix(link, "/") {
		return link
	}
	return strings.TrimSuffix(base, "/") + link
}

// ResolvePath is ResolveLink for a bare path.
func ResolvePath(link, base string) string {
	return resolve(link, base)
}

// NormalizeLink reduces a site-relative link to the form used for page
// matching: query and fragment dropped, .md and .html suffixes dropped and
// a trailing /index collapsed to /.
func NormalizeLink(link string) string {
	if IsExternal(link) {
		return link
	}
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	for _, ext := range []string{".md", ".html"} {
		link = strings.TrimSuffix(link, ext)
	}
	if strings.HasSuffix(link, "/index") {
		link = strings.TrimSuffix(link, "index")
	}
	if link == "" {
		return "/"
	}
	return link
}

// PageKey is the key two links share when they point at the same page: the
// normalized link without a trailing slash, so /laravel, /laravel/ and
// /laravel/index.md all map to /laravel. External links are returned as-is.
func PageKey(link string) string {
	if IsExternal(link) {
		return link
	}
	key := NormalizeLink(link)
	if key != "/" {
		key = strings.TrimSuffix(key, "/")
	}
	return key
}

// SamePage reports whether two site-relative links point at the same page.
func SamePage(a, b string) bool {
	if IsExternal(a) || IsExternal(b) {
		return false
	}
	return PageKey(a) == PageKey(b)
}

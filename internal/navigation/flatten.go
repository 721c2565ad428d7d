package navigation

import (
	"github.com/codemateteam/php-handbook-sub005/internal/model"
)

// Flatten linearizes the sidebar depth first in declaration order. A parent
// item comes before its children and heading-only items (no link) are
// skipped. The result is a fresh slice of childless items, so calling
// Flatten twice on the same config yields equal sequences.
func Flatten(cfg model.SiteConfig) []model.NavItem {
	out := []model.NavItem{}
	for _, section := range cfg.ThemeConfig.Sidebar {
		out = appendItems(out, section.Items)
	}
	return out
}

func appendItems(out []model.NavItem, items []model.NavItem) []model.NavItem {
	for _, item := range items {
		if item.Link != "" {
			out = append(out, model.NavItem{Text: item.Text, Link: item.Link})
		}
		out = appendItems(out, item.Items)
	}
	return out
}

// Neighbors finds link in seq, matching pages by PageKey, and returns the
// entries right before and after it. prev is nil for the first entry and
// next is nil for the last. ok is false when link is not part of seq. When a
// page is listed more than once the first occurrence wins.
func Neighbors(seq []model.NavItem, link string) (prev, next *model.NavItem, ok bool) {
	want := PageKey(link)
	for i := range seq {
		if PageKey(seq[i].Link) == want {
			prev, next = neighborsAt(seq, i)
			return prev, next, true
		}
	}
	return nil, nil, false
}

func neighborsAt(seq []model.NavItem, i int) (prev, next *model.NavItem) {
	if i > 0 {
		p := seq[i-1]
		prev = &p
	}
	if i < len(seq)-1 {
		n := seq[i+1]
		next = &n
	}
	return prev, next
}

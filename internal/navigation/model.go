package navigation

import (
	"github.com/codemateteam/php-handbook-sub005/internal/model"
)

// Model is the navigation view of a loaded site config. It flattens the
// sidebar once and indexes it for page lookups; it is never mutated after
// New returns, so it is safe to share between renderers. Pages are matched
// by PageKey, so /guide, /guide/ and /guide/index.md are the same page.
type Model struct {
	site  model.SiteConfig
	seq   []model.NavItem
	index map[string]int
}

// New builds the navigation model for cfg.
func New(cfg model.SiteConfig) *Model {
	cfg = cfg.Clone()
	seq := Flatten(cfg)
	index := make(map[string]int, len(seq))
	for i, item := range seq {
		key := PageKey(item.Link)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return &Model{site: cfg, seq: seq, index: index}
}

// Site returns a deep copy of the underlying site config.
func (m *Model) Site() model.SiteConfig { return m.site.Clone() }

// Base returns the configured base path.
func (m *Model) Base() string { return m.site.Base }

// Flatten returns a copy of the flattened page sequence.
func (m *Model) Flatten() []model.NavItem {
	out := make([]model.NavItem, len(m.seq))
	copy(out, m.seq)
	return out
}

// Len is the number of linked entries in the sidebar.
func (m *Model) Len() int { return len(m.seq) }

// Contains reports whether link is one of the sidebar pages.
func (m *Model) Contains(link string) bool {
	_, ok := m.index[PageKey(link)]
	return ok
}

// Pager returns the previous and next pages for the page at link.
func (m *Model) Pager(link string) (prev, next *model.NavItem, ok bool) {
	i, ok := m.index[PageKey(link)]
	if !ok {
		return nil, nil, false
	}
	prev, next = neighborsAt(m.seq, i)
	return prev, next, true
}

// Resolve returns the href for item under the configured base.
func (m *Model) Resolve(item model.NavItem) string {
	return ResolveLink(item, m.site.Base)
}

package model

// SiteConfig is the full site configuration. It is loaded once when a build
// starts and is treated as read-only afterwards.
type SiteConfig struct {
	Title       string    `yaml:"title" toml:"title" json:"title"`
	Description string    `yaml:"description" toml:"description" json:"description"`
	Lang        string    `yaml:"lang" toml:"lang" json:"lang"`
	Base        string    `yaml:"base" toml:"base" json:"base"`
	Head        []HeadTag `yaml:"head" toml:"head" json:"head"`

	// IgnoreDeadLinks disables broken internal link detection. A nil value
	// means the key was absent and the permissive default applies.
	IgnoreDeadLinks *bool `yaml:"ignoreDeadLinks" toml:"ignoreDeadLinks" json:"ignoreDeadLinks"`

	ThemeConfig ThemeConfig `yaml:"themeConfig" toml:"themeConfig" json:"themeConfig"`
}

// DeadLinksIgnored reports whether broken internal links should be tolerated.
func (c SiteConfig) DeadLinksIgnored() bool {
	if c.IgnoreDeadLinks == nil {
		return true
	}
	return *c.IgnoreDeadLinks
}

// HeadTag is an extra element injected into every page's <head>.
type HeadTag struct {
	Tag     string            `yaml:"tag" toml:"tag" json:"tag"`
	Attrs   map[string]string `yaml:"attrs" toml:"attrs" json:"attrs"`
	Content string            `yaml:"content" toml:"content" json:"content"`
}

// ThemeConfig holds everything the default theme needs to draw the chrome
// around a page.
type ThemeConfig struct {
	Logo        string       `yaml:"logo" toml:"logo" json:"logo"`
	SiteTitle   string       `yaml:"siteTitle" toml:"siteTitle" json:"siteTitle"`
	Nav         []NavItem    `yaml:"nav" toml:"nav" json:"nav"`
	Sidebar     []NavSection `yaml:"sidebar" toml:"sidebar" json:"sidebar"`
	SocialLinks []SocialLink `yaml:"socialLinks" toml:"socialLinks" json:"socialLinks"`
	EditLink    *EditLink    `yaml:"editLink" toml:"editLink" json:"editLink"`
	Footer      *Footer      `yaml:"footer" toml:"footer" json:"footer"`
	Search      Search       `yaml:"search" toml:"search" json:"search"`
	Outline     Outline      `yaml:"outline" toml:"outline" json:"outline"`
	DocFooter   DocFooter    `yaml:"docFooter" toml:"docFooter" json:"docFooter"`
	LastUpdated LastUpdated  `yaml:"lastUpdated" toml:"lastUpdated" json:"lastUpdated"`
	NotFound    NotFound     `yaml:"notFound" toml:"notFound" json:"notFound"`

	OutlineTitle        string `yaml:"outlineTitle" toml:"outlineTitle" json:"outlineTitle"`
	ReturnToTopLabel    string `yaml:"returnToTopLabel" toml:"returnToTopLabel" json:"returnToTopLabel"`
	SidebarMenuLabel    string `yaml:"sidebarMenuLabel" toml:"sidebarMenuLabel" json:"sidebarMenuLabel"`
	DarkModeSwitchLabel string `yaml:"darkModeSwitchLabel" toml:"darkModeSwitchLabel" json:"darkModeSwitchLabel"`
}

// NavSection is a named, collapsible group of sidebar entries. Titles need
// not be unique and the slice order is the display order.
type NavSection struct {
	Title     string    `yaml:"title" toml:"title" json:"title"`
	Collapsed bool      `yaml:"collapsed" toml:"collapsed" json:"collapsed"`
	Items     []NavItem `yaml:"items" toml:"items" json:"items"`
}

// NavItem is a single (label, link) entry. Items may nest; a parent item
// without a link only acts as a heading for its children.
type NavItem struct {
	Text  string    `yaml:"text" toml:"text" json:"text"`
	Link  string    `yaml:"link" toml:"link" json:"link"`
	Items []NavItem `yaml:"items" toml:"items" json:"items"`
}

type SocialLink struct {
	Icon      string `yaml:"icon" toml:"icon" json:"icon"`
	Link      string `yaml:"link" toml:"link" json:"link"`
	AriaLabel string `yaml:"ariaLabel" toml:"ariaLabel" json:"ariaLabel"`
}

// EditLink points readers at the page source. Pattern contains a :path
// placeholder replaced by the document path relative to the content dir.
type EditLink struct {
	Pattern string `yaml:"pattern" toml:"pattern" json:"pattern"`
	Text    string `yaml:"text" toml:"text" json:"text"`
}

type Footer struct {
	Message   string `yaml:"message" toml:"message" json:"message"`
	Copyright string `yaml:"copyright" toml:"copyright" json:"copyright"`
}

// Search carries the labels of the client-side search widget. Indexing is
// done by the widget itself.
type Search struct {
	Provider      string `yaml:"provider" toml:"provider" json:"provider"`
	ButtonText    string `yaml:"buttonText" toml:"buttonText" json:"buttonText"`
	Placeholder   string `yaml:"placeholder" toml:"placeholder" json:"placeholder"`
	NoResultsText string `yaml:"noResultsText" toml:"noResultsText" json:"noResultsText"`
	ResetText     string `yaml:"resetText" toml:"resetText" json:"resetText"`
}

// Outline selects which heading levels appear in the page outline.
type Outline struct {
	Level []int  `yaml:"level" toml:"level" json:"level"`
	Label string `yaml:"label" toml:"label" json:"label"`
}

// Levels returns the inclusive [min, max] heading range, defaulting to h2.
func (o Outline) Levels() (int, int) {
	switch len(o.Level) {
	case 0:
		return 2, 2
	case 1:
		return o.Level[0], o.Level[0]
	default:
		return o.Level[0], o.Level[1]
	}
}

type DocFooter struct {
	Prev string `yaml:"prev" toml:"prev" json:"prev"`
	Next string `yaml:"next" toml:"next" json:"next"`
}

// LastUpdated configures the "last updated" stamp. Format is a Go time
// layout.
type LastUpdated struct {
	Text   string `yaml:"text" toml:"text" json:"text"`
	Format string `yaml:"format" toml:"format" json:"format"`
}

type NotFound struct {
	Title     string `yaml:"title" toml:"title" json:"title"`
	Quote     string `yaml:"quote" toml:"quote" json:"quote"`
	LinkText  string `yaml:"linkText" toml:"linkText" json:"linkText"`
	LinkLabel string `yaml:"linkLabel" toml:"linkLabel" json:"linkLabel"`
}

// Clone returns a deep copy of c. Slices, maps and pointed-to values are
// duplicated so the copy can be changed without touching c.
func (c SiteConfig) Clone() SiteConfig {
	out := c
	if c.IgnoreDeadLinks != nil {
		v := *c.IgnoreDeadLinks
		out.IgnoreDeadLinks = &v
	}
	if c.Head != nil {
		out.Head = make([]HeadTag, len(c.Head))
		for i, tag := range c.Head {
			out.Head[i] = tag
			if tag.Attrs != nil {
				attrs := make(map[string]string, len(tag.Attrs))
				for k, v := range tag.Attrs {
					attrs[k] = v
				}
				out.Head[i].Attrs = attrs
			}
		}
	}
	out.ThemeConfig = c.ThemeConfig.clone()
	return out
}

func (t ThemeConfig) clone() ThemeConfig {
	out := t
	out.Nav = cloneItems(t.Nav)
	if t.Sidebar != nil {
		out.Sidebar = make([]NavSection, len(t.Sidebar))
		for i, section := range t.Sidebar {
			out.Sidebar[i] = section
			out.Sidebar[i].Items = cloneItems(section.Items)
		}
	}
	if t.SocialLinks != nil {
		out.SocialLinks = append([]SocialLink(nil), t.SocialLinks...)
	}
	if t.EditLink != nil {
		edit := *t.EditLink
		out.EditLink = &edit
	}
	if t.Footer != nil {
		footer := *t.Footer
		out.Footer = &footer
	}
	if t.Outline.Level != nil {
		out.Outline.Level = append([]int(nil), t.Outline.Level...)
	}
	return out
}

func cloneItems(items []NavItem) []NavItem {
	if items == nil {
		return nil
	}
	out := make([]NavItem, len(items))
	for i, item := range items {
		out[i] = NavItem{Text: item.Text, Link: item.Link, Items: cloneItems(item.Items)}
	}
	return out
}

package navigation_test

import (
	"fmt"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/codemateteam/php-handbook-sub005/internal/model"
	"github.com/codemateteam/php-handbook-sub005/internal/navigation"
)

func exampleSite() model.SiteConfig {
	return model.SiteConfig{
		Title: "Example",
		Base:  "/php-handbook/",
		ThemeConfig: model.ThemeConfig{
			Sidebar: []model.NavSection{
				{Title: "A", Items: []model.NavItem{
					{Text: "1", Link: "/a/1"},
					{Text: "2", Link: "/a/2"},
				}},
				{Title: "B", Items: []model.NavItem{
					{Text: "3", Link: "/b/3"},
				}},
			},
		},
	}
}

func links(items []model.NavItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Link)
	}
	return out
}

func TestFlattenExample(t *testing.T) {
	got := links(navigation.Flatten(exampleSite()))
	want := []string{"/a/1", "/a/2", "/b/3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	_, next, ok := navigation.Neighbors(navigation.Flatten(exampleSite()), "/a/2")
	if !ok || next == nil || next.Link != "/b/3" {
		t.Fatalf("expected next of /a/2 to be /b/3, got %+v (ok=%v)", next, ok)
	}
}

func TestFlattenNestedItems(t *testing.T) {
	site := model.SiteConfig{ThemeConfig: model.ThemeConfig{Sidebar: []model.NavSection{
		{Title: "Laravel", Items: []model.NavItem{
			{Text: "Routing", Link: "/laravel/routing"},
			{Text: "Eloquent", Items: []model.NavItem{
				{Text: "Relations", Link: "/laravel/eloquent/relations"},
			}},
			{Text: "Queues", Link: "/laravel/queues", Items: []model.NavItem{
				{Text: "Horizon", Link: "/laravel/queues/horizon"},
			}},
		}},
	}}}

	got := navigation.Flatten(site)
	want := []string{
		"/laravel/routing",
		"/laravel/eloquent/relations",
		"/laravel/queues",
		"/laravel/queues/horizon",
	}
	if !reflect.DeepEqual(links(got), want) {
		t.Fatalf("expected %v, got %v", want, links(got))
	}
	for _, item := range got {
		if len(item.Items) != 0 {
			t.Fatalf("flattened items must not carry children: %+v", item)
		}
	}
}

func TestFlattenEmpty(t *testing.T) {
	got := navigation.Flatten(model.SiteConfig{})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil sequence, got %#v", got)
	}
}

func TestNeighborsBoundaries(t *testing.T) {
	seq := navigation.Flatten(exampleSite())

	prev, next, ok := navigation.Neighbors(seq, "/a/1")
	if !ok || prev != nil || next == nil || next.Link != "/a/2" {
		t.Fatalf("first page: prev=%+v next=%+v ok=%v", prev, next, ok)
	}

	prev, next, ok = navigation.Neighbors(seq, "/b/3")
	if !ok || next != nil || prev == nil || prev.Link != "/a/2" {
		t.Fatalf("last page: prev=%+v next=%+v ok=%v", prev, next, ok)
	}

	prev, next, ok = navigation.Neighbors(seq, "/missing")
	if ok || prev != nil || next != nil {
		t.Fatalf("unknown page: prev=%+v next=%+v ok=%v", prev, next, ok)
	}
}

func TestNeighborsNormalizesLinks(t *testing.T) {
	seq := navigation.Flatten(exampleSite())
	for _, link := range []string{"/a/2.md", "/a/2.html", "/a/2#intro", "/a/2?x=1"} {
		_, next, ok := navigation.Neighbors(seq, link)
		if !ok || next == nil || next.Link != "/b/3" {
			t.Fatalf("%s: expected next /b/3, got %+v ok=%v", link, next, ok)
		}
	}
}

func TestNeighborsFirstDuplicateWins(t *testing.T) {
	seq := []model.NavItem{
		{Text: "intro", Link: "/intro"},
		{Text: "a", Link: "/a"},
		{Text: "intro again", Link: "/intro"},
		{Text: "b", Link: "/b"},
	}
	prev, next, ok := navigation.Neighbors(seq, "/intro")
	if !ok || prev != nil || next.Link != "/a" {
		t.Fatalf("expected the first occurrence to win, got prev=%+v next=%+v", prev, next)
	}

	m := navigation.New(model.SiteConfig{ThemeConfig: model.ThemeConfig{Sidebar: []model.NavSection{{Items: seq}}}})
	prev, next, ok = m.Pager("/intro")
	if !ok || prev != nil || next.Link != "/a" {
		t.Fatalf("model pager disagrees: prev=%+v next=%+v", prev, next)
	}
}

func TestModelPager(t *testing.T) {
	m := navigation.New(exampleSite())
	if m.Len() != 3 {
		t.Fatalf("expected 3 pages, got %d", m.Len())
	}
	prev, next, ok := m.Pager("/a/2")
	if !ok || prev.Link != "/a/1" || next.Link != "/b/3" {
		t.Fatalf("unexpected pager: prev=%+v next=%+v ok=%v", prev, next, ok)
	}
	if !m.Contains("/b/3.md") {
		t.Fatal("expected normalized lookup to match")
	}
	if m.Contains("/c") {
		t.Fatal("unexpected match for /c")
	}

	seq := m.Flatten()
	seq[0].Link = "/mutated"
	if m.Flatten()[0].Link != "/a/1" {
		t.Fatal("Flatten must return a copy")
	}
}

func TestModelPagerIgnoresTrailingSlash(t *testing.T) {
	site := model.SiteConfig{ThemeConfig: model.ThemeConfig{Sidebar: []model.NavSection{{Items: []model.NavItem{
		{Text: "intro", Link: "/intro"},
		{Text: "x", Link: "/x/"},
		{Text: "y", Link: "/y"},
		{Text: "x again", Link: "/x"},
	}}}}}
	m := navigation.New(site)

	for _, link := range []string{"/x", "/x/", "/x/index.md", "/x/index.html"} {
		prev, next, ok := m.Pager(link)
		if !ok || prev.Link != "/intro" || next.Link != "/y" {
			t.Fatalf("%s: expected the first /x/ entry, got prev=%+v next=%+v ok=%v", link, prev, next, ok)
		}
		if !m.Contains(link) {
			t.Fatalf("%s: expected Contains to match", link)
		}
		if _, next, ok := navigation.Neighbors(m.Flatten(), link); !ok || next.Link != "/y" {
			t.Fatalf("%s: Neighbors disagrees with Pager: next=%+v ok=%v", link, next, ok)
		}
	}

	prev, next, ok := m.Pager("/y/")
	if !ok || prev.Link != "/x/" || next.Link != "/x" {
		t.Fatalf("/y/: expected sidebar link /y to match, got prev=%+v next=%+v ok=%v", prev, next, ok)
	}
	if m.Contains("/") {
		t.Fatal("the site root is not a sidebar page here")
	}
}

func TestModelDoesNotShareSiteConfig(t *testing.T) {
	site := exampleSite()
	m := navigation.New(site)

	site.ThemeConfig.Sidebar[0].Items[0].Link = "/changed-before"
	got := m.Site()
	got.ThemeConfig.Sidebar[0].Items[0].Link = "/changed-after"
	got.ThemeConfig.Sidebar[0].Title = "changed"

	again := m.Site()
	if again.ThemeConfig.Sidebar[0].Items[0].Link != "/a/1" || again.ThemeConfig.Sidebar[0].Title != "A" {
		t.Fatalf("model sidebar was mutated through a caller: %+v", again.ThemeConfig.Sidebar[0])
	}
	if !m.Contains("/a/1") || m.Contains("/changed-before") {
		t.Fatal("page index must reflect the config given to New")
	}
}

// siteGen draws sidebars with unique links and random nesting.
func siteGen() *rapid.Generator[model.SiteConfig] {
	return rapid.Custom(func(t *rapid.T) model.SiteConfig {
		counter := 0
		var items func(depth int) []model.NavItem
		items = func(depth int) []model.NavItem {
			n := rapid.IntRange(0, 4).Draw(t, "items")
			out := make([]model.NavItem, 0, n)
			for i := 0; i < n; i++ {
				counter++
				item := model.NavItem{Text: fmt.Sprintf("page %d", counter)}
				if rapid.Bool().Draw(t, "linked") {
					item.Link = fmt.Sprintf("/p/%d", counter)
				}
				if depth < 2 && rapid.Bool().Draw(t, "nested") {
					item.Items = items(depth + 1)
				}
				out = append(out, item)
			}
			return out
		}

		sections := make([]model.NavSection, rapid.IntRange(0, 4).Draw(t, "sections"))
		for i := range sections {
			sections[i] = model.NavSection{
				Title:     fmt.Sprintf("section %d", i),
				Collapsed: rapid.Bool().Draw(t, "collapsed"),
				Items:     items(0),
			}
		}
		return model.SiteConfig{Title: "gen", ThemeConfig: model.ThemeConfig{Sidebar: sections}}
	})
}

func expectedLinks(items []model.NavItem, out []string) []string {
	for _, item := range items {
		if item.Link != "" {
			out = append(out, item.Link)
		}
		out = expectedLinks(item.Items, out)
	}
	return out
}

func TestFlattenProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		site := siteGen().Draw(t, "site")

		var want []string
		for _, section := range site.ThemeConfig.Sidebar {
			want = expectedLinks(section.Items, want)
		}

		first := navigation.Flatten(site)
		second := navigation.Flatten(site)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("flatten is not idempotent: %v vs %v", first, second)
		}
		if got := links(first); len(got) != len(want) || (len(want) > 0 && !reflect.DeepEqual(got, want)) {
			t.Fatalf("order not preserved: want %v, got %v", want, got)
		}

		m := navigation.New(site)
		for i, item := range first {
			prev, next, ok := m.Pager(item.Link)
			if !ok {
				t.Fatalf("page %s missing from pager", item.Link)
			}
			if i == 0 && prev != nil {
				t.Fatalf("first page has prev %+v", prev)
			}
			if i > 0 && (prev == nil || prev.Link != first[i-1].Link) {
				t.Fatalf("page %d: expected prev %s, got %+v", i, first[i-1].Link, prev)
			}
			if i == len(first)-1 && next != nil {
				t.Fatalf("last page has next %+v", next)
			}
			if i < len(first)-1 && (next == nil || next.Link != first[i+1].Link) {
				t.Fatalf("page %d: expected next %s, got %+v", i, first[i+1].Link, next)
			}
		}
	})
}

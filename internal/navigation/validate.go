package navigation

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"

	"github.com/codemateteam/php-handbook-sub005/internal/model"
)

var (
	errLinkInvalid = validation.NewError("navigation.link_invalid",
		"must be a site-relative path starting with / or an http(s) or mailto URL")
	errBaseInvalid = validation.NewError("navigation.base_invalid",
		"must start with /")
	errLangInvalid = validation.NewError("navigation.lang_invalid",
		"must be a valid BCP 47 language tag")
	errEditPattern = validation.NewError("navigation.edit_link_pattern",
		"must contain the :path placeholder")
	errOutlineLevel = validation.NewError("navigation.outline_level",
		"must hold one or two heading levels between 1 and 6 in ascending order")
)

func validateSite(cfg *model.SiteConfig) error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Title, validation.Required),
		validation.Field(&cfg.Lang, validation.By(langRule)),
		validation.Field(&cfg.Base, validation.By(baseRule)),
		validation.Field(&cfg.Head, validation.By(headRule)),
		validation.Field(&cfg.ThemeConfig, validation.By(themeRule)),
	)
}

func themeRule(value interface{}) error {
	theme, _ := value.(model.ThemeConfig)
	return validation.ValidateStruct(&theme,
		validation.Field(&theme.Nav, validation.By(itemsRule)),
		validation.Field(&theme.Sidebar, validation.By(sectionsRule)),
		validation.Field(&theme.SocialLinks, validation.By(socialLinksRule)),
		validation.Field(&theme.EditLink, validation.By(editLinkRule)),
		validation.Field(&theme.Search, validation.By(searchRule)),
		validation.Field(&theme.Outline, validation.By(outlineRule)),
	)
}

func sectionsRule(value interface{}) error {
	sections, _ := value.([]model.NavSection)
	errs := validation.Errors{}
	for i := range sections {
		section := sections[i]
		err := validation.ValidateStruct(&section,
			validation.Field(&section.Items, validation.By(itemsRule)),
		)
		if err != nil {
			errs[strconv.Itoa(i)] = err
		}
	}
	return errs.Filter()
}

func itemsRule(value interface{}) error {
	items, _ := value.([]model.NavItem)
	errs := validation.Errors{}
	for i := range items {
		item := items[i]
		err := validation.ValidateStruct(&item,
			validation.Field(&item.Link,
				validation.When(len(item.Items) == 0, validation.Required),
				validation.By(linkRule),
			),
			validation.Field(&item.Items, validation.By(itemsRule)),
		)
		if err != nil {
			errs[strconv.Itoa(i)] = err
		}
	}
	return errs.Filter()
}

func socialLinksRule(value interface{}) error {
	links, _ := value.([]model.SocialLink)
	errs := validation.Errors{}
	for i := range links {
		link := links[i]
		err := validation.ValidateStruct(&link,
			validation.Field(&link.Icon, validation.Required),
			validation.Field(&link.Link, validation.Required, validation.By(linkRule)),
		)
		if err != nil {
			errs[strconv.Itoa(i)] = err
		}
	}
	return errs.Filter()
}

func headRule(value interface{}) error {
	tags, _ := value.([]model.HeadTag)
	errs := validation.Errors{}
	for i := range tags {
		tag := tags[i]
		if err := validation.ValidateStruct(&tag, validation.Field(&tag.Tag, validation.Required)); err != nil {
			errs[strconv.Itoa(i)] = err
		}
	}
	return errs.Filter()
}

func editLinkRule(value interface{}) error {
	edit, _ := value.(*model.EditLink)
	if edit == nil {
		return nil
	}
	return validation.ValidateStruct(edit,
		validation.Field(&edit.Pattern, validation.Required, validation.By(func(v interface{}) error {
			if s, _ := v.(string); s != "" && !strings.Contains(s, ":path") {
				return errEditPattern
			}
			return nil
		})),
	)
}

func searchRule(value interface{}) error {
	search, _ := value.(model.Search)
	return validation.ValidateStruct(&search,
		validation.Field(&search.Provider, validation.In("local")),
	)
}

func outlineRule(value interface{}) error {
	outline, _ := value.(model.Outline)
	return validation.ValidateStruct(&outline,
		validation.Field(&outline.Level, validation.By(func(v interface{}) error {
			levels, _ := v.([]int)
			if len(levels) > 2 {
				return errOutlineLevel
			}
			for i, l := range levels {
				if l < 1 || l > 6 || (i > 0 && l < levels[i-1]) {
					return errOutlineLevel
				}
			}
			return nil
		})),
	)
}

func linkRule(value interface{}) error {
	link, _ := value.(string)
	if link == "" || validLink(link) {
		return nil
	}
	return errLinkInvalid
}

func langRule(value interface{}) error {
	lang, _ := value.(string)
	if lang == "" {
		return nil
	}
	if _, err := language.Parse(lang); err != nil {
		return errLangInvalid
	}
	return nil
}

func baseRule(value interface{}) error {
	base, _ := value.(string)
	if !strings.HasPrefix(base, "/") {
		return errBaseInvalid
	}
	return nil
}

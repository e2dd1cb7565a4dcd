// ABOUTME: Keyword/regex based category classifier and slug mapping
// ABOUTME: First matching category in canonical order wins

package classify

import (
	"regexp"
	"strings"

	"kenyanow-api/core/domain"
)

// categoryOrder is the tie-break when several categories could match.
var categoryOrder = []domain.Category{
	domain.CategoryPolitics,
	domain.CategoryBusiness,
	domain.CategorySports,
	domain.CategoryTech,
	domain.CategoryHealth,
	domain.CategoryEntertainment,
}

var rules = map[domain.Category][]*regexp.Regexp{
	domain.CategoryPolitics: {
		regexp.MustCompile(`(?i)parliament|senate|mp\b|president|election|cabinet|gazette`),
	},
	domain.CategoryBusiness: {
		regexp.MustCompile(`(?i)market|economy|bank|trade|company|stock|shilling`),
	},
	domain.CategorySports: {
		regexp.MustCompile(`(?i)match|league|cup|athletics|goal|olympic|sport`),
	},
	domain.CategoryTech: {
		regexp.MustCompile(`(?i)technology|startup|app|software|spectrum|internet|ai\b`),
	},
	domain.CategoryHealth: {
		regexp.MustCompile(`(?i)health|hospital|clinic|disease|vaccine|malaria|covid`),
	},
	domain.CategoryEntertainment: {
		regexp.MustCompile(`(?i)music|film|celebrity|arts?|festival|entertainment`),
	},
}

// FromTitleTags classifies an article from its title and feed-supplied
// tags. Returns "" when no rule matches.
func FromTitleTags(title string, tags []string) domain.Category {
	hay := title
	if len(tags) > 0 {
		hay = title + " " + strings.Join(tags, " ")
	}

	for _, cat := range categoryOrder {
		for _, re := range rules[cat] {
			if re.MatchString(hay) {
				return cat
			}
		}
	}
	return ""
}

// Slug mapping is partial on purpose: news is the homepage, so Politics
// has no section route.
var categoryToSlug = map[domain.Category]string{
	domain.CategoryBusiness:      "business",
	domain.CategorySports:        "sports",
	domain.CategoryTech:          "tech",
	domain.CategoryHealth:        "health",
	domain.CategoryEntertainment: "entertainment",
}

var slugToCategory = func() map[string]domain.Category {
	m := make(map[string]domain.Category, len(categoryToSlug))
	for cat, slug := range categoryToSlug {
		m[slug] = cat
	}
	return m
}()

// CategoryFromSlug resolves a URL section slug to a category, or "" when
// the slug is unknown.
func CategoryFromSlug(slug string) domain.Category {
	return slugToCategory[strings.ToLower(slug)]
}

// SlugForCategory returns the section slug for a category, or "" when the
// category has no route.
func SlugForCategory(cat domain.Category) string {
	return categoryToSlug[cat]
}

// Package catalog models the region's streaming platforms: the two content
// categories the upstream source partitions everything by, the canonical
// platform identity used for user-facing matching, and the cached per-category
// provider catalogs.
package catalog

import (
	"strings"

	"github.com/example/watch-gateway/internal/config"
)

// Category is one of the two content partitions of the upstream source.
// Identifiers, date semantics and runtime buckets are all category-scoped, so
// the variant data lives here instead of being re-derived from strings at
// every call site.
type Category struct {
	// MediaType is the upstream path segment ("movie" or "tv").
	MediaType string
	// DateField is the discover filter field for release bounds.
	DateField string
	// Runtime holds the duration bucket boundaries for this category.
	Runtime config.RuntimeBuckets
}

// Categories is the closed set of the two category variants, built once at
// startup from configuration.
type Categories struct {
	Movie  Category
	Series Category
}

func NewCategories(movie, series config.RuntimeBuckets) Categories {
	return Categories{
		Movie: Category{
			MediaType: "movie",
			DateField: "primary_release_date",
			Runtime:   movie,
		},
		Series: Category{
			MediaType: "tv",
			DateField: "first_air_date",
			Runtime:   series,
		},
	}
}

// ByMediaType resolves a user-supplied category token to one variant.
// Accepts the upstream tokens plus the aliases the UI historically sent.
func (cs Categories) ByMediaType(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "film":
		return cs.Movie, true
	case "tv", "serie", "series", "série", "show":
		return cs.Series, true
	}
	return Category{}, false
}

// ForFilter expands a filter category token into the categories to query.
// Empty and "any" mean both.
func (cs Categories) ForFilter(s string) []Category {
	if c, ok := cs.ByMediaType(s); ok {
		return []Category{c}
	}
	return []Category{cs.Movie, cs.Series}
}

// IsMovie reports which variant this is; there are exactly two.
func (c Category) IsMovie() bool { return c.MediaType == "movie" }

package discovery

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/example/watch-gateway/internal/catalog"
)

// Translate maps a FilterRequest onto the upstream discovery parameter set
// for one content category, using that category's provider catalog for
// platform resolution. Pure: no I/O, deterministic for fixed inputs.
// Unresolvable labels and names degrade by omission, never by failure.
func Translate(req FilterRequest, cat catalog.Category, providers catalog.Catalog) url.Values {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")

	page := req.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	if ids := genreIDs(req, cat); len(ids) > 0 {
		params.Set("with_genres", joinIDs(ids, ","))
	}

	applyDuration(params, cat, req.Duration)

	if req.YearFrom > 0 {
		params.Set(cat.DateField+".gte", fmt.Sprintf("%04d-01-01", req.YearFrom))
	}
	if req.YearTo > 0 {
		params.Set(cat.DateField+".lte", fmt.Sprintf("%04d-12-31", req.YearTo))
	}

	if lang := strings.ToLower(strings.TrimSpace(req.OriginalLanguage)); lang != "" {
		params.Set("with_original_language", lang)
	}

	// Category-scoped resolution is the critical rule here: a platform's
	// movie-catalog id and series-catalog id can differ, and the wrong one
	// silently drops that platform's results. Names resolving to nothing are
	// omitted; when none resolve at all the platform dimension disappears
	// entirely so discovery stays additive.
	if ids := PlatformIDs(req.Platforms, providers); len(ids) > 0 {
		params.Set("with_watch_providers", joinIDs(ids, "|"))
		params.Set("with_watch_monetization_types", "flatrate")
	}

	return params
}

// genreIDs merges explicit genre labels with the mood-implied set (union,
// explicit first, no duplicates) and resolves them against the category
// table, dropping unknown labels.
func genreIDs(req FilterRequest, cat catalog.Category) []int64 {
	labels := append([]string(nil), req.Genres...)
	if implied, ok := moodGenres[catalog.Fold(req.Mood)]; ok {
		for _, label := range implied {
			if !containsFolded(labels, label) {
				labels = append(labels, label)
			}
		}
	}

	var ids []int64
	seen := make(map[int64]bool)
	for _, label := range labels {
		id, ok := genreID(cat, label)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// PlatformIDs resolves canonical platform names against one category's
// catalog, returning the deduplicated, sorted identifier set. Unknown names
// are dropped.
func PlatformIDs(names []string, providers catalog.Catalog) []int64 {
	var ids []int64
	seen := make(map[int64]bool)
	for _, name := range names {
		p, ok := providers.Resolve(name)
		if !ok {
			continue
		}
		for _, id := range p.IDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// applyDuration sets the runtime bounds for a bucket label using the
// category's thresholds; movie and series buckets use different minute
// values for the same label.
func applyDuration(params url.Values, cat catalog.Category, bucket string) {
	switch catalog.Fold(bucket) {
	case "court":
		params.Set("with_runtime.lte", strconv.Itoa(cat.Runtime.Short))
	case "moyen":
		params.Set("with_runtime.gte", strconv.Itoa(cat.Runtime.Short))
		params.Set("with_runtime.lte", strconv.Itoa(cat.Runtime.Long))
	case "long":
		params.Set("with_runtime.gte", strconv.Itoa(cat.Runtime.Long))
	}
}

func joinIDs(ids []int64, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, sep)
}

func containsFolded(labels []string, label string) bool {
	folded := catalog.Fold(label)
	for _, l := range labels {
		if catalog.Fold(l) == folded {
			return true
		}
	}
	return false
}

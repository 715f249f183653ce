package catalog

import (
	"sort"

	"github.com/example/watch-gateway/internal/tmdb"
)

// Platform is one canonical streaming/purchase service with every upstream
// identifier observed for it. The same canonical name legitimately maps to
// several ids: one per content category, plus channel-bundle variants.
type Platform struct {
	Name string
	IDs  []int64
	Logo string
}

// Catalog maps canonical platform names to aggregated platforms for one
// content category. Immutable once built; a refresh replaces it wholesale.
type Catalog struct {
	byName map[string]Platform
}

// Build groups a flat upstream provider list by canonical name, deduplicating
// identifiers and keeping the first non-empty logo per group. Grouping, not
// last-write-wins: two entries with the same canonical name and different ids
// both survive, in one Platform.
func Build(entries []tmdb.ProviderEntry) Catalog {
	byName := make(map[string]Platform, len(entries))
	for _, e := range entries {
		name := Canonicalize(e.Name)
		key := Fold(name)
		p, ok := byName[key]
		if !ok {
			p = Platform{Name: name}
		}
		if !containsID(p.IDs, e.ID) {
			p.IDs = append(p.IDs, e.ID)
		}
		if p.Logo == "" {
			p.Logo = e.Logo
		}
		byName[key] = p
	}
	for key, p := range byName {
		sort.Slice(p.IDs, func(i, j int) bool { return p.IDs[i] < p.IDs[j] })
		byName[key] = p
	}
	return Catalog{byName: byName}
}

// Merge unions catalogs into one, for cross-category listings. Lookup for
// filter translation must stay category-scoped; Merge exists for display only.
func Merge(catalogs ...Catalog) Catalog {
	var entries []tmdb.ProviderEntry
	for _, c := range catalogs {
		for _, p := range c.byName {
			for _, id := range p.IDs {
				entries = append(entries, tmdb.ProviderEntry{ID: id, Name: p.Name, Logo: p.Logo})
			}
		}
	}
	return Build(entries)
}

// Resolve looks up one canonical platform by any of its names.
func (c Catalog) Resolve(name string) (Platform, bool) {
	p, ok := c.byName[Fold(Canonicalize(name))]
	return p, ok
}

// Platforms returns all platforms sorted by canonical name.
func (c Catalog) Platforms() []Platform {
	out := make([]Platform, 0, len(c.byName))
	for _, p := range c.byName {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c Catalog) Len() int { return len(c.byName) }

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

package handlers

import (
	"context"
	"net/http"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/example/watch-gateway/internal/catalog"
	"github.com/example/watch-gateway/internal/platform/api"
	"github.com/example/watch-gateway/internal/tmdb"
)

// CatalogStore serves the per-category platform catalogs.
type CatalogStore interface {
	Catalog(ctx context.Context, cat catalog.Category) (catalog.Catalog, error)
}

type providerEntry struct {
	Name  string  `json:"name"`
	Cname string  `json:"cname"`
	IDs   []int64 `json:"ids"`
	Logo  *string `json:"logo"`
}

type providersListResponse struct {
	Region    string          `json:"region"`
	Providers []providerEntry `json:"providers"`
}

// ProvidersList handles GET /api/providers-list (and its legacy /api/providers
// alias). The list is the display union of both categories; the ids inside an
// entry are only valid for filtering within the category they came from, which
// the search path re-resolves on its own.
func ProvidersList(store CatalogStore, cats catalog.Categories, region string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movie, err := store.Catalog(r.Context(), cats.Movie)
		if err != nil {
			writeUpstreamError(w, r, log, "providers_list_failed", err)
			return
		}
		series, err := store.Catalog(r.Context(), cats.Series)
		if err != nil {
			writeUpstreamError(w, r, log, "providers_list_failed", err)
			return
		}

		merged := catalog.Merge(movie, series)
		out := providersListResponse{Region: region, Providers: []providerEntry{}}
		for _, p := range merged.Platforms() {
			out.Providers = append(out.Providers, providerEntry{
				Name:  p.Name,
				Cname: cname(p.Name),
				IDs:   p.IDs,
				Logo:  tmdb.ImageURL(tmdb.LogoSize, p.Logo),
			})
		}
		api.WriteJSON(w, http.StatusOK, out)
	}
}

// cname builds the url-safe slug clients use as a stable key: lowercase,
// "+" spelled out as "plus", every other non-alphanumeric run collapsed to
// a single dash.
func cname(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r == '+':
			b.WriteString("plus")
			dash = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

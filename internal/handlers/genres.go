package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/watch-gateway/internal/catalog"
	"github.com/example/watch-gateway/internal/platform/api"
	"github.com/example/watch-gateway/internal/tmdb"
)

// GenreLister is the slice of the upstream client the genres endpoint needs.
type GenreLister interface {
	GenreList(ctx context.Context, mediaType string) ([]tmdb.Genre, error)
}

type genresResponse struct {
	Type   string       `json:"type"`
	Genres []tmdb.Genre `json:"genres"`
}

// Genres handles GET /api/genres?type=movie|tv. An unknown or missing type
// falls back to movie, matching the search endpoint's category aliases.
func Genres(client GenreLister, cats catalog.Categories, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, ok := cats.ByMediaType(r.URL.Query().Get("type"))
		if !ok {
			cat = cats.Movie
		}

		genres, err := client.GenreList(r.Context(), cat.MediaType)
		if err != nil {
			writeUpstreamError(w, r, log, "genres_failed", err)
			return
		}
		if genres == nil {
			genres = []tmdb.Genre{}
		}
		api.WriteJSON(w, http.StatusOK, genresResponse{Type: cat.MediaType, Genres: genres})
	}
}

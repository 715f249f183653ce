package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/example/watch-gateway/internal/discovery"
	"github.com/example/watch-gateway/internal/platform/api"
)

// Searcher runs a translated discovery query.
type Searcher interface {
	Search(ctx context.Context, req discovery.FilterRequest) (*discovery.SearchResult, error)
}

// Search handles GET /api/search. All filter dimensions are optional; an
// empty query is a valid "most popular right now" browse.
func Search(svc Searcher, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := parseFilterRequest(r.URL.Query())

		res, err := svc.Search(r.Context(), req)
		if err != nil {
			writeUpstreamError(w, r, log, "search_failed", err)
			return
		}
		api.WriteJSON(w, http.StatusOK, res)
	}
}

func parseFilterRequest(q url.Values) discovery.FilterRequest {
	return discovery.FilterRequest{
		Category:         strings.TrimSpace(q.Get("type")),
		Genres:           splitCSV(q.Get("genres")),
		Mood:             strings.TrimSpace(q.Get("mood")),
		Duration:         strings.TrimSpace(q.Get("duration")),
		Platforms:        splitCSV(q.Get("providers")),
		OriginalLanguage: strings.TrimSpace(q.Get("original_language")),
		YearFrom:         parseIntDefault(q.Get("year_from"), 0),
		YearTo:           parseIntDefault(q.Get("year_to"), 0),
		Page:             parseIntDefault(q.Get("page"), 1),
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

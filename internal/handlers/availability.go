package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/watch-gateway/internal/availability"
	"github.com/example/watch-gateway/internal/catalog"
	"github.com/example/watch-gateway/internal/platform/api"
)

// AvailabilitySource resolves where one title can be watched.
type AvailabilitySource interface {
	Get(ctx context.Context, cat catalog.Category, id int64) (*availability.Availability, error)
}

// TitleProviders handles GET /api/providers/{type}/{id}
func TitleProviders(src AvailabilitySource, cats catalog.Categories, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, ok := cats.ByMediaType(chi.URLParam(r, "type"))
		if !ok {
			api.BadRequest(w, "invalid_type", "type must be movie or tv")
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "id"))
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			api.BadRequest(w, "invalid_id", "id must be a positive integer")
			return
		}

		av, err := src.Get(r.Context(), cat, id)
		if err != nil {
			writeUpstreamError(w, r, log, "providers_failed", err)
			return
		}
		api.WriteJSON(w, http.StatusOK, av)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/watch-gateway/internal/platform/api"
	"github.com/example/watch-gateway/internal/platform/httpserver"
	"github.com/example/watch-gateway/internal/tmdb"
)

// writeUpstreamError maps a service-layer failure onto the wire taxonomy.
// A missing token always wins over the endpoint's own code so operators see
// the configuration problem instead of a generic fetch failure.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, log *zap.Logger, code string, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	if errors.Is(err, tmdb.ErrMissingToken) {
		code = "missing_token"
	}
	log.Error("upstream request failed",
		zap.String("code", code),
		zap.String("request_id", httpserver.RequestIDFromContext(r.Context())),
		zap.Error(err))
	api.Internal(w, code, err.Error())
}

package handlers

import (
	"net/http"

	"github.com/example/watch-gateway/internal/platform/api"
)

// UpstreamInfo is what the health endpoint reports about the TMDB client.
type UpstreamInfo interface {
	Configured() bool
	Region() string
	Locale() string
}

type healthResponse struct {
	OK           bool   `json:"ok"`
	Region       string `json:"region"`
	Lang         string `json:"lang"`
	TokenPresent bool   `json:"token_present"`
}

// Health handles GET /api/health
func Health(client UpstreamInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		api.WriteJSON(w, http.StatusOK, healthResponse{
			OK:           true,
			Region:       client.Region(),
			Lang:         client.Locale(),
			TokenPresent: client.Configured(),
		})
	}
}

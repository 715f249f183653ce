package main

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/example/watch-gateway/internal/availability"
	"github.com/example/watch-gateway/internal/catalog"
	"github.com/example/watch-gateway/internal/config"
	"github.com/example/watch-gateway/internal/discovery"
	"github.com/example/watch-gateway/internal/handlers"
	"github.com/example/watch-gateway/internal/platform/httpserver"
	"github.com/example/watch-gateway/internal/platform/logging"
	"github.com/example/watch-gateway/internal/platform/run"
	"github.com/example/watch-gateway/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, "watch-gateway")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.BearerToken == "" {
		log.Warn("no upstream bearer token configured, catalog endpoints will fail until one is set")
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "tmdb",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("circuit-breaker state change", zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	client := tmdb.New(cfg.BearerToken, cfg.Region, cfg.Locale,
		tmdb.WithCircuitBreaker(cb),
		tmdb.WithLogger(log))

	cats := catalog.NewCategories(cfg.MovieRuntime, cfg.SeriesRuntime)
	catalogs := catalog.NewCache(client, cfg.ProviderCacheTTL, log)
	search := discovery.NewService(client, catalogs, cats, log)
	resolver := availability.NewResolver(client, availability.NewTTLCache(cfg.AvailabilityCacheTTL), log)

	r := chi.NewRouter()
	httpserver.SetupRouter(r)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health(client))
		r.Get("/providers-list", handlers.ProvidersList(catalogs, cats, cfg.Region, log))
		r.Get("/providers", handlers.ProvidersList(catalogs, cats, cfg.Region, log))
		r.Get("/genres", handlers.Genres(client, cats, log))
		r.Get("/search", handlers.Search(search, log))
		r.Get("/providers/{type}/{id}", handlers.TitleProviders(resolver, cats, log))
	})

	if spa := handlers.SPA(cfg.WebDir); spa != nil {
		r.Handle("/*", spa)
		log.Info("serving static ui", zap.String("dir", cfg.WebDir))
	}

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTPAddr, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

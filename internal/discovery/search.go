package discovery

import (
	"context"
	"errors"
	"math"
	"net/url"
	"sort"
	"strconv"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/example/watch-gateway/internal/catalog"
	"github.com/example/watch-gateway/internal/tmdb"
)

// DiscoverClient is the slice of the upstream client the search service needs.
type DiscoverClient interface {
	Discover(ctx context.Context, mediaType string, params url.Values) (*tmdb.DiscoverResponse, error)
	Region() string
}

// CatalogSource provides the per-category provider catalogs.
type CatalogSource interface {
	Catalog(ctx context.Context, cat catalog.Category) (catalog.Catalog, error)
}

// Title is one shaped result row.
type Title struct {
	Type     string   `json:"type"`
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Overview string   `json:"overview"`
	Poster   *string  `json:"poster"`
	Backdrop *string  `json:"backdrop"`
	Year     int      `json:"year,omitempty"`
	Rating   *float64 `json:"rating"`
}

// QueryDebug surfaces the exact resolved upstream parameters of one issued
// discover call, for support reproducibility.
type QueryDebug struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params"`
}

type SearchResult struct {
	Region     string       `json:"region"`
	Results    []Title      `json:"results"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Debug      []QueryDebug `json:"debug"`
}

// Service orchestrates a search: catalog resolution, filter translation, the
// discover call(s) and result shaping. It is the only layer that decides
// between degrading and failing, and the only one with a retry policy.
type Service struct {
	client   DiscoverClient
	catalogs CatalogSource
	cats     catalog.Categories
	log      *zap.Logger
}

func NewService(client DiscoverClient, catalogs CatalogSource, cats catalog.Categories, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{client: client, catalogs: catalogs, cats: cats, log: log}
}

// Search runs the request against one category, or both when the category is
// "any", and merges. A platform list resolving to zero upstream ids degrades
// to an unfiltered search instead of returning nothing.
func (s *Service) Search(ctx context.Context, req FilterRequest) (*SearchResult, error) {
	cats := s.cats.ForFilter(req.Category)

	type catPage struct {
		cat   catalog.Category
		resp  *tmdb.DiscoverResponse
		debug QueryDebug
	}
	pages := make([]catPage, len(cats))

	p := pool.New().WithErrors().WithContext(ctx)
	for i, cat := range cats {
		i, cat := i, cat
		p.Go(func(ctx context.Context) error {
			providers, err := s.catalogs.Catalog(ctx, cat)
			if err != nil {
				return err
			}
			if len(req.Platforms) > 0 && len(PlatformIDs(req.Platforms, providers)) == 0 {
				s.log.Info("platform filter resolved to no ids, searching unfiltered",
					zap.String("type", cat.MediaType),
					zap.Strings("platforms", req.Platforms))
			}
			params := Translate(req, cat, providers)

			var resp *tmdb.DiscoverResponse
			err = retry.Do(
				func() error {
					var derr error
					resp, derr = s.client.Discover(ctx, cat.MediaType, params)
					return derr
				},
				retry.Context(ctx),
				retry.Attempts(2),
				retry.Delay(200*time.Millisecond),
				retry.LastErrorOnly(true),
				retry.RetryIf(isTransient),
			)
			if err != nil {
				return err
			}
			pages[i] = catPage{cat: cat, resp: resp, debug: QueryDebug{Type: cat.MediaType, Params: flatten(params)}}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	out := &SearchResult{
		Region:  s.client.Region(),
		Results: []Title{},
		Page:    maxInt(req.Page, 1),
	}
	for _, pg := range pages {
		for _, item := range pg.resp.Results {
			out.Results = append(out.Results, shapeTitle(pg.cat, item))
		}
		out.TotalPages = maxInt(out.TotalPages, pg.resp.TotalPages)
		out.Debug = append(out.Debug, pg.debug)
	}

	// Cross-category merge: rating descending, stable so equal ratings keep
	// their per-category upstream (popularity) order.
	if len(cats) > 1 {
		sort.SliceStable(out.Results, func(i, j int) bool {
			return ratingOf(out.Results[i]) > ratingOf(out.Results[j])
		})
	}
	return out, nil
}

// isTransient allows retries for transport-level failures only. An upstream
// status is a decision, not a glitch, and a missing token never heals by
// retrying.
func isTransient(err error) bool {
	var ue *tmdb.UpstreamError
	if errors.As(err, &ue) {
		return false
	}
	return !errors.Is(err, tmdb.ErrMissingToken)
}

func shapeTitle(cat catalog.Category, item tmdb.DiscoverItem) Title {
	name, date := item.Name, item.FirstAirDate
	if cat.IsMovie() {
		name, date = item.Title, item.ReleaseDate
	}

	t := Title{
		Type:     cat.MediaType,
		ID:       item.ID,
		Title:    name,
		Overview: item.Overview,
		Poster:   tmdb.ImageURL(tmdb.PosterSize, item.PosterPath),
		Backdrop: tmdb.ImageURL(tmdb.BackdropSize, item.BackdropPath),
	}
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil {
			t.Year = y
		}
	}
	if item.VoteAverage > 0 {
		r := math.Round(item.VoteAverage*100) / 100
		t.Rating = &r
	}
	return t
}

func ratingOf(t Title) float64 {
	if t.Rating == nil {
		return -1
	}
	return *t.Rating
}

func flatten(params url.Values) map[string]string {
	out := make(map[string]string, len(params))
	for k := range params {
		out[k] = params.Get(k)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package discovery

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/example/watch-gateway/internal/catalog"
	"github.com/example/watch-gateway/internal/tmdb"
)

type stubDiscover struct {
	mu      sync.Mutex
	calls   []url.Values
	types   []string
	byType  map[string]*tmdb.DiscoverResponse
	errs    []error
	errIdx  atomic.Int32
	attempt atomic.Int32
}

func (s *stubDiscover) Discover(_ context.Context, mediaType string, params url.Values) (*tmdb.DiscoverResponse, error) {
	s.attempt.Add(1)
	s.mu.Lock()
	cloned := url.Values{}
	for k, v := range params {
		cloned[k] = append([]string(nil), v...)
	}
	s.calls = append(s.calls, cloned)
	s.types = append(s.types, mediaType)
	s.mu.Unlock()

	if n := int(s.errIdx.Add(1)) - 1; n < len(s.errs) && s.errs[n] != nil {
		return nil, s.errs[n]
	}
	if resp, ok := s.byType[mediaType]; ok {
		return resp, nil
	}
	return &tmdb.DiscoverResponse{Page: 1, Results: []tmdb.DiscoverItem{}}, nil
}

func (s *stubDiscover) Region() string { return "FR" }

type stubCatalogs struct {
	movie  catalog.Catalog
	series catalog.Catalog
	err    error
}

func (s *stubCatalogs) Catalog(_ context.Context, cat catalog.Category) (catalog.Catalog, error) {
	if s.err != nil {
		return catalog.Catalog{}, s.err
	}
	if cat.IsMovie() {
		return s.movie, nil
	}
	return s.series, nil
}

func TestSearch_ShapesMovieResults(t *testing.T) {
	client := &stubDiscover{byType: map[string]*tmdb.DiscoverResponse{
		"movie": {
			Page:       1,
			TotalPages: 7,
			Results: []tmdb.DiscoverItem{
				{ID: 603, Title: "Matrix", Overview: "resume", PosterPath: "/p.jpg", ReleaseDate: "1999-03-31", VoteAverage: 8.218},
				{ID: 42, Title: "Sans note", ReleaseDate: ""},
			},
		},
	}}
	svc := NewService(client, &stubCatalogs{}, testCategories(), nil)

	res, err := svc.Search(context.Background(), FilterRequest{Category: "movie"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Region != "FR" {
		t.Fatalf("region: %q", res.Region)
	}
	if res.TotalPages != 7 {
		t.Fatalf("total pages: %d", res.TotalPages)
	}
	if len(res.Results) != 2 {
		t.Fatalf("results: %d", len(res.Results))
	}

	first := res.Results[0]
	if first.Type != "movie" || first.Title != "Matrix" || first.Year != 1999 {
		t.Fatalf("shaped row wrong: %+v", first)
	}
	if first.Rating == nil || *first.Rating != 8.22 {
		t.Fatalf("rating must round to two decimals, got %v", first.Rating)
	}
	if first.Poster == nil {
		t.Fatal("poster url expected")
	}

	second := res.Results[1]
	if second.Rating != nil {
		t.Fatal("zero vote average must yield nil rating")
	}
	if second.Year != 0 {
		t.Fatal("empty date must yield no year")
	}
	if second.Poster != nil || second.Backdrop != nil {
		t.Fatal("missing image paths must yield nil urls")
	}

	if len(res.Debug) != 1 || res.Debug[0].Type != "movie" {
		t.Fatalf("debug: %+v", res.Debug)
	}
}

func TestSearch_SeriesUsesNameAndFirstAirDate(t *testing.T) {
	client := &stubDiscover{byType: map[string]*tmdb.DiscoverResponse{
		"tv": {Results: []tmdb.DiscoverItem{
			{ID: 1396, Name: "Breaking Bad", FirstAirDate: "2008-01-20", VoteAverage: 8.9},
		}},
	}}
	svc := NewService(client, &stubCatalogs{}, testCategories(), nil)

	res, err := svc.Search(context.Background(), FilterRequest{Category: "tv"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	row := res.Results[0]
	if row.Type != "tv" || row.Title != "Breaking Bad" || row.Year != 2008 {
		t.Fatalf("shaped row wrong: %+v", row)
	}
}

func TestSearch_AnyMergesBothCategoriesByRating(t *testing.T) {
	client := &stubDiscover{byType: map[string]*tmdb.DiscoverResponse{
		"movie": {TotalPages: 3, Results: []tmdb.DiscoverItem{
			{ID: 1, Title: "Film fort", ReleaseDate: "2020-01-01", VoteAverage: 9},
			{ID: 2, Title: "Film faible", ReleaseDate: "2020-01-01", VoteAverage: 5},
		}},
		"tv": {TotalPages: 5, Results: []tmdb.DiscoverItem{
			{ID: 3, Name: "Serie moyenne", FirstAirDate: "2020-01-01", VoteAverage: 7},
			{ID: 4, Name: "Serie sans note", FirstAirDate: "2020-01-01"},
		}},
	}}
	svc := NewService(client, &stubCatalogs{}, testCategories(), nil)

	res, err := svc.Search(context.Background(), FilterRequest{Category: "any"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	got := make([]int64, 0, len(res.Results))
	for _, r := range res.Results {
		got = append(got, r.ID)
	}
	want := []int64{1, 3, 2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("merge order: got %v, want %v", got, want)
		}
	}
	if res.TotalPages != 5 {
		t.Fatalf("merged total pages should be the max, got %d", res.TotalPages)
	}
	if len(res.Debug) != 2 {
		t.Fatalf("one debug entry per issued query, got %d", len(res.Debug))
	}
}

func TestSearch_UnresolvablePlatformsDegradeToUnfiltered(t *testing.T) {
	providers := catalog.Build([]tmdb.ProviderEntry{{ID: 8, Name: "Netflix"}})
	client := &stubDiscover{byType: map[string]*tmdb.DiscoverResponse{}}
	svc := NewService(client, &stubCatalogs{movie: providers}, testCategories(), nil)

	if _, err := svc.Search(context.Background(), FilterRequest{
		Category:  "movie",
		Platforms: []string{"DefunctServiceXYZ"},
	}); err != nil {
		t.Fatalf("degraded search must not fail: %v", err)
	}

	if len(client.calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", len(client.calls))
	}
	params := client.calls[0]
	if params.Get("with_watch_providers") != "" || params.Get("with_watch_monetization_types") != "" {
		t.Fatalf("degraded query must carry no platform filter: %v", params)
	}
}

func TestSearch_RetriesTransportErrorsOnce(t *testing.T) {
	client := &stubDiscover{
		errs: []error{errors.New("tmdb: connection reset")},
		byType: map[string]*tmdb.DiscoverResponse{
			"movie": {Results: []tmdb.DiscoverItem{{ID: 1, Title: "Relance", VoteAverage: 6}}},
		},
	}
	svc := NewService(client, &stubCatalogs{}, testCategories(), nil)

	res, err := svc.Search(context.Background(), FilterRequest{Category: "movie"})
	if err != nil {
		t.Fatalf("retry should have recovered: %v", err)
	}
	if len(res.Results) != 1 {
		t.Fatalf("results after retry: %d", len(res.Results))
	}
	if got := client.attempt.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestSearch_UpstreamStatusIsNotRetried(t *testing.T) {
	client := &stubDiscover{
		errs: []error{&tmdb.UpstreamError{Status: 401, Body: "invalid key"}},
	}
	svc := NewService(client, &stubCatalogs{}, testCategories(), nil)

	_, err := svc.Search(context.Background(), FilterRequest{Category: "movie"})
	var ue *tmdb.UpstreamError
	if !errors.As(err, &ue) || ue.Status != 401 {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if got := client.attempt.Load(); got != 1 {
		t.Fatalf("upstream status must not be retried, attempts: %d", got)
	}
}

func TestSearch_MissingTokenIsNotRetried(t *testing.T) {
	client := &stubDiscover{errs: []error{tmdb.ErrMissingToken, tmdb.ErrMissingToken}}
	svc := NewService(client, &stubCatalogs{}, testCategories(), nil)

	_, err := svc.Search(context.Background(), FilterRequest{Category: "movie"})
	if !errors.Is(err, tmdb.ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
	if got := client.attempt.Load(); got != 1 {
		t.Fatalf("missing token must not be retried, attempts: %d", got)
	}
}

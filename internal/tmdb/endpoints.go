package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

// ProviderEntry is one streaming/purchase service as listed by upstream.
// The numeric id is only meaningful within the media type it was fetched for.
type ProviderEntry struct {
	ID   int64  `json:"provider_id"`
	Name string `json:"provider_name"`
	Logo string `json:"logo_path"`
}

type providerListResponse struct {
	Results []ProviderEntry `json:"results"`
}

// WatchProviders returns the region's flat provider list for one media type
// ("movie" or "tv").
func (c *Client) WatchProviders(ctx context.Context, mediaType string) ([]ProviderEntry, error) {
	var out providerListResponse
	if err := c.getJSON(ctx, "/watch/providers/"+mediaType, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// GenreList returns the localized genre list for one media type.
func (c *Client) GenreList(ctx context.Context, mediaType string) ([]Genre, error) {
	var out genreListResponse
	if err := c.getJSON(ctx, "/genre/"+mediaType+"/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// DiscoverItem is one row of a discover page. Movies carry title and
// release_date, series carry name and first_air_date; the zero values of the
// other pair are simply absent in the payload.
type DiscoverItem struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language"`
}

type DiscoverResponse struct {
	Page         int            `json:"page"`
	Results      []DiscoverItem `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// Discover runs a filtered catalog browse for one media type.
func (c *Client) Discover(ctx context.Context, mediaType string, params url.Values) (*DiscoverResponse, error) {
	var out DiscoverResponse
	if err := c.getJSON(ctx, "/discover/"+mediaType, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegionOffers is one region's entry of a per-title provider response.
type RegionOffers struct {
	Link     string          `json:"link"`
	Flatrate []ProviderEntry `json:"flatrate"`
	Buy      []ProviderEntry `json:"buy"`
	Rent     []ProviderEntry `json:"rent"`
}

type titleProvidersResponse struct {
	ID      int64                   `json:"id"`
	Results map[string]RegionOffers `json:"results"`
}

// TitleWatchProviders returns the per-region offer map for one title.
func (c *Client) TitleWatchProviders(ctx context.Context, mediaType string, id int64) (map[string]RegionOffers, error) {
	var out titleProvidersResponse
	path := fmt.Sprintf("/%s/%d/watch/providers", mediaType, id)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

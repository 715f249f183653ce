package availability

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/watch-gateway/internal/catalog"
	"github.com/example/watch-gateway/internal/tmdb"
)

// Offer is one service carrying a title under a given monetization kind.
// Names are passed through as upstream reports them, unlike the filter
// catalog which canonicalizes for matching.
type Offer struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Logo *string `json:"logo"`
}

// Availability lists where a single title can be watched in one region.
type Availability struct {
	Region   string  `json:"region"`
	Link     *string `json:"link"`
	Flatrate []Offer `json:"flatrate"`
	Buy      []Offer `json:"buy"`
	Rent     []Offer `json:"rent"`
}

// TitleProviderSource is the slice of the upstream client the resolver needs.
type TitleProviderSource interface {
	TitleWatchProviders(ctx context.Context, mediaType string, id int64) (map[string]tmdb.RegionOffers, error)
	Region() string
}

// Resolver fetches per-title offers and caches them. A title absent from the
// configured region resolves to empty offer lists, not an error.
type Resolver struct {
	client TitleProviderSource
	cache  Cache
	log    *zap.Logger
}

func NewResolver(client TitleProviderSource, cache Cache, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{client: client, cache: cache, log: log}
}

// Get resolves the offers for one title of the given category.
func (r *Resolver) Get(ctx context.Context, cat catalog.Category, id int64) (*Availability, error) {
	key := fmt.Sprintf("%s:%d", cat.MediaType, id)
	if r.cache != nil {
		if v, ok := r.cache.Get(key); ok {
			if av, ok := v.(*Availability); ok {
				return av, nil
			}
		}
	}

	regions, err := r.client.TitleWatchProviders(ctx, cat.MediaType, id)
	if err != nil {
		return nil, err
	}

	region := r.client.Region()
	av := &Availability{
		Region:   region,
		Flatrate: []Offer{},
		Buy:      []Offer{},
		Rent:     []Offer{},
	}
	if offers, ok := regions[region]; ok {
		if offers.Link != "" {
			link := offers.Link
			av.Link = &link
		}
		av.Flatrate = shapeOffers(offers.Flatrate)
		av.Buy = shapeOffers(offers.Buy)
		av.Rent = shapeOffers(offers.Rent)
	} else {
		r.log.Debug("title has no offers in region",
			zap.String("type", cat.MediaType),
			zap.Int64("id", id),
			zap.String("region", region))
	}

	if r.cache != nil {
		r.cache.Set(key, av)
	}
	return av, nil
}

func shapeOffers(entries []tmdb.ProviderEntry) []Offer {
	out := make([]Offer, 0, len(entries))
	for _, e := range entries {
		out = append(out, Offer{
			ID:   e.ID,
			Name: e.Name,
			Logo: tmdb.ImageURL(tmdb.LogoSize, e.Logo),
		})
	}
	return out
}

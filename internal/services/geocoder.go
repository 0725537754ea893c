package services

import (
	"context"
	"strings"
	"time"

	"github.com/jobmapa/scraper/internal/clients/nominatim"
	"github.com/jobmapa/scraper/internal/extract"
	"github.com/jobmapa/scraper/internal/logger"
	"github.com/jobmapa/scraper/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type geocodingClient interface {
	Search(ctx context.Context, query string) (nominatim.Location, error)
}

// Geocoder resolves a composed offer address to coordinates. Geocoding is an
// enrichment: any failure degrades to absent coordinates and a diagnostic,
// never an error. Results are cached since many offers share a location.
type Geocoder struct {
	client     geocodingClient
	cache      *gocache.Cache
	retryDelay time.Duration
}

func NewGeocoder(client geocodingClient, cacheTTL time.Duration) *Geocoder {
	return &Geocoder{
		client:     client,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		retryDelay: 2 * time.Second,
	}
}

// Resolve composes the lookup query from the extracted fields and returns
// coordinates, or a nil pair when nothing could be resolved. The company name
// leads the query only when it is a real name rather than portal boilerplate.
func (g *Geocoder) Resolve(ctx context.Context, company, address, city, region string) (*float64, *float64) {

	query := composeQuery(company, address, city, region)
	if query == "" {
		return nil, nil
	}

	if value, found := g.cache.Get(query); found {
		location := value.(nominatim.Location)
		return &location.Latitude, &location.Longitude
	}

	location, err := g.client.Search(ctx, query)
	if err != nil && !errors.Is(err, nominatim.ErrNoResults) && ctx.Err() == nil {
		// one bounded retry on transient failure; the lookup is idempotent
		time.Sleep(g.retryDelay)
		location, err = g.client.Search(ctx, query)
	}
	if err != nil {
		metrics.GeocodeFailures.Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeGeocode).
			Errorf("geocoding failed for %q: %v", query, err)
		return nil, nil
	}

	g.cache.Set(query, location, gocache.DefaultExpiration)
	log.Debugf("geocoded %q to %v, %v", query, location.Latitude, location.Longitude)
	return &location.Latitude, &location.Longitude
}

func composeQuery(company, address, city, region string) string {
	var parts []string
	if company != "" && !extract.IsGenericCompany(company) {
		parts = append(parts, company)
	}
	for _, part := range []string{address, city, region} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	ScrapeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_offer_scrape_duration_seconds",
			Help:    "Duration of a single offer extraction in seconds.",
			Buckets: []float64{1, 5, 10, 15, 30, 60},
		},
	)
	ScrapedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_offers_scraped_total",
			Help: "Total number of scraped offers, by outcome.",
		},
		[]string{"outcome"},
	)
	FieldMissCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_field_misses_total",
			Help: "Total number of extractor misses, by field.",
		},
		[]string{"field"},
	)
	GeocodeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_geocode_failures_total",
			Help: "Total number of failed geocoding lookups.",
		},
	)
)

func StartMetricsServer(addr string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(ScrapeDuration)
	prometheus.MustRegister(ScrapedCounter)
	prometheus.MustRegister(FieldMissCounter)
	prometheus.MustRegister(GeocodeFailures)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(addr, nil))
	}()
}

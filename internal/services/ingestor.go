package services

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/jobmapa/scraper/internal/entities"
	"github.com/jobmapa/scraper/internal/events"
	"github.com/jobmapa/scraper/internal/logger"
	"github.com/jobmapa/scraper/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// RenderSession is a renderer owning a browser. Sessions must not be shared
// between concurrent extractions; each worker acquires its own.
type RenderSession interface {
	Renderer
	Close()
}

type RenderSessionFactory func() (RenderSession, error)

type jobStore interface {
	Upsert(ctx context.Context, job entities.JobPosting) (entities.JobPosting, bool, error)
	SourceURLs(ctx context.Context) ([]string, error)
}

// Ingestor drives extractions end to end: a bounded worker pool for batches,
// the upsert into storage and the PostingStored event. The geocoder is shared
// across workers so its rate limit applies globally.
type Ingestor struct {
	bus        EventBus.Bus
	newSession RenderSessionFactory
	geocoder   coordinateResolver
	jobs       jobStore
	workers    int
	sourceName string
	cron       *cron.Cron
}

func NewIngestor(bus EventBus.Bus, factory RenderSessionFactory, geocoder coordinateResolver,
	jobs jobStore, workers int, sourceName string) (*Ingestor, error) {

	if workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}

	return &Ingestor{
		bus:        bus,
		newSession: factory,
		geocoder:   geocoder,
		jobs:       jobs,
		workers:    workers,
		sourceName: sourceName,
	}, nil
}

// IngestOne scrapes a single URL and upserts the result. Returns the stored
// posting and whether it was newly created.
func (i *Ingestor) IngestOne(ctx context.Context, url string) (entities.JobPosting, bool, error) {

	session, err := i.newSession()
	if err != nil {
		return entities.JobPosting{}, false, err
	}
	defer session.Close()

	return i.ingestWith(ctx, NewScraper(session, i.geocoder), url)
}

// IngestBatch feeds the URLs through the worker pool. Failed URLs are logged
// and skipped; the batch never aborts as a whole.
func (i *Ingestor) IngestBatch(ctx context.Context, urls []string) {

	urlCh := make(chan string)

	var wg sync.WaitGroup
	for w := 0; w < i.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			i.runWorker(ctx, urlCh)
		}()
	}

	for _, url := range urls {
		select {
		case <-ctx.Done():
			log.Infof("batch ingestion canceled: %v", ctx.Err())
			close(urlCh)
			wg.Wait()
			return
		case urlCh <- url:
		}
	}
	close(urlCh)
	wg.Wait()

	log.Infof("batch ingestion finished, handled %v urls", len(urls))
}

// StartRefresh schedules a periodic re-extraction of every stored URL. The
// full-replace upsert makes a refresh run idempotent.
func (i *Ingestor) StartRefresh(ctx context.Context, cronSpec string) error {

	i.cron = cron.New()

	_, err := i.cron.AddFunc(cronSpec, func() {
		urls, err := i.jobs.SourceURLs(ctx)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to list stored urls: %v", err)
			return
		}
		log.Infof("refreshing %v stored offers", len(urls))
		i.IngestBatch(ctx, urls)
	})
	if err != nil {
		return err
	}

	i.cron.Start()
	log.Infof("refresh scheduler started with spec %q", cronSpec)
	return nil
}

func (i *Ingestor) StopRefresh() {
	if i.cron != nil {
		i.cron.Stop()
	}
}

func (i *Ingestor) runWorker(ctx context.Context, urls <-chan string) {

	session, err := i.newSession()
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeRender).
			Errorf("worker could not acquire a render session: %v", err)
		for range urls {
			// drain so the feeder does not block
		}
		return
	}
	defer session.Close()

	scraper := NewScraper(session, i.geocoder)
	for url := range urls {
		if _, _, err := i.ingestWith(ctx, scraper, url); err != nil {
			log.Errorf("failed to ingest %v: %v", url, err)
		}
	}
}

func (i *Ingestor) ingestWith(ctx context.Context, scraper *Scraper, url string) (entities.JobPosting, bool, error) {

	job, err := scraper.Scrape(ctx, url, i.sourceName)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			metrics.ScrapedCounter.WithLabelValues("no_data").Inc()
		} else {
			metrics.ScrapedCounter.WithLabelValues("render_failed").Inc()
		}
		return entities.JobPosting{}, false, err
	}

	stored, created, err := i.jobs.Upsert(ctx, *job)
	if err != nil {
		metrics.ScrapedCounter.WithLabelValues("store_failed").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to upsert %v: %v", url, err)
		return entities.JobPosting{}, false, err
	}

	if created {
		metrics.ScrapedCounter.WithLabelValues("created").Inc()
	} else {
		metrics.ScrapedCounter.WithLabelValues("updated").Inc()
	}

	i.bus.Publish(events.PostingStoredTopic, events.PostingStored{Job: stored, Created: created})
	return stored, created, nil
}

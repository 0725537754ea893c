package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jobmapa/scraper/internal/browser"
	"github.com/jobmapa/scraper/internal/entities"
	"github.com/jobmapa/scraper/internal/extract"
	"github.com/jobmapa/scraper/internal/logger"
	"github.com/jobmapa/scraper/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNoData means the page rendered but carried nothing identifiable as an
// offer. Such pages are not stored.
var ErrNoData = errors.New("no extractable offer data in page")

type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

type coordinateResolver interface {
	Resolve(ctx context.Context, company, address, city, region string) (*float64, *float64)
}

// Scraper runs the linear extraction pipeline for a single offer URL:
// render, extract, normalize, geocode, assemble. Only a render failure is
// fatal; every later stage degrades to its default.
type Scraper struct {
	renderer Renderer
	geocoder coordinateResolver
}

func NewScraper(renderer Renderer, geocoder coordinateResolver) *Scraper {
	return &Scraper{renderer: renderer, geocoder: geocoder}
}

func (s *Scraper) Scrape(ctx context.Context, url, sourceName string) (*entities.JobPosting, error) {

	startTime := time.Now()
	defer func() {
		metrics.ScrapeDuration.Observe(time.Since(startTime).Seconds())
	}()

	pageHTML, err := s.renderer.Render(ctx, url)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeRender).
			Errorf("failed to render %v: %v", url, err)
		return nil, err
	}

	doc, err := extract.NewDocument(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse rendered page: %v", browser.ErrRenderFailed, err)
	}

	title := extract.Title(doc)

	company := extract.Company(doc)
	if company == "" {
		log.Warnf("no company name found for %v", url)
		metrics.FieldMissCounter.WithLabelValues("company").Inc()
	}

	if title == "" && company == "" {
		return nil, errors.Wrapf(ErrNoData, "nothing extracted from %v", url)
	}

	address, city, region := extract.Location(doc)
	if city == "" && region == "" {
		metrics.FieldMissCounter.WithLabelValues("location").Inc()
	}

	salaryText := extract.SalaryText(doc)
	salaryMin, salaryMax, currency := extract.ParseSalary(salaryText)
	if salaryMin == nil {
		metrics.FieldMissCounter.WithLabelValues("salary").Inc()
	}

	postedAt := extract.PostedAt(doc)
	if postedAt == nil {
		metrics.FieldMissCounter.WithLabelValues("posted_at").Inc()
	}

	description := extract.Description(doc, company, title, city, region)

	latitude, longitude := s.geocoder.Resolve(ctx, company, address, city, region)

	job := &entities.JobPosting{
		SourceName:    sourceName,
		SourceURL:     url,
		Title:         title,
		Company:       company,
		Address:       address,
		City:          city,
		Region:        region,
		Latitude:      latitude,
		Longitude:     longitude,
		IsRemote:      extract.IsRemote(doc),
		SalaryText:    salaryText,
		SalaryMin:     salaryMin,
		SalaryMax:     salaryMax,
		Currency:      currency,
		ContractTypes: extract.ContractTypes(doc.FullText()),
		WorkTime:      extract.WorkTime(doc),
		PostedAt:      postedAt,
		Duties:        extract.ListSection(doc, "responsibilities"),
		Requirements:  extract.ListSection(doc, "requirements"),
		Benefits:      extract.ListSection(doc, "benefits"),
		Description:   description,
	}

	return job, nil
}

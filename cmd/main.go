package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/jobmapa/scraper/internal/browser"
	"github.com/jobmapa/scraper/internal/clients/nominatim"
	"github.com/jobmapa/scraper/internal/config"
	"github.com/jobmapa/scraper/internal/logger"
	"github.com/jobmapa/scraper/internal/metrics"
	"github.com/jobmapa/scraper/internal/notifier"
	"github.com/jobmapa/scraper/internal/repositories"
	"github.com/jobmapa/scraper/internal/services"
	log "github.com/sirupsen/logrus"
)

func buildIngestor(cfg *config.Config, jobs *repositories.Jobs, bus EventBus.Bus, source string) *services.Ingestor {

	geoClient := nominatim.NewClient(cfg.Geocoder.Endpoint, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)
	geoClient.SetRateLimit(cfg.Geocoder.MaxRequestsPerSecond)
	geocoder := services.NewGeocoder(geoClient, cfg.Geocoder.CacheTTL)

	factory := func() (services.RenderSession, error) {
		return browser.NewChromium(cfg.Scraper.RenderTimeout, cfg.Scraper.DebugArtifact)
	}

	ingestor, err := services.NewIngestor(bus, factory, geocoder, jobs, cfg.Scraper.Workers, source)
	if err != nil {
		log.Fatalf("can't create ingestor: %v", err)
	}
	return ingestor
}

func readURLs(path string) []string {

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("can't open batch file: %v", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err = scanner.Err(); err != nil {
		log.Fatalf("can't read batch file: %v", err)
	}
	return urls
}

func main() {

	url := flag.String("url", "", "job offer url to extract")
	source := flag.String("source", "", "source name override for stored postings")
	batch := flag.String("batch", "", "file with one offer url per line")
	watch := flag.Bool("watch", false, "keep running and refresh stored offers on schedule")
	repair := flag.Bool("repair", false, "reset malformed list columns to empty arrays and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(":9090")

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)

	if *repair {
		repaired, err := jobs.RepairListFields(ctx)
		if err != nil {
			log.Fatalf("repair failed: %v", err)
		}
		log.Infof("repaired %v malformed list values", repaired)
		return
	}

	sourceName := cfg.Scraper.DefaultSource
	if *source != "" {
		sourceName = *source
	}

	bus := EventBus.New()
	if cfg.Notifier.Enabled() {
		if _, err = notifier.NewTelegram(cfg.Notifier.TgToken, cfg.Notifier.TgChatID, bus); err != nil {
			log.Fatalf("can't create telegram notifier: %v", err)
		}
	}

	ingestor := buildIngestor(cfg, jobs, bus, sourceName)

	switch {
	case *url != "":
		stored, created, err := ingestor.IngestOne(ctx, *url)
		if err != nil {
			log.Fatalf("extraction failed for %v: %v", *url, err)
		}
		if created {
			log.Infof("created posting %q from %v", stored.Title, *url)
		} else {
			log.Infof("updated posting %q from %v", stored.Title, *url)
		}
	case *batch != "":
		ingestor.IngestBatch(ctx, readURLs(*batch))
	case *watch:
		if cfg.Scraper.RefreshCron == "" {
			log.Fatal("watch mode needs scraper.refresh_cron to be set")
		}
		if err = ingestor.StartRefresh(ctx, cfg.Scraper.RefreshCron); err != nil {
			log.Fatalf("can't start refresh scheduler: %v", err)
		}
		<-ctx.Done()
		log.Info("Shutting down services...")
		ingestor.StopRefresh()
		log.Info("Services stopped.")
	default:
		log.Fatal("nothing to do: pass -url, -batch, -watch or -repair")
	}
}

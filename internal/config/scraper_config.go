package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ScraperConfig struct {
	DefaultSource string        `mapstructure:"default_source"`
	RenderTimeout time.Duration `mapstructure:"render_timeout"`
	DebugArtifact string        `mapstructure:"debug_artifact"`
	Workers       int           `mapstructure:"workers"`
	RefreshCron   string        `mapstructure:"refresh_cron"`
}

func (config ScraperConfig) validate() error {
	var errs []error

	if config.DefaultSource == "" {
		errs = append(errs, fmt.Errorf("missing variable: default_source"))
	}
	if config.RenderTimeout <= 0 {
		errs = append(errs, fmt.Errorf("render_timeout must be positive"))
	}
	if config.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config ScraperConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("scraper.default_source", "SCRAPER_DEFAULT_SOURCE")
	if err != nil {
		return err
	}

	err = viper.BindEnv("scraper.render_timeout", "SCRAPER_RENDER_TIMEOUT")
	if err != nil {
		return err
	}

	err = viper.BindEnv("scraper.debug_artifact", "SCRAPER_DEBUG_ARTIFACT")
	if err != nil {
		return err
	}

	err = viper.BindEnv("scraper.workers", "SCRAPER_WORKERS")
	if err != nil {
		return err
	}

	return viper.BindEnv("scraper.refresh_cron", "SCRAPER_REFRESH_CRON")
}

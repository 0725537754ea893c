package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type GeocoderConfig struct {
	Endpoint             string        `mapstructure:"endpoint"`
	UserAgent            string        `mapstructure:"user_agent"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
}

func (config GeocoderConfig) validate() error {
	var errs []error

	if config.Endpoint == "" {
		errs = append(errs, fmt.Errorf("missing variable: endpoint"))
	}
	if config.UserAgent == "" {
		errs = append(errs, fmt.Errorf("missing variable: user_agent"))
	}
	if config.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive"))
	}
	if config.MaxRequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config GeocoderConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("geocoder.endpoint", "GEOCODER_ENDPOINT")
	if err != nil {
		return err
	}

	err = viper.BindEnv("geocoder.user_agent", "GEOCODER_USER_AGENT")
	if err != nil {
		return err
	}

	err = viper.BindEnv("geocoder.timeout", "GEOCODER_TIMEOUT")
	if err != nil {
		return err
	}

	return viper.BindEnv("geocoder.max_requests_per_second", "GEOCODER_MAX_REQUESTS_PER_SECOND")
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	os.Setenv("CONFIG_PATH", "../../configs/config.yaml")
	os.Setenv("DB_CONNECTION_STRING", "override.db")
	os.Setenv("SCRAPER_DEFAULT_SOURCE", "nofluffjobs.com")
	os.Setenv("SCRAPER_RENDER_TIMEOUT", "20s")
	os.Setenv("GEOCODER_USER_AGENT", "OverrideAgent/2.0")
	os.Setenv("LOG_LEVEL", "DEBUG")
	defer func() {
		os.Unsetenv("DB_CONNECTION_STRING")
		os.Unsetenv("SCRAPER_DEFAULT_SOURCE")
		os.Unsetenv("SCRAPER_RENDER_TIMEOUT")
		os.Unsetenv("GEOCODER_USER_AGENT")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg := Get()

	assert.Equal(t, "override.db", cfg.DB.ConnectionString)
	assert.Equal(t, "nofluffjobs.com", cfg.Scraper.DefaultSource)
	assert.Equal(t, 20*time.Second, cfg.Scraper.RenderTimeout)
	assert.Equal(t, "OverrideAgent/2.0", cfg.Geocoder.UserAgent)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
}

func Test_Config_DefaultsAreApplied(t *testing.T) {

	os.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	cfg := Get()

	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.Geocoder.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, "debug_offer.html", cfg.Scraper.DebugArtifact)
	assert.GreaterOrEqual(t, cfg.Scraper.Workers, 1)
}

func Test_ScraperConfig_RejectsZeroWorkers(t *testing.T) {

	cfg := ScraperConfig{
		DefaultSource: "pracuj.pl",
		RenderTimeout: 15 * time.Second,
		Workers:       0,
	}

	assert.Error(t, cfg.validate())
}

func Test_NotifierConfig_TokenRequiresChatID(t *testing.T) {

	assert.NoError(t, NotifierConfig{}.validate())
	assert.Error(t, NotifierConfig{TgToken: "token"}.validate())
	assert.NoError(t, NotifierConfig{TgToken: "token", TgChatID: 42}.validate())
}

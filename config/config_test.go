/* config_test.go
 * Contains unit tests for config.go and logging.go
 */

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region ParseEnv tests

func TestParseEnv_Defaults(t *testing.T) {
	var cfg Config
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "https://capycap.ai/api/captcha/verify", cfg.Captcha.VerifyURL)
	assert.Equal(t, "https://capycap.ai/widget.js", cfg.Captcha.WidgetURL)
	assert.Equal(t, 10*time.Second, cfg.Captcha.Timeout)
	assert.Equal(t, "horizons", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, 5, cfg.Submit.Burst)
	assert.False(t, cfg.Discord.Enabled())
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("HORIZONS_LISTEN_ADDR", ":9090")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://horizons.dev,https://www.horizons.dev")
	t.Setenv("CAPYCAP_SITEKEY", "site-key")
	t.Setenv("CAPYCAP_TIMEOUT", "2s")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SUBMIT_RATE_BURST", "2")
	t.Setenv("DISCORD_WEBHOOK_ID", "123")
	t.Setenv("DISCORD_WEBHOOK_TOKEN", "abc")

	var cfg Config
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, []string{"https://horizons.dev", "https://www.horizons.dev"}, cfg.AllowOrigins)
	assert.Equal(t, "site-key", cfg.Captcha.SiteKey)
	assert.Equal(t, 2*time.Second, cfg.Captcha.Timeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, 2, cfg.Submit.Burst)
	assert.True(t, cfg.Discord.Enabled())
}

func TestParseEnv_Error(t *testing.T) {
	t.Setenv("MONGO_TIMEOUT", "soon")

	var cfg Config
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"))
}

// endregion

// region ValidateServe tests

func TestValidateServe(t *testing.T) {
	valid := Config{
		Captcha: CaptchaConfig{SiteKey: "key"},
		Mongo:   MongoConfig{URI: "mongodb://localhost", Database: "horizons"},
	}
	assert.NoError(t, valid.ValidateServe())

	noKey := valid
	noKey.Captcha.SiteKey = ""
	assert.ErrorContains(t, noKey.ValidateServe(), "CAPYCAP_SITEKEY")

	noURI := valid
	noURI.Mongo.URI = ""
	assert.ErrorContains(t, noURI.ValidateServe(), "MONGO_URI")

	noDB := valid
	noDB.Mongo.Database = ""
	assert.ErrorContains(t, noDB.ValidateServe(), "MONGO_DB_NAME")
}

// endregion

// region SetupLogger tests

func TestSetupLogger_Levels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lvl := SetupLogger(tt.input, "json")
			assert.Equal(t, tt.expected, lvl)
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

// endregion

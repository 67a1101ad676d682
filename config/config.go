/* config.go
 * Contains the environment backed configuration for the site. Values are read from the process environment,
 * optionally seeded from a `.env` file in the working directory.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the structure that holds all global configuration data
type Config struct {
	ListenAddr   string   `env:"HORIZONS_LISTEN_ADDR" envDefault:":8080"`
	ServerURL    string   `env:"HORIZONS_SERVER_URL" envDefault:"http://localhost:8080"`
	GinDebugMode bool     `env:"GIN_DEBUG_MODE"`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string   `env:"LOG_FORMAT" envDefault:"json"`
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	Captcha CaptchaConfig
	Mongo   MongoConfig
	Submit  SubmitConfig
	Discord DiscordConfig
}

// CaptchaConfig describes the captcha vendor. The site key is public and is also embedded in rendered pages.
type CaptchaConfig struct {
	SiteKey   string        `env:"CAPYCAP_SITEKEY"`
	VerifyURL string        `env:"CAPYCAP_VERIFY_URL" envDefault:"https://capycap.ai/api/captcha/verify"`
	WidgetURL string        `env:"CAPYCAP_WIDGET_URL" envDefault:"https://capycap.ai/widget.js"`
	Timeout   time.Duration `env:"CAPYCAP_TIMEOUT" envDefault:"10s"`
	RateLimit float64       `env:"CAPYCAP_RATE_LIMIT" envDefault:"20"` // outbound verifications per second
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI"`
	Database string        `env:"MONGO_DB_NAME" envDefault:"horizons"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT" envDefault:"5s"`
}

// SubmitConfig throttles form and JSON submissions per client IP.
type SubmitConfig struct {
	RateLimit float64 `env:"SUBMIT_RATE_LIMIT" envDefault:"1"`
	Burst     int     `env:"SUBMIT_RATE_BURST" envDefault:"5"`
}

// DiscordConfig points at an optional organizer channel webhook. Notifications are disabled when either value is empty.
type DiscordConfig struct {
	WebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	WebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

// Enabled reports whether a webhook has been configured
func (d DiscordConfig) Enabled() bool {
	return d.WebhookID != "" && d.WebhookToken != ""
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads an optional `.env` file and then parses the environment into a Config.
// A missing `.env` file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateServe checks the values the web server cannot start without
func (c Config) ValidateServe() error {
	if c.Captcha.SiteKey == "" {
		return errors.New("CAPYCAP_SITEKEY is required")
	}
	if c.Mongo.URI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.Mongo.Database == "" {
		return errors.New("MONGO_DB_NAME cannot be empty")
	}
	return nil
}

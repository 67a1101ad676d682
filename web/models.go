package web

import (
	"context"
	"html/template"

	"horizons-site/api/captcha"
	"horizons-site/api/flow"
	"horizons-site/api/store"
)

// CaptchaVerifier checks a token with the captcha vendor
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (captcha.Result, error)
}

// Store is the persistence the submission handlers need
type Store interface {
	flow.RegistrationWriter
	flow.InterestWriter
}

// Config holds the configuration for the web server
type Config struct {
	Addr         string
	AllowOrigins []string
	Debug        bool

	SiteKey   string
	WidgetURL string

	Captcha  CaptchaVerifier
	Store    Store
	Notifier flow.Notifier

	SubmitRateLimit float64
	SubmitBurst     int
}

// Server serves the site's pages and API
type Server struct {
	captcha  CaptchaVerifier
	store    Store
	notifier flow.Notifier

	siteKey      string
	widgetURL    string
	allowOrigins []string

	pages   *template.Template
	limiter *ipLimiter
	metrics *metrics
}

var _ Store = (*store.Store)(nil)

type verifyCaptchaRequest struct {
	Token string `json:"token" binding:"required"`
}

type registrationRequest struct {
	flow.RegistrationForm
	Token string `json:"token"`
}

type interestRequest struct {
	Email string `json:"email" form:"email"`
	Token string `json:"token"`
}

// submissionResponse is the body of the JSON submission endpoints
type submissionResponse struct {
	Status  flow.Status `json:"status"`
	Message string      `json:"message,omitempty"`
}

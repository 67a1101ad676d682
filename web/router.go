/* router.go
 * Contains the server constructor and the route table
 */

package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewServer builds a server from cfg. Captcha and Store are required.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Captcha == nil {
		return nil, fmt.Errorf("captcha verifier is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}

	pages, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		captcha:      cfg.Captcha,
		store:        cfg.Store,
		notifier:     cfg.Notifier,
		siteKey:      cfg.SiteKey,
		widgetURL:    cfg.WidgetURL,
		allowOrigins: cfg.AllowOrigins,
		pages:        pages,
		limiter:      newIPLimiter(cfg.SubmitRateLimit, cfg.SubmitBurst),
		metrics:      newMetrics(),
	}, nil
}

func (s *Server) corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	if len(s.allowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.allowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	return corsConfig
}

// Router builds the gin engine with every route registered
func (s *Server) Router() (*gin.Engine, error) {
	corsConfig := s.corsConfig()
	if err := corsConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS configuration: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(s.pages)

	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", HealthHandler)
	r.GET("/metrics", s.metrics.handler())

	// pages
	{
		r.GET("/", s.LandingPage)
		r.GET("/register", s.RegisterPage)
		r.POST("/register", s.rateLimit(), s.SubmitRegistrationForm)
		r.POST("/interest", s.rateLimit(), s.SubmitInterestForm)
	}

	api := r.Group("/api")
	api.Use(s.rateLimit())
	{
		api.POST("/verify-captcha", s.VerifyCaptchaHandler)
		api.POST("/registrations", s.SubmitRegistrationJSON)
		api.POST("/interest-emails", s.SubmitInterestJSON)
	}

	return r, nil
}

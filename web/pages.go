/* pages.go
 * Contains the handlers that render the landing and registration pages
 */

package web

import (
	"net/http"

	"horizons-site/api/flow"

	"github.com/gin-gonic/gin"
)

const (
	landingTemplate  = "landing.html"
	registerTemplate = "register.html"
)

type captchaView struct {
	SiteKey   string
	Container string
	Widget    *FormWidget
}

type landingPage struct {
	Captcha      captchaView
	InterestOpen bool
	Email        string
	Status       flow.Status
	Message      string
}

type registerPage struct {
	Captcha          captchaView
	Form             flow.RegistrationForm
	Status           flow.Status
	Message          string
	GraduationYears  []flow.Choice
	ExperienceLevels []flow.Choice
}

func (s *Server) captchaView(container string, widget *FormWidget) captchaView {
	return captchaView{SiteKey: s.siteKey, Container: container, Widget: widget}
}

func (s *Server) landingData(i *flow.Interest, widget *FormWidget) landingPage {
	return landingPage{
		Captcha:      s.captchaView(i.Container(), widget),
		InterestOpen: i.IsOpen(),
		Email:        i.Email(),
		Status:       i.Status(),
		Message:      i.Message(),
	}
}

func (s *Server) registerData(r *flow.Registration, widget *FormWidget) registerPage {
	return registerPage{
		Captcha:          s.captchaView(r.Container(), widget),
		Form:             r.Form(),
		Status:           r.Status(),
		Message:          r.Message(),
		GraduationYears:  flow.GraduationYears,
		ExperienceLevels: flow.ExperienceLevels,
	}
}

func (s *Server) newInterest(widget flow.Widget) *flow.Interest {
	return flow.NewInterest(widget, s.verifier(), s.store, flow.WithNotifier(s.notifier))
}

func (s *Server) newRegistration(widget flow.Widget) *flow.Registration {
	return flow.NewRegistration(widget, s.verifier(), s.store, flow.WithNotifier(s.notifier))
}

// LandingPage handles GET /. The interest overlay starts open with ?interest=open.
func (s *Server) LandingPage(c *gin.Context) {
	widget := NewFormWidget(s.widgetURL, nil)
	i := s.newInterest(widget)
	if c.Query("interest") == "open" {
		i.Open()
	}
	c.HTML(http.StatusOK, landingTemplate, s.landingData(i, widget))
}

// RegisterPage handles GET /register
func (s *Server) RegisterPage(c *gin.Context) {
	widget := NewFormWidget(s.widgetURL, nil)
	r := s.newRegistration(widget)
	r.Mount()
	c.HTML(http.StatusOK, registerTemplate, s.registerData(r, widget))
}

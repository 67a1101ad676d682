/* submissions.go
 * Contains the handlers that run the registration and interest flows for HTML form posts and JSON requests
 */

package web

import (
	"errors"
	"net/http"

	"horizons-site/api/flow"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
)

const (
	registrationFlow = "registration"
	interestFlow     = "interest"

	msgInvalidBody = "Invalid request body."
)

// statusForError maps a flow error onto an HTTP status
func statusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, flow.ErrSubmissionInFlight):
		return http.StatusConflict
	case flow.IsUserError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SubmitRegistrationForm handles POST /register from the registration page
func (s *Server) SubmitRegistrationForm(c *gin.Context) {
	var form flow.RegistrationForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Msg("unreadable registration form")
		c.String(http.StatusBadRequest, msgInvalidBody)
		return
	}

	widget := NewFormWidget(s.widgetURL, c.Request.PostForm)
	r := s.newRegistration(widget)
	r.Mount()
	r.SetForm(form)

	err := r.Submit(c.Request.Context())
	s.metrics.recordSubmission(registrationFlow, err)

	c.HTML(statusForError(err), registerTemplate, s.registerData(r, widget))
}

// SubmitInterestForm handles POST /interest from the landing page overlay. Success redirects home with the overlay
// closed; failures re-render the overlay with the message.
func (s *Server) SubmitInterestForm(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Msg("unreadable interest form")
		c.String(http.StatusBadRequest, msgInvalidBody)
		return
	}

	widget := NewFormWidget(s.widgetURL, c.Request.PostForm)
	i := s.newInterest(widget)
	i.Open()
	i.SetEmail(c.Request.PostForm.Get("email"))

	err := i.Submit(c.Request.Context())
	s.metrics.recordSubmission(interestFlow, err)

	if err == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(statusForError(err), landingTemplate, s.landingData(i, widget))
}

// SubmitRegistrationJSON handles POST /api/registrations
func (s *Server) SubmitRegistrationJSON(c *gin.Context) {
	var req registrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, submissionResponse{Status: flow.StatusError, Message: msgInvalidBody})
		return
	}

	r := s.newRegistration(flow.NewStaticWidget(req.Token))
	r.SetForm(req.RegistrationForm)

	err := r.Submit(c.Request.Context())
	s.metrics.recordSubmission(registrationFlow, err)

	c.JSON(statusForError(err), submissionResponse{Status: r.Status(), Message: r.Message()})
}

// SubmitInterestJSON handles POST /api/interest-emails
func (s *Server) SubmitInterestJSON(c *gin.Context) {
	var req interestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, submissionResponse{Status: flow.StatusError, Message: msgInvalidBody})
		return
	}

	i := s.newInterest(flow.NewStaticWidget(req.Token))
	i.SetEmail(req.Email)

	err := i.Submit(c.Request.Context())
	s.metrics.recordSubmission(interestFlow, err)

	c.JSON(statusForError(err), submissionResponse{Status: i.Status(), Message: i.Message()})
}

/* registration.go
 * Contains the registration flow: it holds the form state, reads the captcha token from the widget, verifies it and
 * merge-writes the registrant's record keyed by email
 */

package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"horizons-site/api/store"

	"github.com/rs/zerolog/log"
)

// RegistrationForm is the data entered on the registration page
type RegistrationForm struct {
	FullName       string `json:"fullName" form:"fullName" validate:"required"`
	Email          string `json:"email" form:"email" validate:"required,email"`
	School         string `json:"school" form:"school"`
	GraduationYear string `json:"graduationYear" form:"graduationYear"`
	TravelingFrom  string `json:"travelingFrom" form:"travelingFrom"`
	Experience     string `json:"experience" form:"experience"`
}

func (f RegistrationForm) trimmed() RegistrationForm {
	return RegistrationForm{
		FullName:       strings.TrimSpace(f.FullName),
		Email:          strings.TrimSpace(f.Email),
		School:         strings.TrimSpace(f.School),
		GraduationYear: strings.TrimSpace(f.GraduationYear),
		TravelingFrom:  strings.TrimSpace(f.TravelingFrom),
		Experience:     strings.TrimSpace(f.Experience),
	}
}

// RegistrationWriter persists registrations
type RegistrationWriter interface {
	MergeRegistration(ctx context.Context, registration store.Registration) error
}

// Registration drives one registration form. Its status moves idle -> loading -> success or error; error keeps the
// entered values and allows another Submit.
type Registration struct {
	machine

	formMu    sync.Mutex
	form      RegistrationForm
	widget    Widget
	container string
	verifier  Verifier
	store     RegistrationWriter
	notifier  Notifier
}

// NewRegistration creates an idle registration flow
func NewRegistration(widget Widget, verifier Verifier, writer RegistrationWriter, opts ...Option) *Registration {
	o := applyOptions(opts)
	r := &Registration{
		widget:    widget,
		container: o.container,
		verifier:  verifier,
		store:     writer,
		notifier:  o.notifier,
	}
	r.setup(o.onTransition)
	return r
}

// Mount renders the captcha challenge for this form
func (r *Registration) Mount() {
	r.widget.Render(r.container)
}

// Container returns the id of the element the challenge is mounted into
func (r *Registration) Container() string {
	return r.container
}

// SetForm replaces the entered values
func (r *Registration) SetForm(form RegistrationForm) {
	r.formMu.Lock()
	defer r.formMu.Unlock()
	r.form = form
}

// Form returns the entered values
func (r *Registration) Form() RegistrationForm {
	r.formMu.Lock()
	defer r.formMu.Unlock()
	return r.form
}

// Submit runs the submission algorithm
// Preconditions: The form has been filled in with SetForm and the widget holds a solved challenge
// Postconditions: Status is success and the record has been merged into the store, or status is error with a user
// facing Message and the returned error says why. Returns ErrSubmissionInFlight without changing anything while
// another Submit is running.
func (r *Registration) Submit(ctx context.Context) error {
	release, err := r.acquire()
	if err != nil {
		return err
	}
	defer release()

	form := r.Form().trimmed()
	record, err := r.validate(form)
	if err != nil {
		return err
	}

	token := r.widget.Token(r.container)
	if token == "" {
		r.fail(MsgMissingToken)
		return ErrMissingToken
	}

	r.transition(StatusLoading, "")

	// Every verified attempt consumes the challenge
	defer r.widget.Reset(r.container)

	ok, err := r.verifier.VerifyToken(ctx, token)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("flow", "registration").Msg("error verifying captcha")
		r.fail(MsgGeneric)
		return fmt.Errorf("verifying captcha: %w", err)
	}
	if !ok {
		r.fail(MsgCaptchaRejected)
		return ErrCaptchaRejected
	}

	if err := r.store.MergeRegistration(ctx, record); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("flow", "registration").Msg("error submitting registration")
		r.fail(MsgGeneric)
		return fmt.Errorf("saving registration: %w", err)
	}

	r.transition(StatusSuccess, "")

	if r.notifier != nil {
		if err := r.notifier.RegistrationReceived(ctx, record); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to notify organizers of registration")
		}
	}
	return nil
}

// validate checks the form and builds the record to store. Failures set the error status.
func (r *Registration) validate(form RegistrationForm) (store.Registration, error) {
	if err := checkRequired(form); err != nil {
		if errors.Is(err, ErrMissingFields) {
			r.fail(MsgMissingFields)
		} else {
			r.fail(MsgInvalidEmail)
		}
		return store.Registration{}, err
	}

	graduationYear, err := resolveField("graduationYear", form.GraduationYear, GraduationYears)
	if err != nil {
		r.fail(invalidOptionMessage("graduation year"))
		return store.Registration{}, err
	}
	experience, err := resolveField("experience", form.Experience, ExperienceLevels)
	if err != nil {
		r.fail(invalidOptionMessage("experience level"))
		return store.Registration{}, err
	}

	return store.Registration{
		Email:          form.Email,
		FullName:       form.FullName,
		School:         form.School,
		GraduationYear: graduationYear,
		TravelingFrom:  form.TravelingFrom,
		Experience:     experience,
	}, nil
}

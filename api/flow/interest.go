/* interest.go
 * Contains the interest capture flow shown in the "Stay Updated" overlay. Same shape as the registration flow but
 * with a single email field; success closes the overlay and returns to idle.
 */

package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// InterestWriter persists interest emails
type InterestWriter interface {
	MergeInterestEmail(ctx context.Context, email string) error
}

type interestForm struct {
	Email string `json:"email" validate:"required,email"`
}

type Interest struct {
	machine

	formMu    sync.Mutex
	email     string
	open      bool
	widget    Widget
	container string
	verifier  Verifier
	store     InterestWriter
	notifier  Notifier
	onClose   func()
}

// NewInterest creates a closed, idle interest flow
func NewInterest(widget Widget, verifier Verifier, writer InterestWriter, opts ...Option) *Interest {
	o := applyOptions(opts)
	i := &Interest{
		widget:    widget,
		container: o.container,
		verifier:  verifier,
		store:     writer,
		notifier:  o.notifier,
		onClose:   o.onClose,
	}
	i.setup(o.onTransition)
	return i
}

// Open shows the overlay and renders its challenge
func (i *Interest) Open() {
	i.formMu.Lock()
	i.open = true
	i.formMu.Unlock()
	i.widget.Render(i.container)
}

// Close hides the overlay
func (i *Interest) Close() {
	i.formMu.Lock()
	wasOpen := i.open
	i.open = false
	i.formMu.Unlock()

	if wasOpen && i.onClose != nil {
		i.onClose()
	}
}

func (i *Interest) IsOpen() bool {
	i.formMu.Lock()
	defer i.formMu.Unlock()
	return i.open
}

func (i *Interest) Container() string {
	return i.container
}

func (i *Interest) SetEmail(email string) {
	i.formMu.Lock()
	defer i.formMu.Unlock()
	i.email = email
}

func (i *Interest) Email() string {
	i.formMu.Lock()
	defer i.formMu.Unlock()
	return i.email
}

// Submit verifies the captcha and records the email
// Postconditions: On success the email field is cleared, the overlay is closed and status is idle. Otherwise status
// is error with a user facing Message.
func (i *Interest) Submit(ctx context.Context) error {
	release, err := i.acquire()
	if err != nil {
		return err
	}
	defer release()

	email := strings.TrimSpace(i.Email())
	if err := checkRequired(interestForm{Email: email}); err != nil {
		if errors.Is(err, ErrMissingFields) {
			i.fail(MsgMissingEmail)
		} else {
			i.fail(MsgInvalidEmail)
		}
		return err
	}

	token := i.widget.Token(i.container)
	if token == "" {
		i.fail(MsgMissingToken)
		return ErrMissingToken
	}

	i.transition(StatusLoading, "")
	defer i.widget.Reset(i.container)

	ok, err := i.verifier.VerifyToken(ctx, token)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("flow", "interest").Msg("error verifying captcha")
		i.fail(MsgGeneric)
		return fmt.Errorf("verifying captcha: %w", err)
	}
	if !ok {
		i.fail(MsgCaptchaRejected)
		return ErrCaptchaRejected
	}

	if err := i.store.MergeInterestEmail(ctx, email); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("flow", "interest").Msg("error adding email")
		i.fail(MsgGeneric)
		return fmt.Errorf("saving interest email: %w", err)
	}

	i.SetEmail("")
	i.transition(StatusIdle, "")
	i.Close()

	if i.notifier != nil {
		if err := i.notifier.InterestReceived(ctx, email); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to notify organizers of interest sign-up")
		}
	}
	return nil
}

/* log.go
 * Contains the notifier used when no webhook is configured. It records sign-up events in the structured log.
 */

package notify

import (
	"context"

	"horizons-site/api/flow"
	"horizons-site/api/store"

	"github.com/rs/zerolog/log"
)

type Log struct{}

var _ flow.Notifier = Log{}

func (Log) RegistrationReceived(ctx context.Context, registration store.Registration) error {
	log.Ctx(ctx).Info().
		Str("event", "registration_submitted").
		Str("email", registration.Email).
		Str("school", registration.School).
		Msg("registration received")
	return nil
}

func (Log) InterestReceived(ctx context.Context, email string) error {
	log.Ctx(ctx).Info().
		Str("event", "interest_email_submitted").
		Str("email", email).
		Msg("interest email received")
	return nil
}

// Multi fans an event out to several notifiers and returns the first error
type Multi []flow.Notifier

var _ flow.Notifier = Multi(nil)

func (m Multi) RegistrationReceived(ctx context.Context, registration store.Registration) error {
	var first error
	for _, n := range m {
		if err := n.RegistrationReceived(ctx, registration); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) InterestReceived(ctx context.Context, email string) error {
	var first error
	for _, n := range m {
		if err := n.InterestReceived(ctx, email); err != nil && first == nil {
			first = err
		}
	}
	return first
}

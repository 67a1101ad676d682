/* options.go
 * Contains the functional options shared by both flows and the Notifier hook they call after a successful write
 */

package flow

import (
	"context"

	"horizons-site/api/store"
)

// Notifier is told about successful submissions. Its errors are logged and never change the flow's outcome.
type Notifier interface {
	RegistrationReceived(ctx context.Context, registration store.Registration) error
	InterestReceived(ctx context.Context, email string) error
}

type options struct {
	container    string
	notifier     Notifier
	onTransition TransitionFunc
	onClose      func()
}

type Option func(*options)

// WithContainer mounts the captcha challenge into a different element
func WithContainer(id string) Option {
	return func(o *options) {
		if id != "" {
			o.container = id
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithTransitionFunc observes every status change
func WithTransitionFunc(fn TransitionFunc) Option {
	return func(o *options) { o.onTransition = fn }
}

// WithCloseFunc is called when the interest overlay closes. Ignored by the registration flow.
func WithCloseFunc(fn func()) Option {
	return func(o *options) { o.onClose = fn }
}

func applyOptions(opts []Option) options {
	o := options{container: DefaultContainer}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

/* widget.go
 * Contains the narrow view of the third-party captcha widget that the flows depend on
 */

package flow

import "sync"

// DefaultContainer is the id of the element the captcha challenge is mounted into
const DefaultContainer = "capycap-captcha"

// Widget is everything the flows need from the captcha widget. Implementations isolate the vendor script.
type Widget interface {
	// Render mounts a challenge into the container
	Render(container string)
	// Reset invalidates the current challenge so a fresh solve is required
	Reset(container string)
	// Token returns the token of the solved challenge, or an empty string
	Token(container string) string
}

// StaticWidget is a Widget whose token is known up front, as for command line and API submissions where the
// challenge was solved elsewhere. Reset discards the token.
type StaticWidget struct {
	mu       sync.Mutex
	token    string
	rendered int
	resets   int
}

var _ Widget = (*StaticWidget)(nil)

func NewStaticWidget(token string) *StaticWidget {
	return &StaticWidget{token: token}
}

func (w *StaticWidget) Render(container string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rendered++
}

func (w *StaticWidget) Reset(container string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.token = ""
	w.resets++
}

func (w *StaticWidget) Token(container string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.token
}

// Resets returns how many times the challenge was invalidated
func (w *StaticWidget) Resets() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resets
}

// Renders returns how many times a challenge was mounted
func (w *StaticWidget) Renders() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rendered
}

// SetToken stores the token of a freshly solved challenge
func (w *StaticWidget) SetToken(token string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.token = token
}

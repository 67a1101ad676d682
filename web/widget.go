/* widget.go
 * Contains the captcha widget adapter for server-rendered pages. The widget script writes the solved token into a
 * hidden form field; the adapter reads it back from the submitted form and tracks which containers the page must mount.
 */

package web

import (
	"fmt"
	"html/template"
	"net/url"
	"sync"

	"horizons-site/api/flow"
)

// TokenField is the hidden input the widget fills with the solved token
const TokenField = "capycap-token"

type FormWidget struct {
	mu        sync.Mutex
	scriptURL string
	form      url.Values

	mounted       []string
	reset         map[string]bool
	scriptEmitted bool
}

var _ flow.Widget = (*FormWidget)(nil)

// NewFormWidget creates a widget for one request. form may be nil for pages rendered without a submission.
func NewFormWidget(scriptURL string, form url.Values) *FormWidget {
	return &FormWidget{
		scriptURL: scriptURL,
		form:      form,
		reset:     make(map[string]bool),
	}
}

// Render queues a container to be mounted when the page loads. Repeated calls are ignored.
func (w *FormWidget) Render(container string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.mounted {
		if c == container {
			return
		}
	}
	w.mounted = append(w.mounted, container)
}

// Reset drops the submitted token so the re-rendered page asks for a fresh challenge
func (w *FormWidget) Reset(container string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset[container] = true
}

func (w *FormWidget) Token(container string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.reset[container] || w.form == nil {
		return ""
	}
	return w.form.Get(TokenField)
}

// WasReset reports whether the challenge in container was invalidated during this request
func (w *FormWidget) WasReset(container string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reset[container]
}

// Mounted returns the containers the page script should mount, in render order
func (w *FormWidget) Mounted() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.mounted...)
}

// ScriptTag returns the widget's script element the first time it is called and nothing afterwards, so a page that
// mounts several challenges loads the script once
func (w *FormWidget) ScriptTag() template.HTML {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.scriptEmitted || w.scriptURL == "" {
		return ""
	}
	w.scriptEmitted = true
	return template.HTML(fmt.Sprintf(`<script src="%s" async></script>`, template.HTMLEscapeString(w.scriptURL)))
}

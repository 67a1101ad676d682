/* models.go
 * Contains the request and result types exchanged with the captcha verification service
 */

package captcha

import (
	"encoding/json"
	"errors"
)

// ErrMalformedResponse is returned when the verification service answers with something that is not a JSON object
// carrying a boolean `success` field
var ErrMalformedResponse = errors.New("malformed verification response")

// VerifyRequest is the body forwarded to the verification service
type VerifyRequest struct {
	Token   string `json:"token"`
	SiteKey string `json:"sitekey"`
}

// Result is the outcome of a single verification. Raw holds the service's response body exactly as received so that
// it can be relayed to callers without re-encoding.
type Result struct {
	Success bool
	Raw     json.RawMessage
}

/* verifier.go
 * Contains the Verifier contract and the HTTP client that checks tokens through the site's verification proxy
 */

package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// VerifyCaptchaPath is the route of the verification proxy
const VerifyCaptchaPath = "/api/verify-captcha"

// Verifier checks a solved captcha token
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (bool, error)
}

// VerifierFunc adapts a function to the Verifier interface
type VerifierFunc func(ctx context.Context, token string) (bool, error)

func (f VerifierFunc) VerifyToken(ctx context.Context, token string) (bool, error) {
	return f(ctx, token)
}

// ProxyVerifier calls the verification proxy over HTTP
type ProxyVerifier struct {
	endpoint   string
	httpClient *http.Client
}

// NewProxyVerifier creates a verifier for the site at baseURL. A nil client gets a 15 second timeout.
func NewProxyVerifier(baseURL string, httpClient *http.Client) *ProxyVerifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &ProxyVerifier{
		endpoint:   strings.TrimRight(baseURL, "/") + VerifyCaptchaPath,
		httpClient: httpClient,
	}
}

// VerifyToken posts the token to the proxy and reads its success flag. A proxy failure answered with 500
// `{success:false}` counts as a rejection. Any other non-2xx status, such as 429 from the rate limiter, is an error.
func (p *ProxyVerifier) VerifyToken(ctx context.Context, token string) (bool, error) {
	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return false, fmt.Errorf("failed to encode token: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := p.httpClient.Do(request)
	if err != nil {
		return false, fmt.Errorf("captcha proxy request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusInternalServerError &&
		(response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices) {
		return false, fmt.Errorf("captcha proxy answered with status %d", response.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode captcha proxy response (status %d): %w", response.StatusCode, err)
	}
	return body.Success, nil
}

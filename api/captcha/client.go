/* client.go
 * Contains the client used to check captcha tokens against the external verification service. The site key is
 * attached here so browsers never talk to the verification endpoint directly.
 */

package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"horizons-site/config"

	"github.com/buger/jsonparser"
	"golang.org/x/time/rate"
)

const maxResponseSize = 64 << 10

// Client verifies captcha tokens. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	verifyURL  string
	siteKey    string
	limiter    *rate.Limiter
}

// NewClient creates a Client from the captcha configuration. A non-positive rate limit disables throttling.
func NewClient(cfg config.CaptchaConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	burst := 1
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
		burst = max(1, int(cfg.RateLimit))
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		verifyURL:  cfg.VerifyURL,
		siteKey:    cfg.SiteKey,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// Verify forwards the token and site key to the verification service
// Preconditions: Receives a context and the token produced by the captcha widget
// Postconditions: Returns the service's verdict together with its raw response body, or an error if the service
// could not be reached or answered with an unusable body
func (c *Client) Verify(ctx context.Context, token string) (Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("waiting for verification slot: %w", err)
	}

	payload, err := json.Marshal(VerifyRequest{Token: token, SiteKey: c.siteKey})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode verification request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create verification request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return Result{}, fmt.Errorf("verification request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read verification response: %w", err)
	}

	// The upstream status code is not meaningful on its own; the body decides
	if !json.Valid(body) {
		return Result{}, fmt.Errorf("%w: status %d", ErrMalformedResponse, response.StatusCode)
	}
	success, err := jsonparser.GetBoolean(body, "success")
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return Result{Success: success, Raw: json.RawMessage(body)}, nil
}

// VerifyToken reports only the verdict of Verify
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	result, err := c.Verify(ctx, token)
	if err != nil {
		return false, err
	}
	return result.Success, nil
}

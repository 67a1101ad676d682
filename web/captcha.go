/* captcha.go
 * Contains the captcha verification proxy. The browser posts the solved token here; the server adds the site key,
 * asks the vendor and hands the vendor's answer back unchanged.
 */

package web

import (
	"context"
	"net/http"

	"horizons-site/api/captcha"
	"horizons-site/api/flow"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var failedVerification = gin.H{"success": false}

// VerifyCaptchaHandler handles POST /api/verify-captcha
// Preconditions: Body is JSON with a non-empty token
// Postconditions: 200 with the vendor's JSON body, otherwise 500 {success:false}. A malformed request is treated
// like any other failure.
func (s *Server) VerifyCaptchaHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req verifyCaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("invalid captcha verification request")
		c.JSON(http.StatusInternalServerError, failedVerification)
		return
	}

	result, err := s.verify(ctx, req.Token)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("captcha verification error")
		c.JSON(http.StatusInternalServerError, failedVerification)
		return
	}

	c.Data(http.StatusOK, "application/json", result.Raw)
}

// verify calls the vendor and records the outcome
func (s *Server) verify(ctx context.Context, token string) (captcha.Result, error) {
	result, err := s.captcha.Verify(ctx, token)
	s.metrics.recordCaptcha(result.Success, err)
	return result, err
}

// verifier adapts the vendor client for the in-process flows so page submissions skip the HTTP hop to the proxy
func (s *Server) verifier() flow.Verifier {
	return flow.VerifierFunc(func(ctx context.Context, token string) (bool, error) {
		result, err := s.verify(ctx, token)
		if err != nil {
			return false, err
		}
		return result.Success, nil
	})
}

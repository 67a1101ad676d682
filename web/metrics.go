/* metrics.go
 * Contains the Prometheus collectors exported on /metrics
 */

package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"horizons-site/api/flow"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	submissions     *prometheus.CounterVec
	captchaChecks   *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "horizons_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{
			"method",
			// Route pattern, not the raw path
			"route",
			"status",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "horizons_submissions_total",
			Help: "Form submissions by flow and outcome.",
		}, []string{
			// registration or interest
			"flow",
			// success, invalid, rejected or error
			"outcome",
		}),
		captchaChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "horizons_captcha_verifications_total",
			Help: "Captcha verifications sent upstream by outcome.",
		}, []string{
			"outcome",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.submissions,
		m.captchaChecks,
	)
	return m
}

func (m *metrics) observeRequest(method string, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *metrics) recordSubmission(flowName string, err error) {
	m.submissions.WithLabelValues(flowName, outcome(err)).Inc()
}

func (m *metrics) recordCaptcha(success bool, err error) {
	switch {
	case err != nil:
		m.captchaChecks.WithLabelValues("error").Inc()
	case success:
		m.captchaChecks.WithLabelValues("success").Inc()
	default:
		m.captchaChecks.WithLabelValues("rejected").Inc()
	}
}

func (m *metrics) handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, flow.ErrCaptchaRejected):
		return "rejected"
	case flow.IsUserError(err):
		return "invalid"
	default:
		return "error"
	}
}

// HealthHandler reports that the process is serving
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

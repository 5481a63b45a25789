// Package selfip discovers the caller's own public IP address through an
// external "what is my IP" JSON endpoint (ipify compatible).
package selfip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/evyataryagoni/ipmapbot/internal/logger"
	"github.com/evyataryagoni/ipmapbot/internal/metrics"
)

// maxResponseBytes caps how much of the provider response we read
const maxResponseBytes = 1 << 20

// ipifyResponse is the expected JSON body: {"ip": "203.0.113.7"}
type ipifyResponse struct {
	IP string `json:"ip"`
}

// Resolver discovers the public IP of the machine the bot runs on
// One outbound HTTP request per call, bounded timeout, no retries
type Resolver struct {
	url     string
	http    *http.Client
	metrics *metrics.Metrics // optional, can be nil
	logger  *logger.Logger
}

// NewResolver creates a self-IP resolver
//
// Parameters:
//   - endpoint: the JSON endpoint, e.g. https://api.ipify.org?format=json
//   - timeout: per-request timeout (5 seconds in the default config)
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewResolver(endpoint string, timeout time.Duration, m *metrics.Metrics, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Resolver{
		url:     endpoint,
		http:    &http.Client{Timeout: timeout},
		metrics: m,
		logger:  log.WithComponent("SelfIPResolver"),
	}
}

// Resolve returns the caller's public IP address
// Any failure (network, bad status, empty ip field) comes back as an
// error; the conversation handler turns that into a "please enter the IP
// manually" reply instead of surfacing the error text
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	ip, err := r.resolve(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Self-IP discovery failed")
		r.count("error")
		return "", err
	}

	r.logger.Info().Str("ip", ip).Msg("Self-IP discovered")
	r.count("success")
	return ip, nil
}

func (r *Resolver) resolve(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("http status %d", resp.StatusCode)
	}

	var parsed ipifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode self-IP response: %w", err)
	}
	if parsed.IP == "" {
		return "", errors.New("empty ip field in self-IP response")
	}

	return parsed.IP, nil
}

// count increments the request counter if metrics are enabled
func (r *Resolver) count(result string) {
	if r.metrics != nil {
		r.metrics.SelfIPRequestsTotal.WithLabelValues(result).Inc()
	}
}

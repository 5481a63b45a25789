// Package geoip implements the client for the external geolocation
// provider (an ip-api.com compatible JSON endpoint).
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/evyataryagoni/ipmapbot/internal/logger"
	"github.com/evyataryagoni/ipmapbot/internal/metrics"
	"github.com/evyataryagoni/ipmapbot/internal/models"
)

// DefaultIP is looked up when the caller supplies no IP at all
const DefaultIP = "127.0.0.1"

// maxResponseBytes caps how much of the provider response we read
const maxResponseBytes = 1 << 20

// providerResponse mirrors the ip-api.com JSON schema
// (see http://ip-api.com/docs/api:json)
// Lat/Lon are pointers so a missing coordinate is distinguishable from 0.0
type providerResponse struct {
	Status     string   `json:"status"`
	Message    string   `json:"message"`
	Query      string   `json:"query"`
	ISP        string   `json:"isp"`
	Country    string   `json:"country"`
	RegionName string   `json:"regionName"`
	City       string   `json:"city"`
	Zip        string   `json:"zip"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
}

// Client performs geo-IP lookups against the provider
// One outbound HTTP request per lookup, bounded timeout, no retries
type Client struct {
	baseURL string           // provider base URL, e.g. http://ip-api.com
	http    *http.Client     // shared HTTP client with the lookup timeout
	metrics *metrics.Metrics // metrics collector (optional, can be nil)
	logger  *logger.Logger   // structured logger
}

// NewClient creates a geo lookup client
//
// Parameters:
//   - baseURL: provider base URL without the /json path
//   - timeout: per-request timeout (10 seconds in the default config)
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		metrics: m,
		logger:  log.WithComponent("GeoClient"),
	}
}

// Lookup resolves geolocation metadata for the given IP address
//
// Flow:
//  1. GET <base>/json/<ip>
//  2. Decode the JSON body
//  3. Provider status "fail" -> LookupError with the provider's message
//  4. Otherwise build an IPRecord; missing fields stay absent, never errors
//
// Failure taxonomy:
//   - transport failure (timeout, DNS, connection, bad status) -> "Network error: ..."
//   - anything else while processing the response -> "An error occurred: ..."
//   - provider status "fail" -> the provider's own message, verbatim
//
// Returns:
//   - *models.IPRecord: the normalized record, nil on any failure
//   - error: always a *LookupError when non-nil
func (c *Client) Lookup(ctx context.Context, ip string) (*models.IPRecord, error) {
	if ip == "" {
		ip = DefaultIP
	}

	start := time.Now()
	body, err := c.fetch(ctx, ip)
	if c.metrics != nil {
		c.metrics.IPLookupDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("ip", ip).Msg("Geo lookup request failed")
		c.countLookup("network_error")
		return nil, &LookupError{
			Message: fmt.Sprintf("Network error: %v", err),
			Err:     err,
		}
	}

	var resp providerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error().Err(err).Str("ip", ip).Msg("Failed to decode provider response")
		c.countLookup("error")
		return nil, &LookupError{
			Message: fmt.Sprintf("An error occurred: %v", err),
			Err:     err,
		}
	}

	if resp.Status == "fail" {
		message := resp.Message
		if message == "" {
			message = "Unknown error"
		}
		c.logger.Warn().Str("ip", ip).Str("reason", message).Msg("Provider reported lookup failure")
		c.countLookup("provider_fail")
		return nil, &LookupError{Message: message}
	}

	record := &models.IPRecord{
		IP:         resp.Query,
		ISP:        resp.ISP,
		Country:    resp.Country,
		Region:     resp.RegionName,
		City:       resp.City,
		PostalCode: resp.Zip,
		Latitude:   resp.Lat,
		Longitude:  resp.Lon,
	}

	c.logger.Info().
		Str("ip", record.IP).
		Str("city", record.City).
		Str("country", record.Country).
		Bool("has_coordinates", record.HasCoordinates()).
		Msg("Geo lookup successful")
	c.countLookup("success")

	return record, nil
}

// fetch performs the HTTP round trip and returns the raw response body
// Every error returned here is a network-level failure
func (c *Client) fetch(ctx context.Context, ip string) ([]byte, error) {
	// url.PathEscape keeps a hostile "ip" string from rewriting the path;
	// valid IPv4 text passes through unchanged
	endpoint := fmt.Sprintf("%s/json/%s", c.baseURL, url.PathEscape(ip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, fmt.Errorf("http status %d", httpResp.StatusCode)
	}

	return body, nil
}

// countLookup increments the lookup counter if metrics are enabled
func (c *Client) countLookup(result string) {
	if c.metrics != nil {
		c.metrics.IPLookupsTotal.WithLabelValues(result).Inc()
	}
}

// Package geocode resolves coordinates to place names through a
// Nominatim-style reverse geocoding service.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/johananj/geocaption/internal/gps"
	"github.com/johananj/geocaption/internal/logger"
)

// Caption sentinels. Both degrade to a display string so rendering is
// uniform regardless of why resolution failed.
const (
	UnknownLocation     = "Unknown Location"
	LocationUnavailable = "Location Unavailable"
)

const userAgent = "geocaption/1.0 (photo caption overlay)"

// Resolver turns a coordinate into a display string. Implementations must be
// total: they always return a value, possibly a sentinel.
type Resolver interface {
	Resolve(ctx context.Context, coord gps.Coordinate) string
}

// Client is a Nominatim reverse-geocoding client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewClient creates a client for the service at baseURL. Each lookup is
// bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		timeout:    timeout,
	}
}

// response is the subset of the Nominatim jsonv2 reverse response we read.
type response struct {
	Error   string  `json:"error"`
	Address address `json:"address"`
}

type address struct {
	Road          string `json:"road"`
	Suburb        string `json:"suburb"`
	City          string `json:"city"`
	StateDistrict string `json:"state_district"`
	State         string `json:"state"`
	Country       string `json:"country"`
}

// fields returns the present address fields in display priority order.
func (a address) fields() []string {
	var parts []string
	for _, part := range []string{a.Road, a.Suburb, a.City, a.StateDistrict, a.State, a.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Resolve reverse-geocodes coord and reduces the structured address to a
// comma-joined locality string. A timeout yields LocationUnavailable, as
// does any other transport or service error; a successful response with no
// usable address yields UnknownLocation. Errors never propagate upward.
func (c *Client) Resolve(ctx context.Context, coord gps.Coordinate) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.reverse(ctx, coord)
	if err != nil {
		if isTimeout(err) {
			logger.Warn("geocoding service timed out for (%.6f, %.6f)", coord.Latitude, coord.Longitude)
		} else {
			logger.Warn("geocoding error for (%.6f, %.6f): %v", coord.Latitude, coord.Longitude, err)
		}
		return LocationUnavailable
	}

	parts := resp.Address.fields()
	if resp.Error != "" || len(parts) == 0 {
		logger.Debug("no address for (%.6f, %.6f)", coord.Latitude, coord.Longitude)
		return UnknownLocation
	}

	place := parts[0]
	for _, p := range parts[1:] {
		place += ", " + p
	}
	return place
}

func (c *Client) reverse(ctx context.Context, coord gps.Coordinate) (*response, error) {
	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=jsonv2&addressdetails=1",
		c.baseURL, coord.Latitude, coord.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Required by the Nominatim usage policy
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Package awc is a client for the aviationweather.gov data API. It
// serves already-decoded METAR and TAF documents; no raw report text
// is parsed here.
package awc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/csiess85/deckenhoehe/internal/wx"
)

const defaultBaseURL = "https://aviationweather.gov/api/data"

// Client fetches METAR and TAF documents batched by ICAO code set.
type Client struct {
	baseURL    string
	httpClient *http.Client
	backoff    BackoffConfig
	circuit    *gobreaker.CircuitBreaker
}

func NewClient(httpClient *http.Client) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "aviationweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// WithBaseURL overrides the API root, mainly for tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// Metars fetches current observations for the given stations in one
// batched request.
func (c *Client) Metars(ctx context.Context, icaoIDs []string) ([]wx.METAR, error) {
	var metars []wx.METAR
	if err := c.fetch(ctx, "metar", icaoIDs, &metars); err != nil {
		return nil, err
	}
	return metars, nil
}

// Tafs fetches forecast documents for the given stations in one
// batched request.
func (c *Client) Tafs(ctx context.Context, icaoIDs []string) ([]wx.TAF, error) {
	var tafs []wx.TAF
	if err := c.fetch(ctx, "taf", icaoIDs, &tafs); err != nil {
		return nil, err
	}
	return tafs, nil
}

func (c *Client) fetch(ctx context.Context, kind string, icaoIDs []string, out interface{}) error {
	if len(icaoIDs) == 0 {
		return fmt.Errorf("no station codes given")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("ids", strings.Join(icaoIDs, ","))
		values.Set("format", "json")

		u := fmt.Sprintf("%s/%s?%s", c.baseURL, kind, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doWithResilience(ctx, c.httpClient, c.backoff, c.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", kind, err)
	}
	return nil
}

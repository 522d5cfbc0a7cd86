package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient that sends and accepts JSON and gives
// up on a request after timeout. A non-positive timeout leaves resty's
// default (no timeout) in place.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}

package utils

import (
	"github.com/go-resty/resty/v2"
)

// userAgent identifies outbound requests made by the server.
const userAgent = "go-live-sync"

// HTTPClient wraps a resty client so adapters share one construction path.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with the server's user agent
// and a JSON Accept header preset.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	return &HTTPClient{Client: client}
}

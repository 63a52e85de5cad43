package tallysdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultAPIPrefix is where the server mounts its API unless configured
// otherwise.
const DefaultAPIPrefix = "/api"

// Client talks to a Tally server. It is safe for concurrent use.
type Client struct {
	BaseURL    string
	APIPrefix  string
	HTTPClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		APIPrefix: DefaultAPIPrefix,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

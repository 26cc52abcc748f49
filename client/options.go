package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Option configures a Client
type Option func(*Client) error

// BaseURL is a Client's option to set the baseURL of the REST client.
func BaseURL(URL *url.URL) Option {
	return func(c *Client) error {
		c.baseURL = URL
		return nil
	}
}

// Remote sets the base URL from a string as given on the command line.
// "host:port" is accepted and means plain http.
func Remote(remote string) Option {
	return func(c *Client) error {
		if !strings.Contains(remote, "://") {
			remote = "http://" + remote
		}

		u, err := url.Parse(remote)
		if err != nil {
			return fmt.Errorf("invalid remote URL: %w", err)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid remote URL '%s': missing host", remote)
		}

		c.baseURL = u
		return nil
	}
}

// HTTPClient is a Client's option to set a specific http.Client.
func HTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = httpClient
		return nil
	}
}

// Timeout limits the duration of every request. The http.Client in use is
// copied first, a client passed in with HTTPClient is not modified.
func Timeout(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return fmt.Errorf("negative timeout %s", d)
		}
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
		return nil
	}
}

// UserAgent overrides the User-Agent header sent with every request.
func UserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// Log sets the logger receiving debug output.
func Log(logger Logger) Option {
	return func(c *Client) error {
		c.log = logger
		return nil
	}
}

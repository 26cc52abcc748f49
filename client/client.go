// Package client talks to the REST API served by "nfs-profile server".
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/moul/http2curl"

	"github.com/pgrigo01/nfs-profile/pkg/rest"
	"github.com/pgrigo01/nfs-profile/pkg/version"
)

// DefaultPort is the port the server listens on unless told otherwise.
const DefaultPort = 8337

type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	log        Logger
	userAgent  string

	Profiles *ProfileService
	Status   *StatusService
}

type clientError string

func (e clientError) Error() string { return string(e) }

const (
	// NotFoundError is returned for 404 responses, e.g. for unknown profiles.
	NotFoundError = clientError("404 Not Found")
)

// Logger receives debug output, such as the curl equivalent of every request.
// A logrus logger fits.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// LoggerFunc turns a printf style function, such as testing.T.Logf, into a Logger.
type LoggerFunc func(format string, args ...interface{})

func (f LoggerFunc) Debugf(format string, args ...interface{}) { f(format, args...) }

func NewClient(options ...Option) (*Client, error) {
	defaultBase, err := url.Parse(fmt.Sprintf("http://localhost:%d", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("failed to parse default URL: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBase,
		userAgent:  version.UserAgent(),
	}

	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.Profiles = &ProfileService{c}
	c.Status = &StatusService{c}
	return c, nil
}

func (c *Client) debugf(format string, args ...interface{}) {
	if c.log != nil {
		c.log.Debugf(format, args...)
	}
}

// newRequest builds a request for path relative to the base URL. A non-nil
// body is sent as JSON.
func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, err
	}

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(rel).String(), buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if curl, err := http2curl.GetCurlCommand(req); err == nil {
		c.debugf("%s", curl)
	}

	return req, nil
}

// do sends req and decodes the response body into v. If v is a *[]byte the
// raw body is stored instead.
func (c *Client) do(req *http.Request, v interface{}) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	switch ret := v.(type) {
	case nil:
	case *[]byte:
		*ret, err = io.ReadAll(resp.Body)
	default:
		err = json.NewDecoder(resp.Body).Decode(v)
	}
	return resp, err
}

// checkResponse turns error statuses into errors. Servers report failures as
// rest.Error, which carries parameter violations if there were any.
func (c *Client) checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return nil
	}

	c.debugf("request failed with status %d (%s)", resp.StatusCode, http.StatusText(resp.StatusCode))
	if resp.StatusCode == http.StatusNotFound {
		return NotFoundError
	}

	var e rest.Error
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return fmt.Errorf("failed to decode error response for status %d: %w", resp.StatusCode, err)
	}
	return &e
}

func (c *Client) doGET(ctx context.Context, url string, ret interface{}) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, ret)
}

func (c *Client) doPOST(ctx context.Context, url string, body interface{}, ret interface{}) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	return c.do(req, ret)
}

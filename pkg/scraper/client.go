package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"edtctl/pkg/logger"

	"github.com/rs/zerolog"
)

var baseURL = "https://ws-edt-cd.wigorservices.net"

// retryDelay is multiplied by the attempt number between retries
var retryDelay = time.Second

const maxAttempts = 3

var (
	// ErrMissingCredentials is returned when the site asks for a login and no password is configured
	ErrMissingCredentials = errors.New("missing credentials: set EDT_USERNAME and EDT_PASSWORD")
	// ErrLoginFailed is returned when the login form is still shown after submitting credentials
	ErrLoginFailed = errors.New("login failed: check your username and password")
)

// Client handles HTTP requests to the Wigor timetable website
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	cache      Cache
	log        zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithCredentials sets the account used for the planning and the CAS login.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithCache stores fetched weeks in the given cache.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithBaseURL points the client at another timetable server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a new scraper client. The cookie jar keeps the CAS session between requests.
func NewClient(opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)

	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		baseURL: baseURL,
		log:     logger.For("scraper"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Username is the account the client fetches plannings for.
func (c *Client) Username() string {
	return c.username
}

func (c *Client) newRequest(ctx context.Context, method, reqURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, err
	}
	// The planning server rejects the default Go user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	return req, nil
}

// get fetches reqURL, retrying up to 3 times on 502/503/504 and network errors.
func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	return c.doWithRetries(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, reqURL, nil)
	})
}

// postForm submits form values to reqURL with the same retry policy as get.
func (c *Client) postForm(ctx context.Context, reqURL string, form url.Values) (*http.Response, error) {
	return c.doWithRetries(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
}

func (c *Client) doWithRetries(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("failed to fetch %s: %w", req.URL.Redacted(), err)
		case resp.StatusCode == http.StatusBadGateway || resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusGatewayTimeout:
			resp.Body.Close()
			lastErr = fmt.Errorf("transient status code %d when fetching %s", resp.StatusCode, req.URL.Redacted())
		case resp.StatusCode != http.StatusOK:
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, req.URL.Redacted())
		default:
			return resp, nil
		}

		if attempt < maxAttempts-1 {
			c.log.Warn().Err(lastErr).Int("attempt", attempt+1).Msg("timetable server not responding, retrying")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt+1) * retryDelay):
			}
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

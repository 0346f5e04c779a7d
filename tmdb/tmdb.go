package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinesearch/movie"

	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	DefaultTimeout = 10 * time.Second

	searchPath   = "/search/movie"
	popularPath  = "/movie/popular"
	trendingPath = "/trending/movie/week"
	upcomingPath = "/movie/upcoming"
)

type Options struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client implements movie.Catalog on top of the TMDB v3 REST API.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	cl       *http.Client
}

var _ movie.Catalog = (*Client)(nil)

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cl := opts.HTTPClient
	if cl == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		cl = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:   strings.TrimSpace(opts.APIKey),
		baseURL:  baseURL,
		language: opts.Language,
		cl:       cl,
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) Search(ctx context.Context, query string) ([]movie.Summary, error) {
	return c.list(ctx, "search", searchPath, url.Values{"query": {query}})
}

func (c *Client) Popular(ctx context.Context) ([]movie.Summary, error) {
	return c.list(ctx, "popular", popularPath, nil)
}

func (c *Client) Trending(ctx context.Context) ([]movie.Summary, error) {
	return c.list(ctx, "trending", trendingPath, nil)
}

func (c *Client) Upcoming(ctx context.Context) ([]movie.Summary, error) {
	return c.list(ctx, "upcoming", upcomingPath, nil)
}

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 8 << 20

// page is the subset of a TMDB paginated response we read; other top-level
// fields (page, total_pages, ...) are ignored.
type page struct {
	Results []json.RawMessage `json:"results"`
}

func (c *Client) list(ctx context.Context, op, path string, params url.Values) ([]movie.Summary, error) {
	if !c.Configured() {
		return nil, &movie.CatalogError{Kind: movie.FailureConfiguration, Op: op, Err: movie.ErrNotConfigured}
	}

	req, err := c.newRequest(ctx, path, params)
	if err != nil {
		return nil, &movie.CatalogError{Kind: movie.FailureConfiguration, Op: op, Err: err}
	}

	resp, err := c.cl.Do(req)
	if err != nil {
		return nil, &movie.CatalogError{Kind: movie.FailureTransport, Op: op, Err: c.redact(err)}
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &movie.CatalogError{
			Kind:       movie.FailureProtocol,
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &movie.CatalogError{Kind: movie.FailureTransport, Op: op, Err: errors.Wrap(c.redact(err), "failed to read response")}
	}

	results, err := decodePage(body)
	if err != nil {
		kind := movie.FailurePayload
		if ctx.Err() != nil {
			kind = movie.FailureTransport
		}
		return nil, &movie.CatalogError{Kind: kind, Op: op, Err: errors.Wrap(c.redact(err), "failed to decode response")}
	}
	return results, nil
}

// decodePage accepts exactly one JSON object with an optional results array.
// A null entry in results is rejected since it carries neither id nor title.
func decodePage(body []byte) ([]movie.Summary, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, errors.New("response body is not a JSON object")
	}

	var p page
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}

	results := make([]movie.Summary, 0, len(p.Results))
	for i, raw := range p.Results {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, errors.Errorf("results[%d] is null", i)
		}
		var s movie.Summary
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errors.Wrapf(err, "results[%d]", i)
		}
		results = append(results, s)
	}
	return results, nil
}

func (c *Client) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base url")
	}

	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if c.language != "" {
		q.Set("language", c.language)
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// redact strips the credential, raw or query-escaped, from errors that echo
// the request URL.
func (c *Client) redact(err error) error {
	if err == nil || c.apiKey == "" {
		return err
	}
	msg := err.Error()
	redacted := strings.ReplaceAll(msg, c.apiKey, "REDACTED")
	redacted = strings.ReplaceAll(redacted, url.QueryEscape(c.apiKey), "REDACTED")
	if redacted == msg {
		return err
	}
	return errors.New(redacted)
}

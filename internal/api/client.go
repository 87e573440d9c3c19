package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/yildizm/pilly/internal/monitor"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	DefaultTimeout = 15 * time.Second
)

// TokenSource supplies the bearer token attached to each request
type TokenSource interface {
	Token() string
}

// Config configures the API client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Metrics receives one entry per request when set
	Metrics *monitor.Requests
}

// Validate checks the client configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return NewError(KindInternal, "", "base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return NewErrorWithCause(KindInternal, "", "invalid base URL", err)
	}
	if c.Timeout <= 0 {
		return NewError(KindInternal, "", "timeout must be positive")
	}
	return nil
}

// Client talks to the Pilly backend
type Client struct {
	baseURL *url.URL
	client  *http.Client
	tokens  TokenSource
	metrics *monitor.Requests
}

// New creates a client. tokens may be nil for anonymous use.
func New(cfg *Config, tokens TokenSource) (*Client, error) {
	if cfg == nil {
		cfg = &Config{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, NewErrorWithCause(KindInternal, "", "invalid base URL", err)
	}

	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		metrics: cfg.Metrics,
	}, nil
}

// GetMyProfile fetches the logged-in user's profile
func (c *Client) GetMyProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/mypage/profile", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Login exchanges username and password for a token
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, NewError(KindDecode, "/auth/login", "response has no access token")
	}
	return &resp, nil
}

// KakaoLogin exchanges an OAuth authorization code for a token
func (c *Client) KakaoLogin(ctx context.Context, code string) (*LoginResponse, error) {
	if code == "" {
		return nil, NewError(KindValidation, "/auth/kakao", "authorization code is required")
	}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/kakao", nil, map[string]string{"code": code}, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, NewError(KindDecode, "/auth/kakao", "response has no access token")
	}
	return &resp, nil
}

// SearchPills runs a filtered pill search
func (c *Client) SearchPills(ctx context.Context, f SearchFilters, page, size int) (*PillSearchResponse, error) {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("keyword", f.Keyword)
	set("drug_shape", f.Shape)
	set("color_class", f.Color)
	set("print_front", f.PrintFront)
	set("print_back", f.PrintBack)
	set("entp_name", f.EntpName)
	set("class_no", f.ClassNo)
	set("sort", f.Sort)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(size))

	var resp PillSearchResponse
	if err := c.do(ctx, http.MethodGet, "/pills", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPosts returns the posts of a board category
func (c *Client) ListPosts(ctx context.Context, category string) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/community/"+url.PathEscape(category), nil, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a single post
func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	var p Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/community/post/%d", id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AdminStats returns the admin dashboard counters
func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var s AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Metrics returns the request metrics, or nil when none are kept
func (c *Client) Metrics() *monitor.Requests {
	return c.metrics
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (err error) {
	start := time.Now()
	defer func() { c.metrics.Track(method, path, time.Since(start), err) }()

	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var body io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return NewErrorWithCause(KindInternal, path, "failed to marshal request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return NewErrorWithCause(KindInternal, path, "failed to create request", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return NewErrorWithCause(KindNetwork, path, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewErrorWithCause(KindDecode, path, "failed to decode response", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) handleErrorResponse(path string, resp *http.Response) error {
	kind := kindForStatus(resp.StatusCode)
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err == nil {
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			if detail, ok := eb.Detail.(string); ok && detail != "" {
				message = detail
			}
		}
	}

	return &Error{Kind: kind, Endpoint: path, StatusCode: resp.StatusCode, Message: message}
}

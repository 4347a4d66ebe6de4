package backoffice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"github.com/five82/tally/internal/listview"
)

// Mutator defines the write side of the API. It is implemented by *Client and
// can be replaced in tests.
type Mutator interface {
	Create(ctx context.Context, res Resource, owner string, fields map[string]any) error
	Update(ctx context.Context, res Resource, owner, id string, fields map[string]any) error
	Delete(ctx context.Context, res Resource, owner, id, credential string) error
}

// Ensure Client implements Mutator at compile time.
var _ Mutator = (*Client)(nil)

// Client talks to the back-office REST API.
type Client struct {
	baseURL *url.URL
	http    *resty.Client
	log     *log.Logger
}

const (
	defaultBaseURL   = "http://127.0.0.1:3000/api"
	defaultUserAgent = "tally/0.1"
	requestTimeout   = 10 * time.Second
)

// Options configure a Client.
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration // zero uses 10s
	Logger  *log.Logger
}

// NewClient builds a Client for the given API base URL.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	rc := resty.New().
		SetBaseURL(base.String()).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", defaultUserAgent)
	if token := strings.TrimSpace(opts.Token); token != "" {
		rc.SetAuthToken(token)
	}

	return &Client{baseURL: base, http: rc, log: logger}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListQuery parameterizes a collection read.
type ListQuery struct {
	Owner      string
	PageNumber int
	PageSize   int
	// Search is sent as JSON to collections that filter on the server.
	Search *listview.SearchConfig
}

// ListResult is one fetched collection.
type ListResult[E any] struct {
	Items      []E
	Pagination *listview.Pagination
}

// List reads a collection of res. Pagination is returned only for paginated
// resources and is normalized so its navigation flags agree with the counters.
func List[E any](ctx context.Context, c *Client, res Resource, q ListQuery) (ListResult[E], error) {
	if c == nil {
		return ListResult[E]{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if owner := strings.TrimSpace(q.Owner); owner != "" {
		values.Set(res.OwnerParam, owner)
	}
	if res.Paginated {
		page := max(q.PageNumber, 1)
		size := q.PageSize
		if !listview.ValidPageSize(size) {
			size = listview.DefaultPageSize
		}
		values.Set("pageNumber", strconv.Itoa(page))
		values.Set("pageSize", strconv.Itoa(size))
	}
	if res.ServerSearch && q.Search != nil {
		raw, err := json.Marshal(q.Search)
		if err != nil {
			return ListResult[E]{}, fmt.Errorf("encode search config: %w", err)
		}
		values.Set("searchConfig", string(raw))
	}

	body, err := c.do(ctx, http.MethodGet, res.Path, values, nil, false)
	if err != nil {
		return ListResult[E]{}, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ListResult[E]{}, fmt.Errorf("decode response: %w", err)
	}
	var out ListResult[E]
	if raw, ok := envelope[res.ListField]; ok {
		if err := json.Unmarshal(raw, &out.Items); err != nil {
			return ListResult[E]{}, fmt.Errorf("decode %s: %w", res.ListField, err)
		}
	} else {
		return ListResult[E]{}, fmt.Errorf("decode response: missing %q", res.ListField)
	}
	if raw, ok := envelope["pagination"]; ok && res.Paginated && string(raw) != "null" {
		var p listview.Pagination
		if err := json.Unmarshal(raw, &p); err != nil {
			return ListResult[E]{}, fmt.Errorf("decode pagination: %w", err)
		}
		p = p.Normalize()
		out.Pagination = &p
	}
	return out, nil
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, res Resource, owner string, fields map[string]any) error {
	_, err := c.do(ctx, http.MethodPost, res.Path, ownerValues(res, owner), fields, false)
	return err
}

// Update replaces the editable fields of record id.
func (c *Client) Update(ctx context.Context, res Resource, owner, id string, fields map[string]any) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("record id required")
	}
	_, err := c.do(ctx, http.MethodPut, recordPath(res, id), ownerValues(res, owner), fields, false)
	return err
}

// Delete removes record id. A non-empty credential is sent in the body for
// privileged resources; the server decides whether it is valid.
func (c *Client) Delete(ctx context.Context, res Resource, owner, id, credential string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("record id required")
	}
	var body any
	if credential != "" {
		body = map[string]string{"managerPassword": credential}
	}
	_, err := c.do(ctx, http.MethodDelete, recordPath(res, id), ownerValues(res, owner), body, credential != "")
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, credential bool) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	c.log.Debug("api request", "method", method, "path", path, "status", resp.StatusCode(), "elapsed", resp.Time())

	if resp.StatusCode() >= http.StatusBadRequest {
		var eb errorBody
		_ = json.Unmarshal(resp.Body(), &eb)
		return nil, &APIError{
			Method:     method,
			Path:       path,
			Status:     resp.StatusCode(),
			Message:    eb.text(),
			Credential: credential,
		}
	}
	return resp.Body(), nil
}

func ownerValues(res Resource, owner string) url.Values {
	values := url.Values{}
	if owner = strings.TrimSpace(owner); owner != "" {
		values.Set(res.OwnerParam, owner)
	}
	return values
}

func recordPath(res Resource, id string) string {
	return strings.TrimSuffix(res.Path, "/") + "/" + url.PathEscape(id)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

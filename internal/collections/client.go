// ABOUTME: PocketBase collections client used to check page configs against the backend.
// ABOUTME: Lists collections and their field names; record data is never fetched.

package collections

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
)

const (
	collectionsPath = "/api/collections"
	pageSize        = 200
)

// Field is one collection field. PocketBase < 0.23 calls the list "schema",
// later versions call it "fields"; both decode into Collection.Fields.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Collection is the part of a PocketBase collection the checker needs.
type Collection struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"` // "base", "auth" or "view"
	Fields []Field `json:"fields"`
	Schema []Field `json:"schema"`
}

// FieldNames returns declared fields plus the system fields every record of
// this collection type carries.
func (c Collection) FieldNames() []string {
	names := []string{"id", "created", "updated"}
	if c.Type == "auth" {
		names = append(names, "username", "email", "emailVisibility", "verified")
	}
	for _, f := range c.Fields {
		names = append(names, f.Name)
	}
	for _, f := range c.Schema {
		names = append(names, f.Name)
	}
	return names
}

type listResponse struct {
	Page       int          `json:"page"`
	PerPage    int          `json:"perPage"`
	TotalItems int          `json:"totalItems"`
	TotalPages int          `json:"totalPages"`
	Items      []Collection `json:"items"`
}

// APIError is the error body PocketBase returns.
type APIError struct {
	Status  int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pocketbase error %d: %s", e.Status, e.Message)
}

// Client talks to the PocketBase collections API.
type Client struct {
	client *req.Client
}

// Option configures a Client.
type Option func(*req.Client)

// WithToken sends token in the Authorization header. Listing collections
// requires a superuser token.
func WithToken(token string) Option {
	return func(c *req.Client) {
		if token != "" {
			c.SetCommonHeader("Authorization", token)
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *req.Client) {
		c.SetTimeout(d)
	}
}

// WithRetries retries failed requests up to n times.
func WithRetries(n int) Option {
	return func(c *req.Client) {
		c.SetCommonRetryCount(n).
			SetCommonRetryBackoffInterval(100*time.Millisecond, 2*time.Second)
	}
}

// New returns a client for the PocketBase instance at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := req.C().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetUserAgent("pocketms").
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal).
		SetCommonErrorResult(&APIError{})

	for _, opt := range opts {
		opt(c)
	}
	return &Client{client: c}
}

// ListCollections returns every collection, following pagination.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var all []Collection
	for page := 1; ; page++ {
		var out listResponse
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"page":    strconv.Itoa(page),
				"perPage": strconv.Itoa(pageSize),
			}).
			SetSuccessResult(&out).
			Get(collectionsPath)
		if err := handleAPIError(resp, err, "list collections"); err != nil {
			return nil, err
		}

		all = append(all, out.Items...)
		if len(out.Items) == 0 || page >= out.TotalPages {
			return all, nil
		}
	}
}

func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("%s: %w", operation, requestErr)
	}

	if resp.IsErrorState() {
		if apiErr, ok := resp.ErrorResult().(*APIError); ok && apiErr.Message != "" {
			if apiErr.Status == 0 {
				apiErr.Status = resp.StatusCode
			}
			return fmt.Errorf("%s: %w", operation, apiErr)
		}
		return fmt.Errorf("%s: unexpected status %d", operation, resp.StatusCode)
	}

	return nil
}

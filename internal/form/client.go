package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hoanghai1803/postdesk/internal/models"
)

const (
	createPath    = "/api/admin/blog"
	clientTimeout = 15 * time.Second
	maxReplyBytes = 1 << 20
)

// Payload is the create request body. Empty optional fields travel as null.
type Payload struct {
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	Excerpt    string  `json:"excerpt"`
	Content    string  `json:"content"`
	CoverImage *string `json:"coverImage"`
	Author     string  `json:"author"`
	ReadTime   *string `json:"readTime"`
}

// Response is what the create endpoint answered.
type Response struct {
	StatusCode int              `json:"-"`
	Success    bool             `json:"success"`
	Post       *models.BlogPost `json:"post,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// OK reports whether the endpoint accepted the post.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client sends a create request. An error means no usable response arrived.
type Client interface {
	CreatePost(ctx context.Context, p Payload) (*Response, error)
}

// HTTPClient talks to a postdesk server over HTTP.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient creates a client for the server at baseURL. A non-empty token
// is sent as a bearer credential.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: clientTimeout},
	}
}

func (c *HTTPClient) CreatePost(ctx context.Context, p Payload) (*Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	out := &Response{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("%w: decoding %d response: %v", ErrTransport, resp.StatusCode, err)
	}
	return out, nil
}

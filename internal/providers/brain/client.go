package brain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sandevgo/brainchat/internal/core"
)

const (
	statusSuccess = "success"
	statusActive  = "active"

	maxResponseSize = 4 << 20
)

var _ core.Brain = (*Client)(nil)

// envelope carries the discriminator every brain answer has.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Client struct {
	baseClient
}

func NewClient(cfg core.BrainConfig) *Client {
	return &Client{
		baseClient: newBaseClient(cfg.GetBrainURL(), cfg.GetHTTPTimeout()),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Status(ctx context.Context) (core.Stats, error) {
	var out struct {
		Stats core.Stats `json:"stats"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/status", nil, statusActive, &out); err != nil {
		return core.Stats{}, err
	}
	return out.Stats, nil
}

func (c *Client) Interact(ctx context.Context, message string) (core.Interaction, error) {
	var out core.Interaction
	payload := map[string]string{"message": message}
	if err := c.call(ctx, http.MethodPost, "/api/interact", payload, statusSuccess, &out); err != nil {
		return core.Interaction{}, err
	}
	return out, nil
}

func (c *Client) Feedback(ctx context.Context, fb core.Feedback) (string, error) {
	var out envelope
	if err := c.call(ctx, http.MethodPost, "/api/feedback", fb, statusSuccess, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ExploreWeb(ctx context.Context, maxPages int) (int, error) {
	var out struct {
		PagesExplored int `json:"pages_explored"`
	}
	payload := map[string]int{"max_pages": maxPages}
	if err := c.call(ctx, http.MethodPost, "/api/explore_web", payload, statusSuccess, &out); err != nil {
		return 0, err
	}
	return out.PagesExplored, nil
}

func (c *Client) AddURL(ctx context.Context, rawURL string) (string, error) {
	var out envelope
	payload := map[string]string{"url": rawURL}
	if err := c.call(ctx, http.MethodPost, "/api/add_url", payload, statusSuccess, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) RetrieveMemory(ctx context.Context, query string, topK int) ([]core.MemoryItem, error) {
	var out struct {
		Memories []core.MemoryItem `json:"memories"`
	}
	payload := map[string]any{"query": query, "top_k": topK}
	if err := c.call(ctx, http.MethodPost, "/api/retrieve_memory", payload, statusSuccess, &out); err != nil {
		return nil, err
	}
	if out.Memories == nil {
		out.Memories = []core.MemoryItem{}
	}
	return out.Memories, nil
}

func (c *Client) VisualizeMemory(ctx context.Context) (string, error) {
	var out struct {
		VisualizationURL string `json:"visualization_url"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/visualize_memory", nil, statusSuccess, &out); err != nil {
		return "", err
	}
	return out.VisualizationURL, nil
}

func (c *Client) SaveBrain(ctx context.Context) (string, error) {
	var out envelope
	if err := c.call(ctx, http.MethodPost, "/api/save_brain", nil, statusSuccess, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ResolveURL turns a server relative reference (such as a visualization
// path) into an absolute URL on the brain host.
func (c *Client) ResolveURL(ref string) string {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return ref
	}
	target, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(target).String()
}

func (c *Client) call(ctx context.Context, method, path string, body any, okStatus string, out any) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrTransport, path, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: decode %s (http %d): %w", ErrTransport, path, resp.StatusCode, err)
	}

	if env.Status != okStatus {
		return &APIError{
			Endpoint:   path,
			Status:     env.Status,
			Message:    env.Message,
			HTTPStatus: resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s payload: %w", ErrTransport, path, err)
	}
	return nil
}

// FetchAsset downloads a file served by the brain, such as a rendered
// memory network. ref may be relative to the brain URL. The caller closes
// the body.
func (c *Client) FetchAsset(ctx context.Context, ref string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ResolveURL(ref), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrTransport, err)
	}
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrTransport, ref, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: http %d", ErrTransport, ref, resp.StatusCode)
	}
	return resp.Body, nil
}

// Close releases idle keep-alive connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

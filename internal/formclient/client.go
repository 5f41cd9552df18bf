package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"thesisdesk/internal/model"
)

// Endpoint is one candidate request descriptor. Path may contain an {id}
// placeholder for item-scoped calls.
type Endpoint struct {
	Method string
	Path   string
}

// Config configures the form service client. Each endpoint list is tried
// strictly in order; deployments differ in which backend variant is
// authoritative, and this client deliberately does not know.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration

	SchemaEndpoints []Endpoint
	ItemEndpoints   []Endpoint
	SaveEndpoints   []Endpoint
	SubmitEndpoints []Endpoint
}

// Client talks to the external feedback-form service
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	schemaEndpoints []Endpoint
	itemEndpoints   []Endpoint
	saveEndpoints   []Endpoint
	submitEndpoints []Endpoint
}

// NewClient creates a form service client. Endpoint lists default to the
// known deployment variants, newest first.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if len(cfg.SchemaEndpoints) == 0 {
		cfg.SchemaEndpoints = []Endpoint{
			{Method: http.MethodGet, Path: "/v3/feedback/schema"},
			{Method: http.MethodGet, Path: "/v2/forms/defense-feedback"},
			{Method: http.MethodGet, Path: "/api/feedback-form"},
		}
	}
	if len(cfg.ItemEndpoints) == 0 {
		cfg.ItemEndpoints = []Endpoint{
			{Method: http.MethodGet, Path: "/v3/feedback/items/{id}"},
			{Method: http.MethodGet, Path: "/v2/feedback/{id}"},
		}
	}
	if len(cfg.SaveEndpoints) == 0 {
		cfg.SaveEndpoints = []Endpoint{
			{Method: http.MethodPatch, Path: "/v3/feedback/items/{id}"},
			{Method: http.MethodPut, Path: "/v2/feedback/{id}/answers"},
		}
	}
	if len(cfg.SubmitEndpoints) == 0 {
		cfg.SubmitEndpoints = []Endpoint{
			{Method: http.MethodPost, Path: "/v3/feedback/items/{id}/submit"},
			{Method: http.MethodPost, Path: "/v2/feedback/{id}/finalize"},
		}
	}

	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		token:           cfg.Token,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		schemaEndpoints: cfg.SchemaEndpoints,
		itemEndpoints:   cfg.ItemEndpoints,
		saveEndpoints:   cfg.SaveEndpoints,
		submitEndpoints: cfg.SubmitEndpoints,
	}
}

// IngestionError means every candidate endpoint failed; it carries the
// latest error for user-triggered retry.
type IngestionError struct {
	Attempts int
	LastErr  error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("formclient: all %d endpoints failed: %v", e.Attempts, e.LastErr)
}

func (e *IngestionError) Unwrap() error { return e.LastErr }

// doRequest performs a single HTTP request and returns status plus body
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// firstObject tries each endpoint in order and returns the first response
// that is both successful and a JSON-parseable object. No retry, no
// backoff: a single ordered pass, aggregating the latest failure.
func (c *Client) firstObject(ctx context.Context, endpoints []Endpoint, id string, body interface{}) (map[string]interface{}, error) {
	var lastErr error
	for _, ep := range endpoints {
		path := strings.ReplaceAll(ep.Path, "{id}", id)
		log.Printf("[Form Client] %s %s", ep.Method, path)

		status, respBody, err := c.doRequest(ctx, ep.Method, path, body)
		if err != nil {
			lastErr = err
			continue
		}
		if status < 200 || status >= 300 {
			lastErr = fmt.Errorf("form service returned %d: %s", status, truncate(respBody))
			continue
		}

		var obj map[string]interface{}
		if err := json.Unmarshal(respBody, &obj); err != nil {
			lastErr = fmt.Errorf("unparseable response from %s: %w", path, err)
			continue
		}
		return obj, nil
	}
	return nil, &IngestionError{Attempts: len(endpoints), LastErr: lastErr}
}

// firstStatus tries each endpoint in order; success is determined purely
// by response status, the body is ignored.
func (c *Client) firstStatus(ctx context.Context, endpoints []Endpoint, id string, body interface{}) ([]byte, error) {
	var lastErr error
	for _, ep := range endpoints {
		path := strings.ReplaceAll(ep.Path, "{id}", id)
		log.Printf("[Form Client] %s %s", ep.Method, path)

		status, respBody, err := c.doRequest(ctx, ep.Method, path, body)
		if err != nil {
			lastErr = err
			continue
		}
		if status < 200 || status >= 300 {
			lastErr = fmt.Errorf("form service returned %d: %s", status, truncate(respBody))
			continue
		}
		return respBody, nil
	}
	return nil, &IngestionError{Attempts: len(endpoints), LastErr: lastErr}
}

// FetchSchema retrieves the raw feedback-form definition from the first
// working schema endpoint
func (c *Client) FetchSchema(ctx context.Context) (model.RawSchema, error) {
	obj, err := c.firstObject(ctx, c.schemaEndpoints, "", nil)
	if err != nil {
		return nil, err
	}
	return model.RawSchema(unwrapEnvelope(obj)), nil
}

// FetchItem retrieves a feedback item record, tolerating the envelope
// variants of the different service versions
func (c *Client) FetchItem(ctx context.Context, id string) (*model.FeedbackItem, error) {
	obj, err := c.firstObject(ctx, c.itemEndpoints, id, nil)
	if err != nil {
		return nil, err
	}
	item, err := decodeItem(unwrapEnvelope(obj))
	if err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = id
	}
	return item, nil
}

// SaveAnswers partially updates the item's draft. Success is determined
// purely by response status.
func (c *Client) SaveAnswers(ctx context.Context, id string, answers model.AnswerMap) error {
	payload := map[string]interface{}{"answers": answers}
	_, err := c.firstStatus(ctx, c.saveEndpoints, id, payload)
	return err
}

// SubmitItem finalizes the item. When the service returns an updated item
// record it is adopted; otherwise nil is returned and the caller
// synthesizes the status transition locally.
func (c *Client) SubmitItem(ctx context.Context, id string, answers model.AnswerMap) (*model.FeedbackItem, error) {
	payload := map[string]interface{}{"answers": answers}
	respBody, err := c.firstStatus(ctx, c.submitEndpoints, id, payload)
	if err != nil {
		return nil, err
	}

	var obj map[string]interface{}
	if json.Unmarshal(respBody, &obj) != nil {
		return nil, nil
	}
	inner := unwrapEnvelope(obj)
	if _, hasStatus := inner["status"]; !hasStatus {
		return nil, nil
	}
	item, err := decodeItem(inner)
	if err != nil {
		return nil, nil
	}
	if item.ID == "" {
		item.ID = id
	}
	return item, nil
}

// decodeItem converts a generic JSON object into a typed item record
func decodeItem(obj map[string]interface{}) (*model.FeedbackItem, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var item model.FeedbackItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to parse item record: %w", err)
	}
	if item.Status == "" {
		item.Status = model.ItemStatusPending
	}
	if item.Answers == nil {
		item.Answers = model.AnswerMap{}
	}
	return &item, nil
}

func truncate(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

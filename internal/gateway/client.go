package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NetworkFailureMessage is surfaced to the user whenever the gateway cannot
// be reached or returns something that is not a tagged result.
const NetworkFailureMessage = "Network error: could not connect to the restaurant backend."

// Result is the tagged response envelope every gateway action returns.
// Callers must branch on Success; Data is only meaningful on the success
// branch and Message only on the failure branch.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// CallError is a failure reported by the gateway (or a transport failure
// folded into the same shape). Message is safe to show to the user.
type CallError struct {
	Action  string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("gateway %s: %s", e.Action, e.Message)
}

// UserMessage extracts the user-facing message from err if it is a gateway
// failure, falling back to the generic network message otherwise.
func UserMessage(err error) string {
	var ce *CallError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return NetworkFailureMessage
}

// Client talks to the spreadsheet-backed scripting endpoint. Every action is
// a POST of {"action": name, ...payload} to the one deployment URL. The body
// goes out as text/plain so the scripting host never sees a CORS preflight;
// the endpoint ignores the content type and parses the body as JSON.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

func NewClient(rawURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		url: rawURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

// Call issues exactly one request for the given action. There is no retry
// and no cancellation once the request is in flight beyond ctx itself.
// Transport failures and malformed responses come back as a failure Result
// carrying the generic network message, so callers handle one shape.
func (c *Client) Call(ctx context.Context, action string, payload map[string]any) Result {
	body := map[string]any{"action": action}
	for k, v := range payload {
		body[k] = v
	}

	data, err := json.Marshal(body)
	if err != nil {
		c.log.WithField("action", action).Errorf("Gateway: failed to encode request: %v", err)
		return Result{Success: false, Message: NetworkFailureMessage}
	}

	requestID := uuid.New().String()
	entry := c.log.WithFields(logrus.Fields{
		"action":     action,
		"request_id": requestID,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		entry.Errorf("Gateway: failed to build request: %v", err)
		return Result{Success: false, Message: NetworkFailureMessage}
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		entry.Errorf("Gateway: request failed: %v", err)
		return Result{Success: false, Message: NetworkFailureMessage}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		entry.Errorf("Gateway: endpoint returned status %d", resp.StatusCode)
		return Result{Success: false, Message: NetworkFailureMessage}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		entry.Errorf("Gateway: failed to decode response: %v", err)
		return Result{Success: false, Message: NetworkFailureMessage}
	}

	entry.WithFields(logrus.Fields{
		"success":    result.Success,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("Gateway: call completed")

	return result
}

// call unwraps a Result into either decoded data or a CallError.
func (c *Client) call(ctx context.Context, action string, payload map[string]any, out any) error {
	result := c.Call(ctx, action, payload)
	if !result.Success {
		return &CallError{Action: action, Message: result.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("gateway %s: decode data: %w", action, err)
	}
	return nil
}

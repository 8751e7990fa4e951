package edge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	FunctionGenerateNutritionPlan = "generate-nutrition-plan"

	defaultTimeout = 60 * time.Second
	// error bodies are cut to this size before being wrapped into errors
	maxErrorBody = 1024
)

var ErrNotConfigured = errors.New("edge functions not configured")

// FunctionError is returned when the function answers with a non 2xx status.
type FunctionError struct {
	Function   string
	StatusCode int
	Body       string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("edge function %s: status %d: %s", e.Function, e.StatusCode, e.Body)
}

// Client invokes hosted edge functions over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Invoke posts payload as JSON to the named function and decodes the answer into out.
// A nil out discards the response body.
func (c *Client) Invoke(ctx context.Context, function string, payload any, out any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "edge.invoke")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("function", function))

	if c.baseURL == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", function, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/functions/v1/"+function, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &FunctionError{
			Function:   function,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(errBody)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", function, err)
	}
	return nil
}

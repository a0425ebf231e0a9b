package inference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/maskpaint/inpaint-api/internal/config"
	"github.com/maskpaint/inpaint-api/internal/models"
)

// CloudflareRunner calls the Workers AI REST endpoint
// POST {base}/accounts/{account}/ai/run/{model}.
type CloudflareRunner struct {
	client    *http.Client
	baseURL   string
	accountID string
	apiToken  string
}

func NewCloudflareRunner(cfg config.CloudflareConfig, client *http.Client) *CloudflareRunner {
	return &CloudflareRunner{
		client:    client,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accountID: cfg.AccountID,
		apiToken:  cfg.APIToken,
	}
}

// APIError is a non-2xx answer from the upstream API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inference API returned status %d", e.StatusCode)
	}
	return e.Message
}

type cloudflareEnvelope struct {
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *CloudflareRunner) Run(ctx context.Context, model string, inputs *models.InferenceInputs) (*models.InferenceResult, error) {
	payload, err := sonic.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inputs: %w", err)
	}

	// Model ids contain slashes ("@cf/vendor/name") that belong in the path as is.
	endpoint := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.baseURL, url.PathEscape(c.accountID), model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: cloudflareErrorMessage(body)}
	}

	return &models.InferenceResult{
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func cloudflareErrorMessage(body []byte) string {
	var env cloudflareEnvelope
	if err := sonic.Unmarshal(body, &env); err == nil {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			if e.Message != "" {
				msgs = append(msgs, e.Message)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return strings.TrimSpace(string(body))
}

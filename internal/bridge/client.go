package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lumen/internal/config"
	"lumen/internal/logger"

	"github.com/shopspring/decimal"
)

// Client pushes invoices to the accounting bridge service and polls the
// resulting jobs. All connection details come from the config object; nothing
// is hard-coded here.
type Client struct {
	cfg        config.BridgeConfig
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(cfg config.BridgeConfig, log *logger.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

// Invoice is the payload the bridge turns into an accounting entry.
type Invoice struct {
	OrderID  string          `json:"order_id"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
	Lines    []InvoiceLine   `json:"lines"`
}

type InvoiceLine struct {
	SKU       string          `json:"sku"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// JobStatus is the bridge's view of an async submission.
type JobStatus struct {
	ID     string `json:"id"`
	State  string `json:"state"` // "pending", "processing", "completed", "failed"
	Detail string `json:"detail,omitempty"`
}

const (
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// ErrPollExhausted means the job reached neither terminal state within the
// configured attempt budget.
var ErrPollExhausted = fmt.Errorf("bridge job polling exhausted")

// SubmitInvoice posts an invoice and returns the bridge job id.
func (c *Client) SubmitInvoice(ctx context.Context, invoice Invoice) (string, error) {
	body, err := json.Marshal(invoice)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.Endpoint+"/invoices", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bridge request failed: %d - %s", resp.StatusCode, string(data))
	}

	var job JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return job.ID, nil
}

// PollJob checks the job at the configured interval until it reaches a
// terminal state, the attempt budget runs out, or the context is cancelled.
func (c *Client) PollJob(ctx context.Context, jobID string) (*JobStatus, error) {
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= c.cfg.MaxPollAttempts; attempt++ {
		job, err := c.getJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if job.State == StateCompleted || job.State == StateFailed {
			return job, nil
		}
		c.logger.Debug("bridge job %s still %s (attempt %d/%d)", jobID, job.State, attempt, c.cfg.MaxPollAttempts)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
	return nil, fmt.Errorf("job %s: %w", jobID, ErrPollExhausted)
}

func (c *Client) getJob(ctx context.Context, jobID string) (*JobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.cfg.Endpoint+"/jobs/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bridge request failed: %d - %s", resp.StatusCode, string(data))
	}

	var job JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &job, nil
}

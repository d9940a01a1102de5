package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cioinsight/deckgen/internal/model"
	"github.com/cioinsight/deckgen/internal/oauth"
)

// Job statuses reported by the queue.
var (
	terminalSuccess = map[string]bool{"SUCCESS": true, "COMPLETED": true}
	terminalFailure = map[string]bool{"FAILED": true, "ERROR": true}
)

// JobClient drives the tenant's asynchronous LLM job queue: submit one
// callLlm job, then poll until it reaches a terminal status.
type JobClient struct {
	baseURL      string
	model        string
	tenantID     string
	clientTag    string
	userID       string
	pollInterval time.Duration
	maxPolls     int
	tokens       *oauth.Client
	httpClient   *http.Client
	log          *logrus.Entry
}

// NewJobClient builds a job-queue provider from configuration.
func NewJobClient(cfg model.SynthesisConfig, httpCfg model.HTTPConfig, tokens *oauth.Client, log *logrus.Entry) *JobClient {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	maxPolls := cfg.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 60
	}
	return &JobClient{
		baseURL:      cfg.BaseURL,
		model:        cfg.Model,
		tenantID:     cfg.TenantID,
		clientTag:    cfg.ClientTag,
		userID:       cfg.UserID,
		pollInterval: interval,
		maxPolls:     maxPolls,
		tokens:       tokens,
		httpClient:   &http.Client{Timeout: httpCfg.Timeout},
		log:          log,
	}
}

// Name returns the provider name.
func (c *JobClient) Name() string { return "job" }

type jobMetadata struct {
	ClientRequestID string         `json:"clientRequestId"`
	TenantID        string         `json:"tenantId"`
	ClientID        string         `json:"clientId"`
	UserID          string         `json:"userId"`
	Priority        int            `json:"priority"`
	Custom          map[string]any `json:"custom"`
}

type jobParameter struct {
	ModelName string `json:"model_name"`
	Prompt    string `json:"prompt"`
}

type jobInput struct {
	Parameter jobParameter `json:"parameter"`
}

type jobRequest struct {
	Type     string      `json:"type"`
	Metadata jobMetadata `json:"metadata"`
	Input    jobInput    `json:"input"`
	Callback []any       `json:"callback"`
}

type jobSubmitResponse struct {
	ID   json.Number `json:"id"`
	UUID string      `json:"uuid"`
}

// Synthesize submits the prompt as one job and polls it to completion.
func (c *JobClient) Synthesize(ctx context.Context, prompt string) (*model.Report, error) {
	jobID, err := c.submit(ctx, prompt)
	if err != nil {
		return nil, err
	}
	c.log.WithField("job_id", jobID).Info("job submitted")

	raw, err := c.poll(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return ExtractReport(raw)
}

func (c *JobClient) submit(ctx context.Context, prompt string) (string, error) {
	req := jobRequest{
		Type: "callLlm",
		Metadata: jobMetadata{
			ClientRequestID: uuid.NewString(),
			TenantID:        c.tenantID,
			ClientID:        c.clientTag,
			UserID:          c.userID,
			Priority:        1,
			Custom:          map[string]any{},
		},
		Input: jobInput{
			Parameter: jobParameter{ModelName: c.model, Prompt: prompt},
		},
		Callback: []any{},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode job request: %w", err)
	}

	c.log.WithField("prompt_len", len(prompt)).Info("submitting synthesis job")

	data, status, err := c.do(ctx, http.MethodPost, c.baseURL+"/job", body)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("job submit failed: status %d: %s", status, truncate(data, 200))
	}

	var resp jobSubmitResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode job submit response: %w", err)
	}
	if resp.ID != "" {
		return resp.ID.String(), nil
	}
	if resp.UUID != "" {
		return resp.UUID, nil
	}
	return "", fmt.Errorf("job submit response carried no id")
}

// poll queries the job status every interval. A 401 means the bearer token
// expired mid-run: the poll re-authenticates and retries immediately without
// consuming an attempt. A second 401 in a row means the credential itself is
// bad, not merely stale, and fails the poll. Transient errors consume an
// attempt and keep going.
func (c *JobClient) poll(ctx context.Context, jobID string) ([]byte, error) {
	url := fmt.Sprintf("%s/job/JOB_ID/%s", c.baseURL, jobID)

	unauthorized := 0
	for attempt := 1; attempt <= c.maxPolls; attempt++ {
		data, status, err := c.do(ctx, http.MethodGet, url, nil)
		if status != http.StatusUnauthorized {
			unauthorized = 0
		}
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.log.WithError(err).WithField("attempt", attempt).Warn("poll request failed")

		case status == http.StatusUnauthorized:
			unauthorized++
			if unauthorized > 1 {
				return nil, fmt.Errorf("job %s poll rejected twice with 401: credential revoked", jobID)
			}
			c.log.Info("token expired during poll, re-authenticating")
			c.tokens.Invalidate()
			attempt--

		case status == http.StatusOK:
			var envelope struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(data, &envelope); err != nil {
				c.log.WithError(err).WithField("attempt", attempt).Warn("poll response not JSON")
				break
			}
			c.log.WithFields(logrus.Fields{"attempt": attempt, "status": envelope.Status}).Info("job status")
			if terminalSuccess[envelope.Status] {
				return data, nil
			}
			if terminalFailure[envelope.Status] {
				return nil, fmt.Errorf("job %s failed: %s", jobID, truncate(data, 500))
			}

		default:
			c.log.WithFields(logrus.Fields{"attempt": attempt, "http_status": status}).Warn("poll returned error status")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
	return nil, fmt.Errorf("job %s did not finish within %d polls", jobID, c.maxPolls)
}

func (c *JobClient) do(ctx context.Context, method, url string, body []byte) ([]byte, int, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("acquire token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return data, resp.StatusCode, nil
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}

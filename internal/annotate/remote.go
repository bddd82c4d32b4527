package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Remote calls an HTTP tagging service. The service receives
// {"text": ...} and answers {"tokens": [{text, lemma, pos, start, end}]}.
type Remote struct {
	url        string
	apiKey     string
	httpClient *http.Client
	stats      *LatencyStats
}

func NewRemote(url, apiKey string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Remote{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		stats: NewLatencyStats(time.Hour),
	}
}

type remoteRequest struct {
	Text string `json:"text"`
}

type remoteResponse struct {
	Tokens []Token `json:"tokens"`
	Error  *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Annotate sends text to the service. Offsets the service leaves out are
// recovered by ValidateTokens.
func (c *Remote) Annotate(ctx context.Context, text string) ([]Token, error) {
	body, err := json.Marshal(remoteRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("annotator: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.stats.Record(time.Since(started))

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("annotator status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp remoteResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w (raw: %s)", err, truncate(string(respBody), 200))
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("annotator error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	return ValidateTokens(text, apiResp.Tokens)
}

// Stats returns the latency window of recent calls.
func (c *Remote) Stats() *LatencyStats { return c.stats }

// Close releases resources.
func (c *Remote) Close() {
	c.httpClient.CloseIdleConnections()
}

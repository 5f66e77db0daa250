package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/inajphotography/visionboard/internal/submission"
)

const (
	SubmitPath = "/api/vision-board/submit"

	fallbackSubmitError = "Something went wrong. Please try again."
)

// SubmitError is a rejected submission. Message is the server's explanation.
type SubmitError struct {
	Status  int
	Message string
}

func (e *SubmitError) Error() string {
	return e.Message
}

// HTTPSubmitter posts requests to a running visionboard server
type HTTPSubmitter struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPSubmitter(baseURL string) *HTTPSubmitter {
	return &HTTPSubmitter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		// rendering and three notification calls happen before the reply
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (h *HTTPSubmitter) Submit(ctx context.Context, req submission.Request) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+SubmitPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := fallbackSubmitError
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return &SubmitError{Status: resp.StatusCode, Message: msg}
	}

	slog.Debug("Submission accepted", "status", resp.StatusCode, "body", string(respBody))
	return nil
}

// Package splitter calls the remote task-splitting service that breaks a
// free-form task description into an ordered list of timed subtasks.
package splitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/routina/internal/constants"
	apperrors "github.com/julianstephens/routina/internal/errors"
	"github.com/julianstephens/routina/internal/keyring"
	"github.com/julianstephens/routina/internal/models"
)

const (
	splitMaxRetries   = 3
	splitInitialDelay = 1 * time.Second
)

// Client talks to the split endpoint over HTTPS.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Result is the validated shape of a successful split. Every field has been
// checked; callers can use it without re-validating.
type Result struct {
	Title string
	Emoji string
	Tasks []models.Subtask
}

type splitRequest struct {
	Description string `json:"description"`
}

type splitResponse struct {
	Title string `json:"title"`
	Emoji string `json:"emoji"`
	Tasks []struct {
		Title    string `json:"title"`
		Duration int    `json:"duration"`
	} `json:"tasks"`
}

type splitError struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewClient builds a client for the given endpoint. An empty baseURL falls
// back to the default service endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = constants.SplitterDefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: constants.SplitterTimeout},
	}
}

// NewClientFromKeyring resolves the API key from the system keyring.
func NewClientFromKeyring(baseURL string) (*Client, error) {
	key, err := keyring.GetAPIKey()
	if err != nil {
		return nil, fmt.Errorf("splitter API key unavailable: %w", err)
	}
	return NewClient(key, baseURL), nil
}

// Split sends the description to the service and returns the validated
// suggestion. Any malformed or partial response is reported as a remote
// split failure, never surfaced as a panic or a half-filled result.
func (c *Client) Split(ctx context.Context, description string) (Result, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Result{}, fmt.Errorf("%w: empty task description", apperrors.ErrRemoteSplit)
	}
	if c.apiKey == "" {
		return Result{}, fmt.Errorf("%w: no API key configured, run 'routina config set-key'", apperrors.ErrRemoteSplit)
	}

	body, err := json.Marshal(splitRequest{Description: description})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", apperrors.ErrRemoteSplit, err)
	}

	var lastErr error
	for attempt := 0; attempt < splitMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * splitInitialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Result{}, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", apperrors.ErrRemoteSplit, err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: request failed: %v", apperrors.ErrRemoteSplit, err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: failed to read response: %v", apperrors.ErrRemoteSplit, err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var svcErr splitError
			if json.Unmarshal(respBody, &svcErr) == nil && svcErr.Error.Message != "" {
				lastErr = fmt.Errorf("%w: service error (%d): %s", apperrors.ErrRemoteSplit, resp.StatusCode, svcErr.Error.Message)
			} else {
				lastErr = fmt.Errorf("%w: service error (%d)", apperrors.ErrRemoteSplit, resp.StatusCode)
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return Result{}, lastErr
		}

		return parseResult(respBody)
	}

	return Result{}, lastErr
}

func parseResult(body []byte) (Result, error) {
	var parsed splitResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("%w: malformed response: %v", apperrors.ErrRemoteSplit, err)
	}

	if strings.TrimSpace(parsed.Title) == "" {
		return Result{}, fmt.Errorf("%w: response missing title", apperrors.ErrRemoteSplit)
	}
	if len(parsed.Tasks) == 0 {
		return Result{}, fmt.Errorf("%w: response contains no subtasks", apperrors.ErrRemoteSplit)
	}

	out := Result{
		Title: strings.TrimSpace(parsed.Title),
		Emoji: strings.TrimSpace(parsed.Emoji),
		Tasks: make([]models.Subtask, 0, len(parsed.Tasks)),
	}
	for i, task := range parsed.Tasks {
		title := strings.TrimSpace(task.Title)
		if title == "" {
			return Result{}, fmt.Errorf("%w: subtask %d has an empty title", apperrors.ErrRemoteSplit, i)
		}
		if task.Duration <= 0 {
			return Result{}, fmt.Errorf("%w: subtask %q has a non-positive duration", apperrors.ErrRemoteSplit, title)
		}
		out.Tasks = append(out.Tasks, models.Subtask{Title: title, DurationMin: task.Duration})
	}

	return out, nil
}

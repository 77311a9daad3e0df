package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rocketscienceinc/mastermind/internal/entity"
)

const (
	DefaultTimeout = 30 * time.Second

	maxBodySize = 1 << 20
)

var (
	ErrMalformedEndpoint = errors.New("malformed endpoint")
	ErrRequestFailed     = errors.New("request failed")
	ErrEmptyBody         = errors.New("empty response body")
	ErrDecodeResponse    = errors.New("failed to decode response")
)

// StatusError is returned when the service answers with a non-2xx status. Body is the raw response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (that *StatusError) Error() string {
	message := errorMessage([]byte(that.Body))
	if message == "" {
		return fmt.Sprintf("unexpected status %d", that.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", that.StatusCode, message)
}

type startResponse struct {
	SessionID string `json:"session_id"`
}

type guessRequest struct {
	SessionID string `json:"session_id"`
	Guess     string `json:"guess"`
}

type guessResponse struct {
	Black *int `json:"black"`
	White *int `json:"white"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to the remote authority over HTTP.
type Client struct {
	logger *slog.Logger

	baseURL    *url.URL
	httpClient *http.Client
}

func New(logger *slog.Logger, baseURL string, timeout time.Duration) (*Client, error) {
	endpoint, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEndpoint, err)
	}

	if (endpoint.Scheme != "http" && endpoint.Scheme != "https") || endpoint.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedEndpoint, baseURL)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		logger:     logger.With("component", "restClient"),
		baseURL:    endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// StartSession asks the service for a new session and returns its opaque ID.
func (that *Client) StartSession(ctx context.Context) (string, error) {
	var resp startResponse
	if err := that.do(ctx, http.MethodPost, "game", nil, &resp); err != nil {
		return "", err
	}

	if resp.SessionID == "" {
		return "", fmt.Errorf("%w: missing session_id", ErrDecodeResponse)
	}

	return resp.SessionID, nil
}

// SubmitGuess sends the guess as a digit string and returns the service's score.
func (that *Client) SubmitGuess(ctx context.Context, sessionID string, guess entity.Code) (entity.Score, error) {
	var resp guessResponse
	if err := that.do(ctx, http.MethodPost, "game/guess", guessRequest{SessionID: sessionID, Guess: guess.String()}, &resp); err != nil {
		return entity.Score{}, err
	}

	if resp.Black == nil || resp.White == nil {
		return entity.Score{}, fmt.Errorf("%w: missing black or white count", ErrDecodeResponse)
	}

	return entity.Score{Black: *resp.Black, White: *resp.White}, nil
}

// Rules fetches the code shape the service generates and scores with.
func (that *Client) Rules(ctx context.Context) (entity.Rules, error) {
	var rules entity.Rules
	if err := that.do(ctx, http.MethodGet, "game/rules", nil, &rules); err != nil {
		return entity.Rules{}, err
	}

	if err := rules.Check(); err != nil {
		return entity.Rules{}, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return rules, nil
}

func (that *Client) do(ctx context.Context, method, path string, payload, out any) error {
	log := that.logger.With("method", "do", "httpMethod", method, "path", path)

	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, that.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEndpoint, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: failed to read body: %w", ErrRequestFailed, err)
	}

	log.Debug("response received", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyBody
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return nil
}

// errorMessage prefers the service's {"error": ...} text over the raw body.
func errorMessage(data []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(data, &resp); err == nil && resp.Error != "" {
		return resp.Error
	}

	return strings.TrimSpace(string(data))
}

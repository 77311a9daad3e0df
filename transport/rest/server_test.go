package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mastermind/internal/apperror"
	"github.com/rocketscienceinc/mastermind/internal/entity"
	"github.com/rocketscienceinc/mastermind/internal/repository"
	"github.com/rocketscienceinc/mastermind/internal/service"
)

type fixedGenerator entity.Code

func (that fixedGenerator) Generate(_ entity.Rules) entity.Code {
	return entity.Code(that).Clone()
}

// stubService fails every guess with err.
type stubService struct {
	err error
}

func (that *stubService) CreateSession(_ context.Context) (*entity.Session, error) {
	return nil, that.err
}

func (that *stubService) SubmitGuess(_ context.Context, _, _ string) (entity.Score, *entity.Session, error) {
	return entity.Score{}, nil, that.err
}

func (that *stubService) Rules() entity.Rules {
	return entity.DefaultRules()
}

func newTestServer(t *testing.T, game gameService) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if game == nil {
		game = service.NewGameService(logger, entity.DefaultRules(), fixedGenerator{3, 4, 1, 6}, repository.NewMemorySessionRepository())
	}

	srv := httptest.NewServer(New(logger, game, prometheus.NewRegistry()).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body)) //nolint: noctx // test helper
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func startSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp := post(t, srv.URL+"/game", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var start StartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&start))
	require.NotEmpty(t, start.SessionID)

	return start.SessionID
}

func guessBody(sessionID, guess string) string {
	body, _ := json.Marshal(GuessRequest{SessionID: sessionID, Guess: guess})
	return string(body)
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body.Error
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/ping") //nolint: noctx // it's ok in tests
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestGame_PlayToWin(t *testing.T) {
	// Given: a running authority with the secret 3416
	srv := newTestServer(t, nil)
	sessionID := startSession(t, srv)

	// When: a miss is submitted
	resp := post(t, srv.URL+"/game/guess", guessBody(sessionID, "1122"))

	// Then: the score and attempt count come back
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var miss GuessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&miss))
	assert.Equal(t, GuessResponse{Black: 0, White: 1, Attempts: 1}, miss)

	// When: the secret is submitted
	resp = post(t, srv.URL+"/game/guess", guessBody(sessionID, "3416"))

	// Then: the win is reported
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var win GuessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&win))
	assert.Equal(t, GuessResponse{Black: 4, White: 0, Attempts: 2}, win)

	// And: the finished session is gone
	resp = post(t, srv.URL+"/game/guess", guessBody(sessionID, "3416"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGame_SubmitGuessErrors(t *testing.T) {
	srv := newTestServer(t, nil)
	sessionID := startSession(t, srv)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"malformed body", "{", http.StatusBadRequest, "malformed request body"},
		{"missing session", guessBody("", "1234"), http.StatusBadRequest, "session_id is required"},
		{"non-numeric", guessBody(sessionID, "12a4"), http.StatusBadRequest, "non-numeric characters"},
		{"too short", guessBody(sessionID, "123"), http.StatusBadRequest, "invalid length"},
		{"out of range", guessBody(sessionID, "1278"), http.StatusBadRequest, "digits out of range"},
		{"unknown session", guessBody("nope", "1234"), http.StatusNotFound, "session not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/game/guess", tt.body)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, decodeError(t, resp))
		})
	}
}

func TestGame_ServiceFailures(t *testing.T) {
	t.Run("Finished session", func(t *testing.T) {
		srv := newTestServer(t, &stubService{err: apperror.ErrSessionFinished})

		resp := post(t, srv.URL+"/game/guess", guessBody("s1", "1234"))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Storage failure", func(t *testing.T) {
		srv := newTestServer(t, &stubService{err: errors.New("redis down")})

		resp := post(t, srv.URL+"/game/guess", guessBody("s1", "1234"))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		resp = post(t, srv.URL+"/game", "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestGame_Rules(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/game/rules") //nolint: noctx // it's ok in tests
	require.NoError(t, err)
	defer resp.Body.Close()

	var rules entity.Rules
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rules))
	assert.Equal(t, entity.DefaultRules(), rules)
}

func TestMetrics(t *testing.T) {
	// Given: a session that was started and won
	srv := newTestServer(t, nil)
	sessionID := startSession(t, srv)
	post(t, srv.URL+"/game/guess", guessBody(sessionID, "3416"))

	// When: metrics are scraped
	resp, err := http.Get(srv.URL + "/metrics") //nolint: noctx // it's ok in tests
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Then: the counters reflect the traffic
	assert.Contains(t, string(body), "mastermind_sessions_started_total 1")
	assert.Contains(t, string(body), "mastermind_guesses_total 1")
	assert.Contains(t, string(body), "mastermind_sessions_won_total 1")
}

func TestServer_StartStopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := New(logger, &stubService{}, prometheus.NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, server.Start(ctx, "0"))
}

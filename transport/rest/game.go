package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/mastermind/internal/apperror"
	"github.com/rocketscienceinc/mastermind/internal/entity"
)

type gameService interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	SubmitGuess(ctx context.Context, sessionID, rawGuess string) (entity.Score, *entity.Session, error)
	Rules() entity.Rules
}

type StartResponse struct {
	SessionID string `json:"session_id"`
}

type GuessRequest struct {
	SessionID string `json:"session_id"`
	Guess     string `json:"guess"`
}

type GuessResponse struct {
	Black    int `json:"black"`
	White    int `json:"white"`
	Attempts int `json:"attempts"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type gameHandler struct {
	logger *slog.Logger

	game    gameService
	metrics *metrics
}

func newGameHandler(logger *slog.Logger, game gameService, metrics *metrics) *gameHandler {
	return &gameHandler{
		logger:  logger.With("component", "gameHandler"),
		game:    game,
		metrics: metrics,
	}
}

func (that *gameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "StartGame")

	session, err := that.game.CreateSession(r.Context())
	if err != nil {
		log.Error("failed to create session", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create session"})
		return
	}

	that.metrics.sessionsStarted.Inc()

	writeJSON(w, http.StatusCreated, StartResponse{SessionID: session.ID})
}

func (that *gameHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "SubmitGuess")

	var req GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
		return
	}

	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "session_id is required"})
		return
	}

	score, session, err := that.game.SubmitGuess(r.Context(), req.SessionID, req.Guess)
	switch {
	case err == nil:
	case apperror.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: apperror.RejectionReason(err)})
		return
	case errors.Is(err, apperror.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: apperror.ErrSessionNotFound.Error()})
		return
	case errors.Is(err, apperror.ErrSessionFinished):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: apperror.ErrSessionFinished.Error()})
		return
	default:
		log.Error("failed to submit guess", "sessionID", req.SessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to score guess"})
		return
	}

	that.metrics.guesses.Inc()
	if session.IsFinished() {
		that.metrics.sessionsWon.Inc()
	}

	writeJSON(w, http.StatusOK, GuessResponse{
		Black:    score.Black,
		White:    score.White,
		Attempts: session.Attempts,
	})
}

func (that *gameHandler) Rules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, that.game.Rules())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

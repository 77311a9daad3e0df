package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/mastermind/internal/entity"
	"github.com/rocketscienceinc/mastermind/internal/mastermind"
	"github.com/rocketscienceinc/mastermind/internal/pkg"
)

type GameService interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	SubmitGuess(ctx context.Context, sessionID, rawGuess string) (entity.Score, *entity.Session, error)
	Rules() entity.Rules
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type generator interface {
	Generate(rules entity.Rules) entity.Code
}

type gameService struct {
	logger *slog.Logger

	rules       entity.Rules
	generator   generator
	sessionRepo sessionRepo
}

func NewGameService(logger *slog.Logger, rules entity.Rules, generator generator, sessionRepo sessionRepo) GameService {
	return &gameService{
		logger:      logger.With("component", "gameService"),
		rules:       rules,
		generator:   generator,
		sessionRepo: sessionRepo,
	}
}

func (that *gameService) Rules() entity.Rules {
	return that.rules
}

func (that *gameService) CreateSession(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(pkg.GenerateSessionID(), that.generator.Generate(that.rules))

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session in storage: %w", err)
	}

	that.logger.Info("session created", "sessionID", session.ID)

	return session, nil
}

// SubmitGuess validates and scores a guess. A winning guess finishes the session and removes it from storage.
func (that *gameService) SubmitGuess(ctx context.Context, sessionID, rawGuess string) (entity.Score, *entity.Session, error) {
	log := that.logger.With("method", "SubmitGuess", "sessionID", sessionID)

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return entity.Score{}, nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	if err = session.ConfirmOngoingState(); err != nil {
		return entity.Score{}, session, err
	}

	guess, err := that.rules.Validate(rawGuess)
	if err != nil {
		return entity.Score{}, session, fmt.Errorf("invalid guess: %w", err)
	}

	score, err := mastermind.Evaluate(session.Secret, guess)
	if err != nil {
		return entity.Score{}, session, fmt.Errorf("failed to evaluate guess: %w", err)
	}

	session.RecordAttempt(score, that.rules)

	if session.IsFinished() {
		log.Info("session won", "attempts", session.Attempts)
		that.cleanupSession(ctx, session)

		return score, session, nil
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return entity.Score{}, nil, fmt.Errorf("failed to update session: %w", err)
	}

	return score, session, nil
}

func (that *gameService) cleanupSession(ctx context.Context, session *entity.Session) {
	log := that.logger.With("method", "cleanupSession", "sessionID", session.ID)

	if err := that.sessionRepo.DeleteByID(ctx, session.ID); err != nil {
		log.Error("failed to delete session", "error", err)
	}
}

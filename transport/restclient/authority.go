package restclient

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/mastermind/internal/entity"
	"github.com/rocketscienceinc/mastermind/internal/game"
)

// Authority lets the session loop play against the remote service.
// The secret never leaves the service, so it does not implement game.Revealer.
// It does implement game.RulesProvider: the service's rules win over local config.
type Authority struct {
	client *Client

	rules     entity.Rules
	sessionID string
}

func NewAuthority(client *Client) *Authority {
	return &Authority{client: client}
}

func (that *Authority) SessionID() string {
	return that.sessionID
}

func (that *Authority) Rules() entity.Rules {
	return that.rules
}

func (that *Authority) Start(ctx context.Context) error {
	rules, err := that.client.Rules(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch remote rules: %w", err)
	}

	sessionID, err := that.client.StartSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to start remote session: %w", err)
	}

	that.rules = rules
	that.sessionID = sessionID

	return nil
}

func (that *Authority) Score(ctx context.Context, guess entity.Code) (entity.Score, error) {
	if that.sessionID == "" {
		return entity.Score{}, game.ErrNotStarted
	}

	return that.client.SubmitGuess(ctx, that.sessionID, guess)
}

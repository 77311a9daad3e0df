package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/mastermind/internal/entity"
	"github.com/rocketscienceinc/mastermind/internal/mastermind"
)

var ErrNotStarted = errors.New("session is not started")

// Authority owns the secret and scores guesses.
type Authority interface {
	Start(ctx context.Context) error
	Score(ctx context.Context, guess entity.Code) (entity.Score, error)
}

// Revealer is implemented by authorities that may disclose the secret when the player quits.
type Revealer interface {
	Secret() entity.Code
}

// RulesProvider is implemented by authorities that decide the rules. The loop adopts them once the authority has started.
type RulesProvider interface {
	Rules() entity.Rules
}

type generator interface {
	Generate(rules entity.Rules) entity.Code
}

// LocalAuthority keeps the secret in process and scores with the evaluator.
type LocalAuthority struct {
	rules     entity.Rules
	generator generator

	secret entity.Code
}

func NewLocalAuthority(rules entity.Rules, generator generator) *LocalAuthority {
	return &LocalAuthority{
		rules:     rules,
		generator: generator,
	}
}

// NewLocalAuthorityWithSecret plays against a fixed secret.
func NewLocalAuthorityWithSecret(rules entity.Rules, secret entity.Code) *LocalAuthority {
	return &LocalAuthority{
		rules:  rules,
		secret: secret.Clone(),
	}
}

func (that *LocalAuthority) Start(_ context.Context) error {
	if that.secret != nil {
		return nil
	}

	if that.generator == nil {
		return fmt.Errorf("%w: no generator configured", ErrNotStarted)
	}

	that.secret = that.generator.Generate(that.rules)

	return nil
}

func (that *LocalAuthority) Score(_ context.Context, guess entity.Code) (entity.Score, error) {
	if that.secret == nil {
		return entity.Score{}, ErrNotStarted
	}

	score, err := mastermind.Evaluate(that.secret, guess)
	if err != nil {
		return entity.Score{}, fmt.Errorf("failed to evaluate guess: %w", err)
	}

	return score, nil
}

func (that *LocalAuthority) Rules() entity.Rules {
	return that.rules
}

func (that *LocalAuthority) Secret() entity.Code {
	return that.secret.Clone()
}

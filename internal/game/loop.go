package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/mastermind/internal/apperror"
	"github.com/rocketscienceinc/mastermind/internal/entity"
)

const (
	exitCommand = "exit"

	// maxLineSize bounds how much of one input line is kept. The rest of a longer line is discarded.
	maxLineSize = 4096
)

var ErrStartFailed = errors.New("failed to start session")

// Loop drives one game session: start, read guesses, score them, stop on win or exit.
type Loop struct {
	logger *slog.Logger

	rules     entity.Rules
	authority Authority
	render    *Renderer

	state    State
	attempts int
	startErr error
}

func NewLoop(logger *slog.Logger, rules entity.Rules, authority Authority, render *Renderer) *Loop {
	return &Loop{
		logger:    logger.With("component", "game"),
		rules:     rules,
		authority: authority,
		render:    render,
		state:     StateAwaitingStart,
	}
}

func (that *Loop) State() State {
	return that.state
}

func (that *Loop) Attempts() int {
	return that.attempts
}

// Run reads guesses from in until the session reaches a terminal state.
// It returns an error only when the session could not be started.
func (that *Loop) Run(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReader(in)

	for !that.state.IsTerminal() {
		switch that.state {
		case StateAwaitingStart:
			that.enter(that.start(ctx))
		case StatePlaying:
			that.render.Prompt(that.attempts + 1)

			line, truncated, err := readLine(reader)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					that.logger.Error("failed to read input", "error", err)
				}
				// end of input ends the game like "exit"
				that.enter(StateQuit)
				continue
			}

			if truncated {
				that.render.Rejected(fmt.Errorf("%w: line is longer than %d characters", apperror.ErrInvalidLength, maxLineSize))
				continue
			}

			that.enter(that.handleLine(ctx, line))
		default:
			return fmt.Errorf("unexpected state: %s", that.state)
		}
	}

	if that.state == StateStartFailed {
		return fmt.Errorf("%w: %w", ErrStartFailed, that.startErr)
	}

	return nil
}

// readLine returns the next line without its terminator.
// Lines longer than maxLineSize are consumed whole and reported as truncated.
func readLine(reader *bufio.Reader) (string, bool, error) {
	var (
		line      []byte
		truncated bool
	)

	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if len(line) > 0 || truncated {
				return string(line), truncated, nil
			}
			return "", false, err
		}

		if room := maxLineSize - len(line); len(chunk) > room {
			line = append(line, chunk[:room]...)
			truncated = true
		} else {
			line = append(line, chunk...)
		}

		if !isPrefix {
			return string(line), truncated, nil
		}
	}
}

// start handles the AwaitingStart state.
func (that *Loop) start(ctx context.Context) State {
	if err := that.authority.Start(ctx); err != nil {
		that.startErr = err
		return StateStartFailed
	}

	if provider, ok := that.authority.(RulesProvider); ok {
		rules := provider.Rules()
		if err := rules.Check(); err != nil {
			that.startErr = fmt.Errorf("authority announced unusable rules: %w", err)
			return StateStartFailed
		}
		that.rules = rules
	}

	return StatePlaying
}

// handleLine handles one input line in the Playing state and returns the next state.
func (that *Loop) handleLine(ctx context.Context, line string) State {
	log := that.logger.With("method", "handleLine")

	if strings.EqualFold(strings.TrimSpace(line), exitCommand) {
		return StateQuit
	}

	guess, err := that.rules.Validate(line)
	if err != nil {
		log.Debug("guess rejected", "error", err)
		that.render.Rejected(err)
		return StatePlaying
	}

	that.attempts++

	score, err := that.authority.Score(ctx, guess)
	if err != nil {
		log.Error("failed to score guess", "attempt", that.attempts, "error", err)
		that.render.ScoreFailed(err)
		return StatePlaying
	}

	log.Debug("guess scored", "attempt", that.attempts, "black", score.Black, "white", score.White)
	that.render.Feedback(score)

	if score.IsWin(that.rules) {
		return StateWon
	}

	return StatePlaying
}

// enter switches to next and runs its entry action.
func (that *Loop) enter(next State) {
	if next == that.state {
		return
	}

	that.logger.Debug("state changed", "from", that.state, "to", next)
	that.state = next

	switch next {
	case StatePlaying:
		that.render.Welcome(that.rules)
	case StateWon:
		that.render.Won(that.attempts)
	case StateQuit:
		var secret entity.Code
		if revealer, ok := that.authority.(Revealer); ok {
			secret = revealer.Secret()
		}
		that.render.Quit(secret)
	case StateStartFailed:
		that.render.StartFailed(that.startErr)
	case StateAwaitingStart:
	}
}

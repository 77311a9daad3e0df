package entity

import (
	"fmt"

	"github.com/rocketscienceinc/mastermind/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Session is the authority-side state of one game.
type Session struct {
	ID       string `json:"id"`
	Secret   Code   `json:"secret"`
	Attempts int    `json:"attempts"`
	Status   string `json:"status"`
}

func NewSession(id string, secret Code) *Session {
	return &Session{
		ID:     id,
		Secret: secret,
		Status: StatusOngoing,
	}
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Session) ConfirmOngoingState() error {
	switch {
	case that.IsOngoing():
		return nil
	case that.IsFinished():
		return apperror.ErrSessionFinished
	default:
		return fmt.Errorf("unknown session status: %s", that.Status)
	}
}

// RecordAttempt counts an evaluated guess and finishes the session on a win.
func (that *Session) RecordAttempt(score Score, rules Rules) {
	that.Attempts++

	if score.IsWin(rules) {
		that.Status = StatusFinished
	}
}

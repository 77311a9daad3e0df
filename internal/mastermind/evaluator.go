package mastermind

import (
	"fmt"

	"github.com/rocketscienceinc/mastermind/internal/apperror"
	"github.com/rocketscienceinc/mastermind/internal/entity"
)

// consumed marks a position already matched. It lies outside any decimal digit range.
const consumed = -1

// Evaluate scores a guess against the secret.
// Exact matches are counted first so that a secret digit used for a black peg
// can never also produce a white one. Neither argument is mutated.
func Evaluate(secret, guess entity.Code) (entity.Score, error) {
	if len(secret) == 0 || len(secret) != len(guess) {
		return entity.Score{}, fmt.Errorf("%w: secret %d, guess %d", apperror.ErrCodeLengthMismatch, len(secret), len(guess))
	}

	s := secret.Clone()
	g := guess.Clone()

	var score entity.Score

	for i := range g {
		if g[i] == s[i] {
			score.Black++
			s[i] = consumed
			g[i] = consumed
		}
	}

	for i := range g {
		if g[i] == consumed {
			continue
		}

		if j := indexOf(s, g[i]); j >= 0 {
			score.White++
			s[j] = consumed
			g[i] = consumed
		}
	}

	return score, nil
}

// indexOf returns the lowest unconsumed position holding digit, or -1.
func indexOf(code entity.Code, digit int) int {
	for i, d := range code {
		if d == digit {
			return i
		}
	}

	return -1
}

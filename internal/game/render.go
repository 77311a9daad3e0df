package game

import (
	"fmt"
	"io"

	"github.com/TwiN/go-color"

	"github.com/rocketscienceinc/mastermind/internal/entity"
)

// Renderer writes the console side of a session.
type Renderer struct {
	out     io.Writer
	colored bool
}

func NewRenderer(out io.Writer, colored bool) *Renderer {
	return &Renderer{
		out:     out,
		colored: colored,
	}
}

func (that *Renderer) Welcome(rules entity.Rules) {
	that.printf("%s\n", that.paint(color.Bold, "Mastermind"))
	that.printf("Crack the %d-digit code, digits %d-%d. Type 'exit' to quit.\n", rules.CodeLength, rules.MinDigit, rules.MaxDigit)
}

func (that *Renderer) Prompt(attempt int) {
	that.printf("[%d] guess: ", attempt)
}

func (that *Renderer) Feedback(score entity.Score) {
	that.printf("%s  %s\n",
		that.paint(color.Green, fmt.Sprintf("Black: %d", score.Black)),
		that.paint(color.Yellow, fmt.Sprintf("White: %d", score.White)),
	)
}

func (that *Renderer) Rejected(err error) {
	that.printf("%s\n", that.paint(color.Red, "Invalid guess: "+err.Error()))
}

func (that *Renderer) ScoreFailed(err error) {
	that.printf("%s\n", that.paint(color.Red, "Could not score guess: "+err.Error()))
}

func (that *Renderer) StartFailed(err error) {
	that.printf("%s\n", that.paint(color.Red, "Could not start a game: "+err.Error()))
}

func (that *Renderer) Won(attempts int) {
	noun := "attempts"
	if attempts == 1 {
		noun = "attempt"
	}

	that.printf("%s\n", that.paint(color.Green, fmt.Sprintf("You cracked the code in %d %s!", attempts, noun)))
}

func (that *Renderer) Quit(secret entity.Code) {
	if len(secret) == 0 {
		that.printf("Game over.\n")
		return
	}

	that.printf("Game over. The code was %s.\n", that.paint(color.Cyan, secret.String()))
}

func (that *Renderer) paint(c, s string) string {
	if !that.colored {
		return s
	}
	return color.Colorize(c, s)
}

func (that *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}

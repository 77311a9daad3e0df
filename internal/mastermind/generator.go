package mastermind

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/mastermind/internal/entity"
)

// Generator draws secret codes. It is not safe for concurrent use when built with a custom source.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a generator backed by the runtime's random source.
func NewGenerator() *Generator {
	return &Generator{}
}

// NewSeededGenerator returns a generator with a reproducible sequence.
func NewSeededGenerator(seed1, seed2 uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed1, seed2))} //nolint: gosec // gameplay only
}

// Generate returns rules.CodeLength independent uniform draws from the rules' digit range.
func (that *Generator) Generate(rules entity.Rules) entity.Code {
	span := rules.MaxDigit - rules.MinDigit + 1

	code := make(entity.Code, rules.CodeLength)
	for i := range code {
		code[i] = rules.MinDigit + that.intN(span)
	}

	return code
}

func (that *Generator) intN(n int) int {
	if that.rnd == nil {
		return rand.IntN(n) //nolint: gosec // gameplay only
	}

	return that.rnd.IntN(n)
}

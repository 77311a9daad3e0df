package mastermind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mastermind/internal/entity"
)

func TestGenerator_Generate(t *testing.T) {
	t.Run("Codes follow the rules", func(t *testing.T) {
		// Given: the default rules and the runtime source
		rules := entity.DefaultRules()
		generator := NewGenerator()

		for range 500 {
			// When: a secret is generated
			secret := generator.Generate(rules)

			// Then: it has the right length and every digit is in range
			require.Len(t, secret, rules.CodeLength)
			for _, digit := range secret {
				require.True(t, rules.InRange(digit), "digit %d out of range", digit)
			}

			// And: it passes the validator
			_, err := rules.Validate(secret.String())
			require.NoError(t, err)
		}
	})

	t.Run("Every digit of the range is drawn", func(t *testing.T) {
		rules := entity.DefaultRules()
		generator := NewSeededGenerator(1, 2)

		seen := map[int]bool{}
		for range 200 {
			for _, digit := range generator.Generate(rules) {
				seen[digit] = true
			}
		}

		assert.Len(t, seen, rules.MaxDigit-rules.MinDigit+1)
	})

	t.Run("Seeded generators are reproducible", func(t *testing.T) {
		rules := entity.Rules{CodeLength: 6, MinDigit: 0, MaxDigit: 9}

		a := NewSeededGenerator(42, 7).Generate(rules)
		b := NewSeededGenerator(42, 7).Generate(rules)

		assert.Equal(t, a, b)
	})

	t.Run("Single digit range", func(t *testing.T) {
		rules := entity.Rules{CodeLength: 3, MinDigit: 5, MaxDigit: 5}

		secret := NewGenerator().Generate(rules)

		assert.Equal(t, entity.Code{5, 5, 5}, secret)
	})
}

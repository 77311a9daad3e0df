package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/mastermind/internal/apperror"
)

const (
	DefaultCodeLength = 4
	DefaultMinDigit   = 1
	DefaultMaxDigit   = 6
)

// Rules describe the code shape shared by the generator, the validator and the evaluator.
type Rules struct {
	CodeLength int `json:"code_length"`
	MinDigit   int `json:"min_digit"`
	MaxDigit   int `json:"max_digit"`
}

func DefaultRules() Rules {
	return Rules{
		CodeLength: DefaultCodeLength,
		MinDigit:   DefaultMinDigit,
		MaxDigit:   DefaultMaxDigit,
	}
}

// Check makes sure the rules describe codes that a single decimal digit per position can express.
func (that Rules) Check() error {
	switch {
	case that.CodeLength < 1:
		return fmt.Errorf("%w: code length %d", apperror.ErrInvalidRules, that.CodeLength)
	case that.MinDigit < 0 || that.MaxDigit > 9:
		return fmt.Errorf("%w: digit range %d-%d must lie within 0-9", apperror.ErrInvalidRules, that.MinDigit, that.MaxDigit)
	case that.MinDigit > that.MaxDigit:
		return fmt.Errorf("%w: min digit %d is greater than max digit %d", apperror.ErrInvalidRules, that.MinDigit, that.MaxDigit)
	default:
		return nil
	}
}

func (that Rules) InRange(digit int) bool {
	return digit >= that.MinDigit && digit <= that.MaxDigit
}

// Validate parses raw user input into a code.
// Checks run in order: length, then numeric characters, then digit range.
func (that Rules) Validate(raw string) (Code, error) {
	input := strings.TrimSpace(raw)

	if n := utf8.RuneCountInString(input); n != that.CodeLength {
		return nil, fmt.Errorf("%w: got %d characters, want %d", apperror.ErrInvalidLength, n, that.CodeLength)
	}

	for _, r := range input {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: %q is not a digit", apperror.ErrNonNumericCharacters, r)
		}
	}

	code := make(Code, 0, that.CodeLength)
	for _, r := range input {
		digit := int(r - '0')
		if !that.InRange(digit) {
			return nil, fmt.Errorf("%w: %d is outside %d-%d", apperror.ErrOutOfRangeDigits, digit, that.MinDigit, that.MaxDigit)
		}
		code = append(code, digit)
	}

	return code, nil
}

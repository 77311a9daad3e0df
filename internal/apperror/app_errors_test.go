package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectionReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"length", fmt.Errorf("%w: got 3 characters", ErrInvalidLength), "invalid length"},
		{"non-numeric", fmt.Errorf("invalid guess: %w", ErrNonNumericCharacters), "non-numeric characters"},
		{"range", ErrOutOfRangeDigits, "digits out of range"},
		{"other", ErrSessionNotFound, ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RejectionReason(tt.err))
			assert.Equal(t, tt.want != "", IsValidation(tt.err))
		})
	}
}

func TestIsValidation_Unrelated(t *testing.T) {
	assert.False(t, IsValidation(errors.New("boom")))
}

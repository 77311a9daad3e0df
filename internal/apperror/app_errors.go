package apperror

import "errors"

var (
	ErrInvalidLength        = errors.New("invalid length")
	ErrNonNumericCharacters = errors.New("non-numeric characters")
	ErrOutOfRangeDigits     = errors.New("digits out of range")

	ErrCodeLengthMismatch = errors.New("secret and guess lengths differ")
	ErrInvalidRules       = errors.New("invalid game rules")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFinished = errors.New("session is already finished")
)

// IsValidation reports whether err is one of the guess rejection reasons.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrNonNumericCharacters) ||
		errors.Is(err, ErrOutOfRangeDigits)
}

// RejectionReason returns the short reason behind a guess rejection, or an empty string.
func RejectionReason(err error) string {
	for _, reason := range []error{ErrInvalidLength, ErrNonNumericCharacters, ErrOutOfRangeDigits} {
		if errors.Is(err, reason) {
			return reason.Error()
		}
	}

	return ""
}

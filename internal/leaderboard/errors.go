package leaderboard

import (
	"errors"
	"net/http"
)

// Validation failures. Their public message names the problem.
var (
	ErrMalformed      = errors.New("malformed submission")
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidWallet  = errors.New("invalid wallet address")
	ErrWeekMismatch   = errors.New("week id is not the current week")
	ErrStaleTimestamp = errors.New("claim timestamp out of range")
)

// Integrity failures. Their public message is deliberately vague.
var (
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrImplausibleScore = errors.New("score exceeds the duration ceiling")
	ErrPayloadMismatch  = errors.New("signed payload does not match the claim")
	ErrBadSignature     = errors.New("signature verification failed")
)

// ErrStorage wraps backend failures.
var ErrStorage = errors.New("storage unavailable")

var publicMessages = []struct {
	err error
	msg string
}{
	{ErrMalformed, "Invalid request body"},
	{ErrMissingFields, "Missing required fields"},
	{ErrInvalidWallet, "Invalid wallet address"},
	{ErrWeekMismatch, "Invalid week ID"},
	{ErrStaleTimestamp, "Submission expired"},
	{ErrRateLimited, "Rate limit exceeded. Try again later."},
	{ErrBadSignature, "Invalid signature"},
	{ErrImplausibleScore, "Score validation failed"},
	{ErrPayloadMismatch, "Score validation failed"},
}

// Class is the handling category of a submission error.
type Class int

const (
	ClassNone       Class = iota
	ClassValidation       // malformed input, never retried
	ClassIntegrity        // cheat-suspect claim
	ClassTransient        // backend failure, retry is up to the user
)

// String returns the class name used in logs.
func (c Class) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	case ClassIntegrity:
		return "integrity"
	case ClassTransient:
		return "transient"
	default:
		return "none"
	}
}

// Classify maps err onto the error taxonomy. Unknown errors are transient.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrMalformed), errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidWallet), errors.Is(err, ErrWeekMismatch),
		errors.Is(err, ErrStaleTimestamp):
		return ClassValidation
	case errors.Is(err, ErrRateLimited), errors.Is(err, ErrImplausibleScore),
		errors.Is(err, ErrPayloadMismatch), errors.Is(err, ErrBadSignature):
		return ClassIntegrity
	default:
		return ClassTransient
	}
}

// StatusCode returns the HTTP status for a submission error.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadSignature):
		return http.StatusUnauthorized
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	}
	if Classify(err) == ClassTransient {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// PublicMessage returns the text shown to the submitter.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, pm := range publicMessages {
		if errors.Is(err, pm.err) {
			return pm.msg
		}
	}
	return "Failed to submit score"
}

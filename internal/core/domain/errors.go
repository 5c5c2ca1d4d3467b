package domain

import (
	"errors"
	"sort"
	"strings"
)

// Error categories. Concrete errors report one of these through Is so
// transport code can branch on the category with errors.Is.
var (
	ErrAuth         = errors.New("authentication failed")
	ErrPrecondition = errors.New("precondition failed")
)

// AuthError is a provider-reported failure whose message is shown verbatim.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

var (
	ErrDuplicateAccount   = &AuthError{Code: "duplicate_account", Message: "This email is already registered."}
	ErrWeakPassword       = &AuthError{Code: "weak_password", Message: "Password is too weak. Please use a stronger password."}
	ErrInvalidEmail       = &AuthError{Code: "invalid_email", Message: "Invalid email address."}
	ErrInvalidCredentials = &AuthError{Code: "invalid_credentials", Message: "Invalid email or password."}
)

// PreconditionError blocks an operation before any state is written.
type PreconditionError struct {
	Code    string
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

var ErrMissingPortfolio = &PreconditionError{
	Code:    "missing_portfolio",
	Message: "Please save your portfolio first before applying to auditions!",
}

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPortfolioNotFound   = errors.New("portfolio not found")
	ErrAuditionNotFound    = errors.New("audition not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("you have already applied to this audition")
	ErrDuplicateSubmission = errors.New("a submission is already in progress")
	ErrForbidden           = errors.New("access forbidden")
	ErrNoSession           = errors.New("no active session")
	ErrUnknownRole         = errors.New("unknown role")
)

// ValidationError collects per-field messages. All fields are checked before
// it is returned, so a client can render every message at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a message for field, keeping the first one reported.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns e when it holds at least one message.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// PersistenceError marks a failure of the backing store (network, timeout,
// driver error). It is never retried automatically.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError unless it is nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

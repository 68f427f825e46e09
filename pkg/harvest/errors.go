package harvest

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the harvest lifecycle. Handlers map these onto HTTP
// statuses; everything is tenant-scoped, so an entry owned by another tenant
// surfaces as ErrNotFound, never as a permission error.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func invalidArgument(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidArgument)
}

func invalidState(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidState)
}

// Violation is one failed submission rule: a machine-readable field tag plus
// a human message, so a form can highlight every offending input at once.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the complete list of violated submission rules.
// The gate never short-circuits; all rules run and all failures accumulate.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "submission validation failed: " + strings.Join(msgs, "; ")
}

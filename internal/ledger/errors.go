package ledger

import "fmt"

// ValidationError rejects an input before any persistence is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError signals a reference to a record that does not exist in the
// caller's snapshot, e.g. paying against an unknown debt id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %s not found", e.ID)
}

// Outcome classifies what a successfully planned operation means for the
// caller. AlreadySettled is informational, not a failure: the plan carries no
// writes and the debt needs no further payment.
type Outcome string

const (
	OutcomeRecorded       Outcome = "recorded"
	OutcomeSettled        Outcome = "settled"
	OutcomeAlreadySettled Outcome = "already_settled"
	OutcomeDeleted        Outcome = "deleted"
)

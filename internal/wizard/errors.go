package wizard

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindIncompleteDatesOrStores Kind = "incomplete_dates_or_stores"
	KindIncompleteApplicant     Kind = "incomplete_applicant"
	KindPersonMissingFields     Kind = "person_missing_fields"
	KindPricingUnavailable      Kind = "pricing_unavailable"
	KindSubmissionFailed        Kind = "submission_failed"
	KindInvalidTransition       Kind = "invalid_transition"
)

// ErrSubmissionFailed is the only thing the customer learns about a failed
// submission.
var ErrSubmissionFailed = errors.New("reservation could not be submitted, please try again")

// StepError blocks a transition. The form it came with stays on its step.
type StepError struct {
	Kind        Kind
	PersonIndex int
	Missing     []string
	Message     string
	Err         error
}

func (e *StepError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Kind == KindPersonMissingFields:
		return fmt.Sprintf("person %d: %s missing", e.PersonIndex, strings.Join(e.Missing, ", "))
	case e.Kind == KindIncompleteApplicant:
		return fmt.Sprintf("applicant: %s missing", strings.Join(e.Missing, ", "))
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func IsStepError(err error) (*StepError, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

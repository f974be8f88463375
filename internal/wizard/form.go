package wizard

import (
	"context"
	"fmt"

	"snowrent/internal/domain"
	"snowrent/internal/pricing"
)

type Step int

const (
	StepDatesAndStores Step = iota + 1
	StepApplicant
	StepPersons
	StepReview
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepDatesAndStores:
		return "dates and stores"
	case StepApplicant:
		return "applicant"
	case StepPersons:
		return "persons"
	case StepReview:
		return "review"
	case StepConfirmed:
		return "confirmed"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Form is the state of one reservation wizard session. Transitions return a
// new Form; on error the returned Form is the unchanged input.
type Form struct {
	Step        Step
	StartDate   string
	EndDate     string
	RentStore   domain.Store
	ReturnStore domain.Store
	Applicant   domain.Applicant
	Persons     []domain.RentalPerson
	Quote       *pricing.Quote

	table *pricing.Table
}

func New(table *pricing.Table) Form {
	return Form{
		Step:      StepDatesAndStores,
		Applicant: domain.NewApplicant(),
		Persons:   []domain.RentalPerson{{}},
		table:     table,
	}
}

// SetPeople resizes the party, keeping answers already given.
func (f Form) SetPeople(n int) (Form, error) {
	if n < 1 {
		return f, fmt.Errorf("party size must be at least 1, got %d", n)
	}
	persons := make([]domain.RentalPerson, n)
	copy(persons, f.Persons)
	f.Persons = persons
	return f, nil
}

// SetPerson replaces person i (0-based) after applying the full-set rule.
func (f Form) SetPerson(i int, p domain.RentalPerson) (Form, error) {
	if i < 0 || i >= len(f.Persons) {
		return f, fmt.Errorf("person %d out of range", i+1)
	}
	persons := make([]domain.RentalPerson, len(f.Persons))
	copy(persons, f.Persons)
	persons[i] = p.Normalize()
	f.Persons = persons
	return f, nil
}

func (f Form) Request() (pricing.Request, error) {
	start, end, err := ParseDates(f.StartDate, f.EndDate, f.RentStore, f.ReturnStore)
	if err != nil {
		return pricing.Request{}, err
	}
	return pricing.Request{
		StartDate:   start,
		EndDate:     end,
		RentStore:   f.RentStore,
		ReturnStore: f.ReturnStore,
		Persons:     f.Persons,
	}, nil
}

// Next moves one step forward if the current step is complete. Leaving the
// persons step attaches the quote.
func (f Form) Next() (Form, error) {
	switch f.Step {
	case StepDatesAndStores:
		if _, _, err := ParseDates(f.StartDate, f.EndDate, f.RentStore, f.ReturnStore); err != nil {
			return f, err
		}
		f.Step = StepApplicant
		return f, nil

	case StepApplicant:
		if missing := MissingApplicantFields(f.Applicant); len(missing) > 0 {
			return f, &StepError{Kind: KindIncompleteApplicant, Missing: missing}
		}
		f.Step = StepPersons
		return f, nil

	case StepPersons:
		if err := CheckPersons(f.Persons); err != nil {
			return f, err
		}
		q, err := f.quote()
		if err != nil {
			return f, err
		}
		f.Quote = q
		f.Step = StepReview
		return f, nil
	}

	return f, &StepError{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot advance from %s", f.Step),
	}
}

// Back returns to the previous step. The confirmed step is final.
func (f Form) Back() (Form, error) {
	if f.Step < StepApplicant || f.Step > StepReview {
		return f, &StepError{
			Kind:    KindInvalidTransition,
			Message: fmt.Sprintf("cannot go back from %s", f.Step),
		}
	}
	if f.Step == StepReview {
		f.Quote = nil
	}
	f.Step--
	return f, nil
}

// Submission is the payload sent on confirmation.
func (f Form) Submission() domain.RentalSubmission {
	sub := domain.RentalSubmission{
		Applicant:   f.Applicant,
		Persons:     f.Persons,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		RentStore:   f.RentStore,
		ReturnStore: f.ReturnStore,
	}
	if f.Quote != nil {
		sub.Price = f.Quote.Total
		sub.Detail = f.Quote.Detail
	}
	return sub
}

// Submit sends the reviewed reservation. Only an acknowledged submission
// reaches StepConfirmed; a failure leaves the form on the review step.
func (f Form) Submit(ctx context.Context, s Submitter) (Form, error) {
	if f.Step != StepReview || f.Quote == nil {
		return f, &StepError{
			Kind:    KindInvalidTransition,
			Message: fmt.Sprintf("cannot submit from %s", f.Step),
		}
	}
	if err := s.Submit(ctx, f.Submission()); err != nil {
		return f, &StepError{
			Kind:    KindSubmissionFailed,
			Message: ErrSubmissionFailed.Error(),
			Err:     err,
		}
	}
	f.Step = StepConfirmed
	return f, nil
}

func (f Form) quote() (*pricing.Quote, error) {
	req, err := f.Request()
	if err != nil {
		return nil, err
	}
	q, err := pricing.ComputeQuote(f.table, req)
	if err != nil {
		if pe, ok := pricing.IsPricingError(err); ok {
			return nil, &StepError{
				Kind:        KindPricingUnavailable,
				PersonIndex: pe.PersonIndex,
				Err:         err,
			}
		}
		return nil, err
	}
	return q, nil
}

// Review runs every guard of steps one to three against a finished
// submission and prices it. The intake endpoint uses it to re-check what
// clients send.
func Review(table *pricing.Table, sub domain.RentalSubmission) (*pricing.Quote, error) {
	f := New(table)
	f.StartDate = sub.StartDate
	f.EndDate = sub.EndDate
	f.RentStore = sub.RentStore
	f.ReturnStore = sub.ReturnStore
	f.Applicant = sub.Applicant
	f.Persons = make([]domain.RentalPerson, len(sub.Persons))
	for i, p := range sub.Persons {
		f.Persons[i] = p.Normalize()
	}

	var err error
	for f.Step < StepReview {
		if f, err = f.Next(); err != nil {
			return nil, err
		}
	}
	return f.Quote, nil
}

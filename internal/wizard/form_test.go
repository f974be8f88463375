package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowrent/internal/domain"
	"snowrent/internal/pricing"
)

type mockSubmitter struct {
	SubmitFunc func(ctx context.Context, sub domain.RentalSubmission) error
	calls      int
}

func (m *mockSubmitter) Submit(ctx context.Context, sub domain.RentalSubmission) error {
	m.calls++
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, sub)
	}
	return nil
}

func newTestForm(t *testing.T) Form {
	t.Helper()
	table, err := pricing.Default()
	require.NoError(t, err)
	return New(table)
}

func reviewForm(t *testing.T) Form {
	t.Helper()
	f := newTestForm(t)
	f.StartDate = "2026-02-10"
	f.EndDate = "2026-02-12"
	f.RentStore = domain.StoreFurano
	f.ReturnStore = domain.StoreFurano
	f.Applicant = completeApplicant()

	f, err := f.SetPerson(0, completePerson())
	require.NoError(t, err)

	for f.Step < StepReview {
		f, err = f.Next()
		require.NoError(t, err)
	}
	return f
}

func TestNew_Defaults(t *testing.T) {
	f := newTestForm(t)

	assert.Equal(t, StepDatesAndStores, f.Step)
	assert.Len(t, f.Persons, 1)
	assert.Equal(t, domain.DefaultCountryCode, f.Applicant.CountryCode)
}

func TestNext_DatesAndStoresGuard(t *testing.T) {
	f := newTestForm(t)
	f.StartDate = "2026-02-10"
	f.EndDate = "2026-02-10"

	got, err := f.Next()

	se, ok := IsStepError(err)
	require.True(t, ok)
	assert.Equal(t, KindIncompleteDatesOrStores, se.Kind)
	assert.Equal(t, StepDatesAndStores, got.Step)

	f.RentStore = domain.StoreFurano
	f.ReturnStore = domain.StoreAsahikawa
	got, err = f.Next()
	require.NoError(t, err)
	assert.Equal(t, StepApplicant, got.Step)
}

func TestNext_ApplicantGuard(t *testing.T) {
	f := newTestForm(t)
	f.Step = StepApplicant
	f.Applicant.Name = "Sakura"

	got, err := f.Next()

	se, ok := IsStepError(err)
	require.True(t, ok)
	assert.Equal(t, KindIncompleteApplicant, se.Kind)
	assert.Contains(t, se.Missing, LabelPhone)
	assert.Equal(t, StepApplicant, got.Step)
}

func TestNext_PersonsGuard(t *testing.T) {
	f := reviewForm(t)
	f, err := f.Back()
	require.NoError(t, err)

	f, err = f.SetPeople(2)
	require.NoError(t, err)
	got, err := f.Next()

	se, ok := IsStepError(err)
	require.True(t, ok)
	assert.Equal(t, KindPersonMissingFields, se.Kind)
	assert.Equal(t, 2, se.PersonIndex)
	assert.Equal(t, StepPersons, got.Step)
	assert.Nil(t, got.Quote)
}

func TestNext_AttachesQuote(t *testing.T) {
	f := reviewForm(t)

	assert.Equal(t, StepReview, f.Step)
	require.NotNil(t, f.Quote)
	assert.Equal(t, 3, f.Quote.Days)
	assert.Equal(t, 19000, f.Quote.Total)
}

func TestNext_ChildPowderIsPricingUnavailable(t *testing.T) {
	f := reviewForm(t)
	f, err := f.Back()
	require.NoError(t, err)

	child := completePerson()
	child.Age = intPtr(9)
	child.BoardTier = domain.TierPowder
	f, err = f.SetPerson(0, child)
	require.NoError(t, err)

	got, err := f.Next()

	se, ok := IsStepError(err)
	require.True(t, ok)
	assert.Equal(t, KindPricingUnavailable, se.Kind)
	assert.Equal(t, 1, se.PersonIndex)
	assert.Equal(t, StepPersons, got.Step)
}

func TestBack(t *testing.T) {
	f := reviewForm(t)

	f, err := f.Back()
	require.NoError(t, err)
	assert.Equal(t, StepPersons, f.Step)
	assert.Nil(t, f.Quote)

	f, err = f.Back()
	require.NoError(t, err)
	f, err = f.Back()
	require.NoError(t, err)
	assert.Equal(t, StepDatesAndStores, f.Step)

	_, err = f.Back()
	assert.Error(t, err)
}

func TestSetPeople_KeepsAnswers(t *testing.T) {
	f := newTestForm(t)
	f, err := f.SetPerson(0, completePerson())
	require.NoError(t, err)

	grown, err := f.SetPeople(3)
	require.NoError(t, err)
	assert.Len(t, grown.Persons, 3)
	assert.Equal(t, "Haruto", grown.Persons[0].Name)
	assert.Empty(t, grown.Persons[2].Name)

	shrunk, err := grown.SetPeople(1)
	require.NoError(t, err)
	assert.Len(t, shrunk.Persons, 1)

	_, err = f.SetPeople(0)
	assert.Error(t, err)
}

func TestSetPerson_NormalizesAndDoesNotAlias(t *testing.T) {
	f := newTestForm(t)
	p := completePerson()
	p.Bundle = domain.BundleFullSet
	p.Outerwear = domain.OuterwearJacket

	updated, err := f.SetPerson(0, p)
	require.NoError(t, err)

	assert.Equal(t, domain.OuterwearNone, updated.Persons[0].Outerwear)
	assert.Empty(t, f.Persons[0].Name)

	_, err = f.SetPerson(4, p)
	assert.Error(t, err)
}

func TestSubmit_Success(t *testing.T) {
	f := reviewForm(t)
	var got domain.RentalSubmission
	s := &mockSubmitter{SubmitFunc: func(_ context.Context, sub domain.RentalSubmission) error {
		got = sub
		return nil
	}}

	done, err := f.Submit(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, StepConfirmed, done.Step)
	assert.Equal(t, 19000, got.Price)
	assert.Equal(t, "2026-02-10", got.StartDate)
	require.Len(t, got.Detail, 1)

	_, err = done.Back()
	assert.Error(t, err)
	_, err = done.Next()
	assert.Error(t, err)
}

func TestSubmit_FailureStaysOnReview(t *testing.T) {
	f := reviewForm(t)
	s := &mockSubmitter{SubmitFunc: func(context.Context, domain.RentalSubmission) error {
		return errors.New("connection reset")
	}}

	got, err := f.Submit(context.Background(), s)

	se, ok := IsStepError(err)
	require.True(t, ok)
	assert.Equal(t, KindSubmissionFailed, se.Kind)
	assert.Equal(t, ErrSubmissionFailed.Error(), se.Error())
	assert.Equal(t, StepReview, got.Step)
	assert.Equal(t, 1, s.calls)

	// resubmission is allowed
	s.SubmitFunc = nil
	got, err = got.Submit(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, StepConfirmed, got.Step)
}

func TestSubmit_OnlyFromReview(t *testing.T) {
	s := &mockSubmitter{}

	_, err := newTestForm(t).Submit(context.Background(), s)

	assert.Error(t, err)
	assert.Zero(t, s.calls)
}

func TestReview(t *testing.T) {
	table, err := pricing.Default()
	require.NoError(t, err)
	sub := reviewForm(t).Submission()
	sub.ReturnStore = domain.StoreAsahikawa

	q, err := Review(table, sub)

	require.NoError(t, err)
	assert.Equal(t, 19000+3000, q.Total)
}

func TestReview_RejectsIncompletePerson(t *testing.T) {
	table, err := pricing.Default()
	require.NoError(t, err)
	sub := reviewForm(t).Submission()
	bad := completePerson()
	bad.Height = ""
	sub.Persons = append(sub.Persons, bad)

	_, err = Review(table, sub)

	se, ok := IsStepError(err)
	require.True(t, ok)
	assert.Equal(t, 2, se.PersonIndex)
	assert.Equal(t, []string{LabelHeight}, se.Missing)
}

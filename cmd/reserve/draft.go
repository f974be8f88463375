package main

import (
	"fmt"

	"snowrent/internal/commons"
	"snowrent/internal/domain"
	"snowrent/internal/pricing"
	"snowrent/internal/wizard"
)

// Draft is a reservation filled in ahead of time, one YAML document per
// booking.
type Draft struct {
	StartDate   string                `yaml:"start_date"`
	EndDate     string                `yaml:"end_date"`
	RentStore   domain.Store          `yaml:"rent_store"`
	ReturnStore domain.Store          `yaml:"return_store"`
	Applicant   domain.Applicant      `yaml:"applicant"`
	Persons     []domain.RentalPerson `yaml:"persons"`
}

func loadDraft(path string) (Draft, error) {
	d := Draft{Applicant: domain.NewApplicant()}
	if err := commons.LoadYAMLFile(path, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// walk drives a fresh form through every step up to review, the same way a
// user clicking "next" would.
func walk(table *pricing.Table, d Draft) (wizard.Form, error) {
	f := wizard.New(table)
	f.StartDate = d.StartDate
	f.EndDate = d.EndDate
	f.RentStore = d.RentStore
	f.ReturnStore = d.ReturnStore
	f.Applicant = d.Applicant
	if f.Applicant.ShuttleMode != domain.ShuttleNeed {
		f.Applicant = f.Applicant.WithShuttleMode(f.Applicant.ShuttleMode)
	}

	var err error
	if f, err = f.SetPeople(max(len(d.Persons), 1)); err != nil {
		return f, err
	}
	for i, p := range d.Persons {
		if f, err = f.SetPerson(i, p); err != nil {
			return f, err
		}
	}

	for f.Step < wizard.StepReview {
		step := f.Step
		if f, err = f.Next(); err != nil {
			return f, fmt.Errorf("%s: %w", step, err)
		}
	}
	return f, nil
}

package wizard

import (
	"strings"
	"time"

	"snowrent/internal/domain"
)

// Field labels shown to the customer, in form order.
const (
	LabelName       = "name"
	LabelAge        = "age"
	LabelGender     = "gender"
	LabelHeight     = "height"
	LabelWeight     = "weight"
	LabelFootSize   = "foot size"
	LabelLevel      = "level"
	LabelGearStyle  = "gear style"
	LabelBoardTier  = "board type"
	LabelBundle     = "equipment bundle"
	LabelOuterwear  = "outerwear"
	LabelHelmetOnly = "helmet only"
	LabelFastWear   = "fast-wear upgrade"

	LabelMessenger   = "messenger"
	LabelMessengerID = "messenger id"
	LabelPhone       = "phone"
	LabelEmail       = "email"
	LabelHotel       = "hotel"
)

type check struct {
	label   string
	missing bool
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// MissingFields lists the unanswered required fields of p. Outerwear and
// helmet are only asked for when the bundle is not a full set.
func MissingFields(p domain.RentalPerson) []string {
	checks := []check{
		{LabelName, blank(p.Name)},
		{LabelAge, p.Age == nil},
		{LabelGender, blank(p.Gender)},
		{LabelHeight, blank(p.Height)},
		{LabelWeight, blank(p.Weight)},
		{LabelFootSize, blank(p.FootSize)},
		{LabelLevel, p.Level == ""},
		{LabelGearStyle, p.GearStyle == ""},
		{LabelBoardTier, p.BoardTier == ""},
		{LabelBundle, p.Bundle == ""},
	}
	if p.Bundle != domain.BundleFullSet {
		checks = append(checks,
			check{LabelOuterwear, p.Outerwear == ""},
			check{LabelHelmetOnly, p.HelmetOnly == nil},
		)
	}
	checks = append(checks, check{LabelFastWear, p.FastWear == nil})

	return collect(checks)
}

// MissingApplicantFields lists the unanswered contact fields. Shuttle legs
// are optional.
func MissingApplicantFields(a domain.Applicant) []string {
	return collect([]check{
		{LabelName, blank(a.Name)},
		{LabelPhone, blank(a.Phone)},
		{LabelEmail, blank(a.Email)},
		{LabelMessenger, a.Messenger == ""},
		{LabelMessengerID, blank(a.MessengerID)},
		{LabelHotel, blank(a.Hotel)},
	})
}

func collect(checks []check) []string {
	var missing []string
	for _, c := range checks {
		if c.missing {
			missing = append(missing, c.label)
		}
	}
	return missing
}

// ParseDates checks the first step: both dates in domain.DateLayout with
// start not after end, and both stores chosen.
func ParseDates(start, end string, rent, ret domain.Store) (time.Time, time.Time, error) {
	if blank(start) || blank(end) {
		return time.Time{}, time.Time{}, &StepError{Kind: KindIncompleteDatesOrStores, Message: "select both rental dates"}
	}
	s, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, &StepError{Kind: KindIncompleteDatesOrStores, Message: "invalid start date"}
	}
	e, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, &StepError{Kind: KindIncompleteDatesOrStores, Message: "invalid end date"}
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, &StepError{Kind: KindIncompleteDatesOrStores, Message: "end date is before start date"}
	}
	if rent == "" || ret == "" {
		return time.Time{}, time.Time{}, &StepError{Kind: KindIncompleteDatesOrStores, Message: "select pickup and return stores"}
	}
	return s, e, nil
}

// CheckPersons returns a StepError for the first person with missing fields.
func CheckPersons(persons []domain.RentalPerson) error {
	if len(persons) == 0 {
		return &StepError{Kind: KindPersonMissingFields, Message: "add at least one person"}
	}
	for i, p := range persons {
		if missing := MissingFields(p); len(missing) > 0 {
			return &StepError{
				Kind:        KindPersonMissingFields,
				PersonIndex: i + 1,
				Missing:     missing,
			}
		}
	}
	return nil
}

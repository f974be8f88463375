package pricing

import (
	"fmt"
	"time"

	"snowrent/internal/domain"
)

type Request struct {
	StartDate   time.Time
	EndDate     time.Time
	RentStore   domain.Store
	ReturnStore domain.Store
	Persons     []domain.RentalPerson
}

// CrossStore reports whether equipment is returned to a different shop.
func (r Request) CrossStore() bool {
	return r.RentStore != r.ReturnStore
}

type Quote struct {
	Days   int                  `json:"days"`
	Total  int                  `json:"total"`
	Detail []domain.QuoteDetail `json:"detail"`
}

// PricingError means a person's selection has no entry in the price table.
// PersonIndex is 1-based.
type PricingError struct {
	PersonIndex int
	Class       domain.CustomerClass
	Tier        domain.BoardTier
	Bundle      domain.Bundle
	Reason      string
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("person %d: %s", e.PersonIndex, e.Reason)
}

func IsPricingError(err error) (*PricingError, bool) {
	if pe, ok := err.(*PricingError); ok {
		return pe, true
	}
	return nil, false
}

// ComputeQuote prices every person of req in input order. It does not touch
// its arguments and yields the same quote for the same input.
func ComputeQuote(t *Table, req Request) (*Quote, error) {
	days := DayCount(req.StartDate, req.EndDate)
	idx, extra := TierIndex(days)

	q := &Quote{
		Days:   days,
		Detail: make([]domain.QuoteDetail, 0, len(req.Persons)),
	}

	for i, p := range req.Persons {
		d, err := priceOne(t, p.Normalize(), i+1, idx, extra, req.CrossStore())
		if err != nil {
			return nil, err
		}
		q.Detail = append(q.Detail, d)
		q.Total += d.Subtotal
	}

	return q, nil
}

func priceOne(t *Table, p domain.RentalPerson, n, idx, extra int, crossStore bool) (domain.QuoteDetail, error) {
	class := p.Class()
	ct := t.Class(class)

	if p.BoardTier == "" || p.Bundle == "" {
		return domain.QuoteDetail{}, &PricingError{
			PersonIndex: n,
			Class:       class,
			Tier:        p.BoardTier,
			Bundle:      p.Bundle,
			Reason:      "board type and equipment bundle must be selected",
		}
	}

	main, ok := ct.Main(p.BoardTier, p.Bundle)
	if !ok {
		return domain.QuoteDetail{}, &PricingError{
			PersonIndex: n,
			Class:       class,
			Tier:        p.BoardTier,
			Bundle:      p.Bundle,
			Reason:      fmt.Sprintf("no %s rate for %s %s", class, p.BoardTier, p.Bundle),
		}
	}

	d := domain.QuoteDetail{
		Index: n,
		Class: class,
		Main:  main.Charge(idx, extra),
	}

	if p.Bundle != domain.BundleFullSet {
		switch p.Outerwear {
		case domain.OuterwearFullSet:
			d.Outerwear = ct.OuterwearSet.Charge(idx, extra)
		case domain.OuterwearJacket, domain.OuterwearPants:
			d.Outerwear = ct.OuterwearSingle.Charge(idx, extra)
		}
		if p.WantsHelmet() {
			d.Helmet = t.Helmet.Charge(idx, extra)
		}
	}

	if p.WantsFastWear() {
		d.FastWear = t.FastWear.Charge(idx, extra)
	}

	if crossStore {
		d.CrossStore = t.CrossStoreSurcharge
	}

	d.Subtotal = d.Main + d.Boots + d.Outerwear + d.Helmet + d.FastWear + d.CrossStore
	return d, nil
}

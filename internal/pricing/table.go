package pricing

import (
	_ "embed"
	"fmt"

	"snowrent/internal/commons"
	"snowrent/internal/domain"
)

// RateCount is the length of every rate list: five day tiers plus the
// per-extra-day rate.
const RateCount = 6

//go:embed default_table.yaml
var defaultTable []byte

// Rates is indexed by TierIndex; the last entry is charged per day past five.
type Rates []int

type ClassTable struct {
	Tiers           map[domain.BoardTier]map[domain.Bundle]Rates `yaml:"tiers" json:"tiers"`
	Boots           Rates                                        `yaml:"boots" json:"boots"`
	OuterwearSet    Rates                                        `yaml:"outerwear_set" json:"outerwearSet"`
	OuterwearSingle Rates                                        `yaml:"outerwear_single" json:"outerwearSingle"`
}

// Table is the full rental price list. It is read-only once loaded.
type Table struct {
	Adult               ClassTable `yaml:"adult" json:"adult"`
	Child               ClassTable `yaml:"child" json:"child"`
	Helmet              Rates      `yaml:"helmet" json:"helmet"`
	FastWear            Rates      `yaml:"fast_wear" json:"fastWear"`
	CrossStoreSurcharge int        `yaml:"cross_store_surcharge" json:"crossStoreSurcharge"`
}

// Default returns the built-in price list.
func Default() (*Table, error) {
	var t Table
	if err := commons.DecodeYAML(defaultTable, &t); err != nil {
		return nil, fmt.Errorf("parsing built-in price table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads a price list from path, or returns Default when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}

	var t Table
	if err := commons.LoadYAMLFile(path, &t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("price table %s: %w", path, err)
	}
	return &t, nil
}

func (t *Table) Class(c domain.CustomerClass) *ClassTable {
	if c == domain.ClassChild {
		return &t.Child
	}
	return &t.Adult
}

// Main returns the rates for a tier and bundle, or false if the class has none.
func (ct *ClassTable) Main(tier domain.BoardTier, bundle domain.Bundle) (Rates, bool) {
	bundles, ok := ct.Tiers[tier]
	if !ok {
		return nil, false
	}
	r, ok := bundles[bundle]
	return r, ok
}

func (t *Table) Validate() error {
	if t.CrossStoreSurcharge < 0 {
		return fmt.Errorf("cross_store_surcharge must not be negative")
	}
	if err := t.Helmet.validate("helmet"); err != nil {
		return err
	}
	if err := t.FastWear.validate("fast_wear"); err != nil {
		return err
	}
	for _, c := range []domain.CustomerClass{domain.ClassAdult, domain.ClassChild} {
		if err := t.Class(c).validate(string(c)); err != nil {
			return err
		}
	}
	return nil
}

func (ct *ClassTable) validate(class string) error {
	if _, ok := ct.Tiers[domain.TierStandard]; !ok {
		return fmt.Errorf("%s: standard tier is required", class)
	}
	for tier, bundles := range ct.Tiers {
		for bundle, r := range bundles {
			if err := r.validate(fmt.Sprintf("%s.%s.%s", class, tier, bundle)); err != nil {
				return err
			}
		}
	}
	for name, r := range map[string]Rates{
		"boots":            ct.Boots,
		"outerwear_set":    ct.OuterwearSet,
		"outerwear_single": ct.OuterwearSingle,
	} {
		if err := r.validate(class + "." + name); err != nil {
			return err
		}
	}
	return nil
}

func (r Rates) validate(name string) error {
	if len(r) != RateCount {
		return fmt.Errorf("%s: expected %d rates, got %d", name, RateCount, len(r))
	}
	for _, v := range r {
		if v < 0 {
			return fmt.Errorf("%s: negative rate %d", name, v)
		}
	}
	return nil
}

// Charge is the price for a stay resolved by TierIndex.
func (r Rates) Charge(idx, extraDays int) int {
	return r[idx] + extraDays*r[RateCount-1]
}

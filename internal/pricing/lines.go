package pricing

import (
	"fmt"

	"snowrent/internal/domain"
)

// Line is one row of the review page breakdown.
type Line struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

var tierLabels = map[domain.BoardTier]string{
	domain.TierStandard: "Standard",
	domain.TierAdvanced: "Advanced",
	domain.TierPowder:   "Powder",
}

var bundleLabels = map[domain.Bundle]string{
	domain.BundleFullSet:    "full set",
	domain.BundleBoardBoots: "board and boots",
	domain.BundleBoardOnly:  "board only",
}

var outerwearLabels = map[domain.Outerwear]string{
	domain.OuterwearJacket:  "Jacket",
	domain.OuterwearPants:   "Pants",
	domain.OuterwearFullSet: "Jacket and pants",
}

// Lines lists the non-zero charges of d with readable labels.
func Lines(d domain.QuoteDetail, p domain.RentalPerson, days int) []Line {
	p = p.Normalize()
	var lines []Line

	add := func(label string, amount int) {
		if amount > 0 {
			lines = append(lines, Line{Label: label, Amount: amount})
		}
	}

	add(fmt.Sprintf("%s %s, %s", tierLabels[p.BoardTier], bundleLabels[p.Bundle], dayLabel(days)), d.Main)
	add(fmt.Sprintf("Boots, %s", dayLabel(days)), d.Boots)
	if label, ok := outerwearLabels[p.Outerwear]; ok {
		add(fmt.Sprintf("%s, %s", label, dayLabel(days)), d.Outerwear)
	}
	add(fmt.Sprintf("Helmet, %s", dayLabel(days)), d.Helmet)
	add(fmt.Sprintf("Fast-wear bindings, %s", dayLabel(days)), d.FastWear)
	add("Return to another store", d.CrossStore)

	return lines
}

func dayLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

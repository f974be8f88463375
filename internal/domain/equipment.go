package domain

import "time"

const (
	CategorySki       = "ski"
	CategorySnowboard = "snowboard"
	CategoryBoots     = "boots"
	CategoryHelmet    = "helmet"
	CategoryClothing  = "clothing"
)

const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

type Equipment struct {
	ID                int
	Name              string
	Category          string
	Size              string
	Condition         string
	DailyRate         float64
	TotalQuantity     int
	AvailableQuantity int
	Description       *string
	ImageURL          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (e Equipment) InStock() bool {
	return e.AvailableQuantity > 0
}

func IsValidCategory(c string) bool {
	switch c {
	case CategorySki, CategorySnowboard, CategoryBoots, CategoryHelmet, CategoryClothing:
		return true
	}
	return false
}

// EquipmentFilter narrows a catalog listing; empty fields match everything.
type EquipmentFilter struct {
	Category string
	Size     string
}

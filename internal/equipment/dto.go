package equipment

import "time"

type ListRequest struct {
	Category string
	Size     string
}

type EquipmentDTO struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Size              string    `json:"size"`
	Condition         string    `json:"condition"`
	DailyRate         float64   `json:"daily_rate"`
	TotalQuantity     int       `json:"total_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	Description       *string   `json:"description"`
	ImageURL          *string   `json:"image_url"`
	CreatedAt         time.Time `json:"created_at"`
}

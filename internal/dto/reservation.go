package dto

import "time"

type CreateReservationRequest struct {
	EquipmentID int     `json:"equipment_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Notes       *string `json:"notes"`
}

type CreateReservationResponse struct {
	Message       string  `json:"message"`
	ReservationID uint    `json:"reservation_id"`
	TotalPrice    float64 `json:"total_price"`
}

// ReservationDTO is one row of a user's reservation history.
type ReservationDTO struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	EquipmentID   int       `json:"equipment_id"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	EquipmentName string    `json:"equipment_name"`
	Category      string    `json:"category"`
	Size          string    `json:"size"`
	ImageURL      *string   `json:"image_url"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

package domain

import "time"

// DateLayout is the wire and storage format of every calendar date.
const DateLayout = "2006-01-02"

type Reservation struct {
	ID          uint
	UserID      uint
	EquipmentID int
	StartDate   time.Time
	EndDate     time.Time
	TotalPrice  float64
	Status      string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
)

// IsActive reports whether the reservation still holds a unit of equipment.
func (r Reservation) IsActive() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// ReservationView is a reservation joined with the equipment it books.
type ReservationView struct {
	Reservation
	EquipmentName string
	Category      string
	Size          string
	ImageURL      *string
}

package intake

import (
	"time"

	"snowrent/internal/domain"
	"snowrent/internal/pricing"
)

// PersonQuote is one person's price breakdown with labelled lines for the
// review page.
type PersonQuote struct {
	domain.QuoteDetail
	Lines []pricing.Line `json:"lines"`
}

type QuoteResponse struct {
	Days       int           `json:"days"`
	Total      int           `json:"total"`
	CrossStore bool          `json:"crossStore"`
	Detail     []PersonQuote `json:"detail"`
}

type SubmitResponse struct {
	TraceID   string               `json:"traceId"`
	ID        string               `json:"id"`
	Reference string               `json:"reference"`
	Days      int                  `json:"days"`
	Total     int                  `json:"total"`
	Detail    []domain.QuoteDetail `json:"detail"`
}

// RentalRequestDTO is the public view of a stored request. Contact details
// are left out.
type RentalRequestDTO struct {
	Reference     string       `json:"reference"`
	Status        string       `json:"status"`
	ApplicantName string       `json:"applicantName"`
	StartDate     string       `json:"startDate"`
	EndDate       string       `json:"endDate"`
	RentStore     domain.Store `json:"rentStore"`
	ReturnStore   domain.Store `json:"returnStore"`
	People        int          `json:"people"`
	Days          int          `json:"days"`
	Total         int          `json:"total"`
	CreatedAt     time.Time    `json:"createdAt"`
}

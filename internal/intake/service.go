package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"snowrent/internal/clock"
	"snowrent/internal/domain"
	"snowrent/internal/errors"
	"snowrent/internal/pricing"
	"snowrent/internal/wizard"
)

const (
	referencePrefix  = "SR-"
	referenceLength  = 8
	maxInsertAttempt = 3
	notifyTimeout    = 10 * time.Second
)

// Service accepts rental requests from the reservation form. Everything the
// client sends is re-validated and re-priced here.
type Service struct {
	repo     Repository
	notifier Notifier
	table    *pricing.Table
	clock    clock.Clock
	logger   *zap.Logger
}

func NewService(repo Repository, notifier Notifier, table *pricing.Table, clk clock.Clock, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		table:    table,
		clock:    clk,
		logger:   logger,
	}
}

func (s *Service) PriceTable() *pricing.Table {
	return s.table
}

func (s *Service) Quote(ctx context.Context, sub domain.RentalSubmission) (*QuoteResponse, error) {
	q, err := s.review(sub)
	if err != nil {
		return nil, err
	}

	resp := &QuoteResponse{
		Days:       q.Days,
		Total:      q.Total,
		CrossStore: sub.RentStore != sub.ReturnStore,
		Detail:     make([]PersonQuote, len(q.Detail)),
	}
	for i, d := range q.Detail {
		resp.Detail[i] = PersonQuote{QuoteDetail: d, Lines: pricing.Lines(d, sub.Persons[i], q.Days)}
	}
	return resp, nil
}

func (s *Service) Submit(ctx context.Context, sub domain.RentalSubmission) (*SubmitResponse, error) {
	q, err := s.review(sub)
	if err != nil {
		return nil, err
	}

	if sub.Price != q.Total {
		s.logger.Warn("client price differs from server quote",
			zap.Int("clientPrice", sub.Price),
			zap.Int("serverPrice", q.Total),
		)
	}

	persons := make([]domain.RentalPerson, len(sub.Persons))
	for i, p := range sub.Persons {
		persons[i] = p.Normalize()
	}
	applicant := sub.Applicant
	if applicant.ShuttleMode != domain.ShuttleNeed {
		applicant = applicant.WithShuttleMode(domain.ShuttleNone)
	}

	// dates were checked by review
	start, _ := time.Parse(domain.DateLayout, sub.StartDate)
	end, _ := time.Parse(domain.DateLayout, sub.EndDate)

	req := domain.RentalRequest{
		ID:          uuid.NewString(),
		Applicant:   applicant,
		Persons:     persons,
		StartDate:   start,
		EndDate:     end,
		RentStore:   sub.RentStore,
		ReturnStore: sub.ReturnStore,
		Days:        q.Days,
		TotalPrice:  q.Total,
		Detail:      q.Detail,
		Status:      domain.RentalRequestStatusReceived,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.insert(ctx, &req); err != nil {
		return nil, err
	}

	s.logger.Info("rental request received",
		zap.String("id", req.ID),
		zap.String("reference", req.Reference),
		zap.Int("people", len(req.Persons)),
		zap.Int("total", req.TotalPrice),
	)

	s.notify(ctx, req)

	return &SubmitResponse{
		ID:        req.ID,
		Reference: req.Reference,
		Days:      req.Days,
		Total:     req.TotalPrice,
		Detail:    req.Detail,
	}, nil
}

func (s *Service) Find(ctx context.Context, reference string) (*RentalRequestDTO, error) {
	req, err := s.repo.FindByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to load rental request", err)
	}

	return &RentalRequestDTO{
		Reference:     req.Reference,
		Status:        req.Status,
		ApplicantName: req.Applicant.Name,
		StartDate:     req.StartDate.Format(domain.DateLayout),
		EndDate:       req.EndDate.Format(domain.DateLayout),
		RentStore:     req.RentStore,
		ReturnStore:   req.ReturnStore,
		People:        len(req.Persons),
		Days:          req.Days,
		Total:         req.TotalPrice,
		CreatedAt:     req.CreatedAt,
	}, nil
}

// review runs the form guards and prices the submission. Rejections come
// back as validation errors naming the step that failed.
func (s *Service) review(sub domain.RentalSubmission) (*pricing.Quote, error) {
	q, err := wizard.Review(s.table, sub)
	if err != nil {
		if se, ok := wizard.IsStepError(err); ok {
			return nil, toValidationError(se)
		}
		return nil, errors.NewInternalError("failed to price rental request", err)
	}

	start, _ := time.Parse(domain.DateLayout, sub.StartDate)
	if start.Before(clock.Today(s.clock)) {
		return nil, errors.NewValidationError("start date cannot be earlier than today",
			errors.ValidationDetail{Field: "startDate", Message: "start date is in the past"})
	}

	return q, nil
}

// insert stores req under a fresh reference, drawing again if the reference
// is already taken.
func (s *Service) insert(ctx context.Context, req *domain.RentalRequest) error {
	for attempt := 1; attempt <= maxInsertAttempt; attempt++ {
		req.Reference = newReference()
		err := s.repo.Insert(ctx, *req)
		if err == nil {
			return nil
		}
		if _, ok := errors.IsConflictError(err); !ok {
			s.logger.Error("failed to store rental request", zap.String("id", req.ID), zap.Error(err))
			return errors.NewInternalError("failed to store rental request", err)
		}
		s.logger.Warn("reference collision", zap.String("reference", req.Reference), zap.Int("attempt", attempt))
	}
	return errors.NewInternalError("failed to store rental request", fmt.Errorf("no free reference after %d attempts", maxInsertAttempt))
}

// notify is best effort. The request is already stored.
func (s *Service) notify(ctx context.Context, req domain.RentalRequest) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := s.notifier.RentalRequestReceived(ctx, req); err != nil {
		s.logger.Error("failed to send rental request notification",
			zap.String("reference", req.Reference),
			zap.Error(err),
		)
	}
}

func newReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return referencePrefix + strings.ToUpper(id[:referenceLength])
}

func toValidationError(se *wizard.StepError) *errors.ValidationError {
	switch se.Kind {
	case wizard.KindPersonMissingFields, wizard.KindPricingUnavailable:
		field := "persons"
		if se.PersonIndex > 0 {
			field = fmt.Sprintf("persons[%d]", se.PersonIndex-1)
		}
		if len(se.Missing) == 0 {
			return errors.NewValidationError(se.Error(), errors.ValidationDetail{Field: field, Message: se.Error()})
		}
		details := make([]errors.ValidationDetail, len(se.Missing))
		for i, label := range se.Missing {
			details[i] = errors.ValidationDetail{Field: field, Message: label + " is required"}
		}
		return errors.NewValidationError(se.Error(), details...)
	case wizard.KindIncompleteApplicant:
		details := make([]errors.ValidationDetail, len(se.Missing))
		for i, label := range se.Missing {
			details[i] = errors.ValidationDetail{Field: "applicant", Message: label + " is required"}
		}
		return errors.NewValidationError(se.Error(), details...)
	}
	return errors.NewValidationError(se.Error(), errors.ValidationDetail{Field: "dates", Message: se.Error()})
}

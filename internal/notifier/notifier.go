package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"snowrent/internal/config"
	"snowrent/internal/domain"
)

// Notifier is told about every accepted rental request.
type Notifier interface {
	RentalRequestReceived(ctx context.Context, req domain.RentalRequest) error
}

// Multi fans a request out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) RentalRequestReceived(ctx context.Context, req domain.RentalRequest) error {
	var errs []error
	for _, n := range m {
		if err := n.RentalRequestReceived(ctx, req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) RentalRequestReceived(context.Context, domain.RentalRequest) error { return nil }

// New builds the notifiers that have credentials configured. With none it
// returns Nop.
func New(cfg config.NotificationConfig, logger *zap.Logger) (Notifier, error) {
	var m Multi

	if cfg.DiscordBotToken != "" {
		d, err := NewDiscord(cfg.DiscordBotToken, cfg.DiscordChannelID)
		if err != nil {
			return nil, err
		}
		m = append(m, d)
	} else {
		logger.Info("discord notifications disabled")
	}

	if cfg.SendGridAPIKey != "" {
		m = append(m, NewSendGrid(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName))
	} else {
		logger.Info("email confirmations disabled")
	}

	if len(m) == 0 {
		return Nop{}, nil
	}
	return m, nil
}

var storeNames = map[domain.Store]string{
	domain.StoreFurano:    "Furano",
	domain.StoreAsahikawa: "Asahikawa",
}

func storeName(s domain.Store) string {
	if name, ok := storeNames[s]; ok {
		return name
	}
	return string(s)
}

func formatYen(amount int) string {
	s := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "¥" + b.String()
}

// StaffMessage is the chat message posted for shop staff.
func StaffMessage(req domain.RentalRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**New rental request %s**\n", req.Reference)
	fmt.Fprintf(&b, "**Applicant:** %s (%s %s, %s)\n", req.Applicant.Name, req.Applicant.CountryCode, req.Applicant.Phone, req.Applicant.Email)
	if req.Applicant.Messenger != "" {
		fmt.Fprintf(&b, "**Messenger:** %s %s\n", req.Applicant.Messenger, req.Applicant.MessengerID)
	}
	fmt.Fprintf(&b, "**Hotel:** %s\n", req.Applicant.Hotel)
	fmt.Fprintf(&b, "**Dates:** %s - %s (%d days)\n",
		req.StartDate.Format(domain.DateLayout), req.EndDate.Format(domain.DateLayout), req.Days)
	fmt.Fprintf(&b, "**Pickup:** %s **Return:** %s\n", storeName(req.RentStore), storeName(req.ReturnStore))
	if req.Applicant.ShuttleMode == domain.ShuttleNeed && len(req.Applicant.Shuttle) > 0 {
		legs := make([]string, len(req.Applicant.Shuttle))
		for i, l := range req.Applicant.Shuttle {
			legs[i] = string(l)
		}
		fmt.Fprintf(&b, "**Shuttle:** %s\n", strings.Join(legs, ", "))
	}
	for i, p := range req.Persons {
		subtotal := 0
		if i < len(req.Detail) {
			subtotal = req.Detail[i].Subtotal
		}
		fmt.Fprintf(&b, "%d. %s, %s %s, %s: %s\n", i+1, p.Name, p.BoardTier, p.Bundle, p.Class(), formatYen(subtotal))
	}
	fmt.Fprintf(&b, "**Total:** %s", formatYen(req.TotalPrice))
	return b.String()
}

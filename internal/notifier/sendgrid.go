package notifier

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"snowrent/internal/domain"
)

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGrid mails the applicant a confirmation of what was received.
type SendGrid struct {
	client    mailSender
	fromEmail string
	fromName  string
}

func NewSendGrid(apiKey, fromEmail, fromName string) *SendGrid {
	return &SendGrid{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

var confirmationHTML = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"yen":   formatYen,
	"store": storeName,
	"day":   func(t time.Time) string { return t.Format(domain.DateLayout) },
}).Parse(`<html>
	<body>
		<h2>We received your rental request</h2>
		<p>Hello {{.Applicant.Name}}, your reference is <strong>{{.Reference}}</strong>.</p>
		<p>{{day .StartDate}} to {{day .EndDate}} ({{.Days}} days), pickup at {{store .RentStore}}, return at {{store .ReturnStore}}.</p>
		<ul>
		{{range .Persons}}<li>{{.Name}}</li>
		{{end}}</ul>
		<p>Estimated total: <strong>{{yen .TotalPrice}}</strong></p>
		<p>The shop will contact you to confirm sizes and pickup time.</p>
	</body>
</html>`))

// ConfirmationEmail renders the subject and bodies sent to the applicant.
func ConfirmationEmail(req domain.RentalRequest) (subject, plainText, htmlContent string, err error) {
	subject = fmt.Sprintf("Rental request %s received", req.Reference)
	plainText = fmt.Sprintf(
		"Hello %s,\n\nwe received your rental request %s for %s to %s (%d days).\nPickup: %s, return: %s.\nEstimated total: %s.\n\nThe shop will contact you to confirm sizes and pickup time.\n",
		req.Applicant.Name, req.Reference,
		req.StartDate.Format(domain.DateLayout), req.EndDate.Format(domain.DateLayout), req.Days,
		storeName(req.RentStore), storeName(req.ReturnStore), formatYen(req.TotalPrice),
	)

	var buf bytes.Buffer
	if err := confirmationHTML.Execute(&buf, req); err != nil {
		return "", "", "", fmt.Errorf("rendering confirmation email: %w", err)
	}
	return subject, plainText, buf.String(), nil
}

func (s *SendGrid) RentalRequestReceived(ctx context.Context, req domain.RentalRequest) error {
	if req.Applicant.Email == "" {
		return nil
	}

	subject, plainText, htmlContent, err := ConfirmationEmail(req)
	if err != nil {
		return err
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(req.Applicant.Name, req.Applicant.Email)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

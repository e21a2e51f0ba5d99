package intake

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/oddlzenie/intake/pkg/email"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// NotifierConfig carries the fixed operator recipient and the advertised
// service price quoted in the applicant confirmation.
type NotifierConfig struct {
	OperatorEmail string `env:"RECIPIENT_EMAIL" envDefault:"propertyholdinglimited@gmail.com"` // Internal recipient of submission notifications.
	ServicePrice  string `env:"SERVICE_PRICE" envDefault:"199 €"`                              // Fixed price shown in the confirmation mail.
}

// Notifier formats and sends the two messages every accepted submission
// produces: an operator notification carrying the generated documents, and
// an applicant confirmation without attachments. Sends are fire-and-await;
// there is no queue and no retry.
type Notifier struct {
	sender   email.Sender
	operator string
	price    string
	log      *slog.Logger
	loc      *time.Location
}

// NewNotifier creates a Notifier delivering through the given sender.
func NewNotifier(cfg NotifierConfig, sender email.Sender, log *slog.Logger) *Notifier {
	loc, err := time.LoadLocation("Europe/Bratislava")
	if err != nil {
		loc = time.UTC
	}
	return &Notifier{
		sender:   sender,
		operator: cfg.OperatorEmail,
		price:    cfg.ServicePrice,
		log:      log,
		loc:      loc,
	}
}

type summaryRow struct {
	Label string
	Value string
}

type operatorMailData struct {
	FullName        string
	Rows            []summaryRow
	AttachmentCount int
}

type applicantMailData struct {
	FirstName string
	Price     string
}

// NotifyOperator sends the internal notification with all available
// document attachments. Transport failures wrap ErrDeliveryFailed.
func (n *Notifier) NotifyOperator(ctx context.Context, sub FormSubmission, docs *DocumentSet) error {
	data := operatorMailData{
		FullName:        sub.FullName(),
		Rows:            n.summaryRows(sub),
		AttachmentCount: len(docs.Documents),
	}

	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, "operator.html", data); err != nil {
		return errors.Join(ErrDeliveryFailed, fmt.Errorf("render operator mail: %w", err))
	}

	attachments := make([]email.Attachment, 0, len(docs.Documents))
	for _, doc := range docs.Documents {
		attachments = append(attachments, email.Attachment{
			Filename:    doc.Filename,
			Content:     doc.Content,
			ContentType: "application/pdf",
		})
	}

	err := n.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:      n.operator,
		Subject:     "Nová žiadosť o oddlženie — " + sub.FullName(),
		BodyHTML:    body.String(),
		Tag:         "operator-notification",
		Attachments: attachments,
	})
	if err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}

	n.log.InfoContext(ctx, "operator notified",
		slog.String("applicant", sub.FullName()),
		slog.Int("attachments", len(attachments)))
	return nil
}

// NotifyApplicant sends the confirmation to the submitter's own address.
func (n *Notifier) NotifyApplicant(ctx context.Context, sub FormSubmission) error {
	var body bytes.Buffer
	data := applicantMailData{FirstName: sub.Get("meno"), Price: n.price}
	if err := mailTemplates.ExecuteTemplate(&body, "applicant.html", data); err != nil {
		return errors.Join(ErrDeliveryFailed, fmt.Errorf("render applicant mail: %w", err))
	}

	err := n.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   sub.Email(),
		Subject:  "Žiadosť prijatá — OddlženieOnline.sk",
		BodyHTML: body.String(),
		Tag:      "applicant-confirmation",
	})
	if err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}

	n.log.InfoContext(ctx, "applicant confirmation sent",
		slog.String("applicant", sub.FullName()))
	return nil
}

// summaryRows builds the operator mail table. Optional fields the
// applicant left out render as a dash.
func (n *Notifier) summaryRows(sub FormSubmission) []summaryRow {
	return []summaryRow{
		{Label: "Meno:", Value: sub.FullName()},
		{Label: "Email:", Value: sub.Email()},
		{Label: "Telefón:", Value: orDash(sub.Get("telefon"))},
		{Label: "Rodné číslo:", Value: orDash(sub.Get("rodneCislo"))},
		{Label: "Dátum:", Value: time.Now().In(n.loc).Format("02.01.2006 15:04")},
	}
}

func orDash(v string) string {
	if v == "" {
		return "—"
	}
	return v
}

package email

import (
	"context"
	"fmt"
	"regexp"
)

// Sender represents an interface for sending emails.
type Sender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo      string       `json:"send_to"`               // Email address of the recipient
	Subject     string       `json:"subject"`               // Subject of the email
	BodyHTML    string       `json:"body_html"`             // HTML body of the email
	Tag         string       `json:"tag,omitempty"`         // Optional, for provider-side analytics
	Attachments []Attachment `json:"attachments,omitempty"` // Optional binary attachments
}

// Attachment is a file attached to an outgoing email.
type Attachment struct {
	Filename    string `json:"filename"`
	Content     []byte `json:"-"`
	ContentType string `json:"content_type"`
}

// emailRegex keeps the check deliberately loose: one @, no spaces, a dot in
// the domain. Real validation happens when the provider tries to deliver.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks that the parameters are deliverable.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: recipient %q is not a valid email address", ErrInvalidParams, p.SendTo)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	for i, a := range p.Attachments {
		if a.Filename == "" {
			return fmt.Errorf("%w: attachment %d has no filename", ErrInvalidParams, i)
		}
		if len(a.Content) == 0 {
			return fmt.Errorf("%w: attachment %q is empty", ErrInvalidParams, a.Filename)
		}
	}
	return nil
}

// Package mailer sends the transactional emails of the application.
package mailer

import (
	"context"
	"sync"
	"time"
)

// Mailer defines the interface for sending emails
type Mailer interface {
	SendInvitation(ctx context.Context, msg InvitationMessage) error
}

// InvitationMessage is everything the invitation email needs.
type InvitationMessage struct {
	To              string
	InviterName     string
	PositionName    string
	RegistrationURL string
}

// Template is a text email template. Both fields are text/template sources.
type Template struct {
	Subject string
	Body    string
}

var invitationTemplate = Template{
	Subject: "You have been invited!",
	Body: `Hi,

{{.InviterName}} has invited you to join the team{{if .PositionName}} as {{.PositionName}}{{end}}.

Proceed to {{.RegistrationURL}} to create your account.
`,
}

// Mock records sent emails instead of delivering them. Set Err to make
// every send fail.
type Mock struct {
	mu   sync.Mutex
	Sent []SentEmail
	Err  error
}

// SentEmail represents an email that was sent via Mock
type SentEmail struct {
	To       string
	Template string
	Data     any
	SentAt   time.Time
}

func NewMock() *Mock {
	return &Mock{Sent: make([]SentEmail, 0)}
}

func (m *Mock) SendInvitation(ctx context.Context, msg InvitationMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentEmail{
		To:       msg.To,
		Template: "invitation",
		Data:     msg,
		SentAt:   time.Now(),
	})
	return nil
}

// SentTo returns the emails delivered to the given address.
func (m *Mock) SentTo(address string) []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []SentEmail
	for _, e := range m.Sent {
		if e.To == address {
			out = append(out, e)
		}
	}
	return out
}

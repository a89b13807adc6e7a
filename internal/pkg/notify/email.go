package notify

import (
	"context"

	"github.com/nailbooker/nailbooker/internal/pkg/email"
)

type mailSender interface {
	Send(ctx context.Context, msg *email.EmailMessage) error
}

// EmailChannel mails every message to a fixed operator address.
type EmailChannel struct {
	sender mailSender
	to     string
}

// NewEmailChannel creates an email channel.
func NewEmailChannel(sender mailSender, to string) *EmailChannel {
	return &EmailChannel{sender: sender, to: to}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Send(ctx context.Context, msg Message) error {
	return c.sender.Send(ctx, &email.EmailMessage{
		To:          c.to,
		Subject:     msg.Subject,
		TextContent: msg.Body,
	})
}

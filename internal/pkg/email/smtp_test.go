package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSendBuildsMessage(t *testing.T) {
	d := &fakeDialer{}
	s := newSMTPSender("salon@example.com", d)

	err := s.Send(context.Background(), &EmailMessage{
		To:          "owner@example.com",
		Subject:     "New booking",
		TextContent: "Jane <Doe>",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(d.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(d.sent))
	}
	m := d.sent[0]
	if got := m.GetHeader("To"); len(got) != 1 || got[0] != "owner@example.com" {
		t.Fatalf("unexpected To: %v", got)
	}
	if got := m.GetHeader("From"); got[0] != "salon@example.com" {
		t.Fatalf("unexpected From: %v", got)
	}

	var body strings.Builder
	if _, err := m.WriteTo(&body); err != nil {
		t.Fatalf("write message: %v", err)
	}
	if !strings.Contains(body.String(), "Jane &lt;Doe&gt;") {
		t.Fatal("expected escaped body in html part")
	}
}

func TestSendWrapsDialError(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	s := newSMTPSender("salon@example.com", d)

	err := s.Send(context.Background(), &EmailMessage{To: "owner@example.com", Subject: "x", TextContent: "y"})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected wrapped dial error, got %v", err)
	}
}

func TestSendHonoursCancelledContext(t *testing.T) {
	d := &fakeDialer{}
	s := newSMTPSender("salon@example.com", d)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Send(ctx, &EmailMessage{To: "a@b.c"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(d.sent) != 0 {
		t.Fatal("nothing must be sent after cancellation")
	}
}

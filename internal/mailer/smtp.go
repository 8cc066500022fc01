package mailer

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type SMTPSettings struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// maxInFlightSends caps relay conversations that may outlive their caller's context.
const maxInFlightSends = 8

type SMTPSender struct {
	dialer   dialer
	from     string
	inflight chan struct{}
}

func newSMTPSender(d dialer, from string, maxInFlight int) *SMTPSender {
	return &SMTPSender{dialer: d, from: from, inflight: make(chan struct{}, maxInFlight)}
}

func NewSMTPSender(s SMTPSettings) *SMTPSender {
	port := s.Port
	if port == 0 {
		port = 587
	}
	from := s.From
	if from == "" {
		from = DefaultFrom
	}
	// gomail switches to implicit TLS on port 465 and STARTTLS elsewhere.
	return newSMTPSender(gomail.NewDialer(s.Host, port, s.User, s.Pass), from, maxInFlightSends)
}

func (s *SMTPSender) Mode() string { return ModeSMTP }

// Send dials the relay per message; ctx bounds how long the caller waits.
// gomail has no deadline for the SMTP conversation, so a send abandoned on
// ctx keeps its slot until the relay answers. Once every slot is held, new
// sends wait on ctx instead of dialing.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	select {
	case s.inflight <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}

	done := make(chan error, 1)
	go func() {
		defer func() { <-s.inflight }()
		err := s.dialer.DialAndSend(m)
		if ctx.Err() != nil {
			log.Printf("smtp_send_late to=%s error=%v", maskEmail(to), err)
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

package mailer

import (
	"context"
	"log"
)

// ConsoleSender stands in for SMTP in local development. The notifier logs the useful payload.
type ConsoleSender struct{}

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{}
}

func (ConsoleSender) Mode() string { return ModeConsole }

func (ConsoleSender) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("[DEV-EMAIL] to=%s subject=%q", to, subject)
	return nil
}

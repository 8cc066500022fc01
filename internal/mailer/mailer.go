package mailer

import (
	"context"
	"log"
	"strings"
	"time"

	"svpportal/internal/metrics"
)

const (
	ModeSMTP    = "smtp"
	ModeConsole = "console"

	KindOTP      = "otp"
	KindApproval = "approval"

	DefaultFrom = `"SVP International" <noreply@svp.com>`

	otpSubject      = "Your Verification Code - SVP International"
	approvalSubject = "Application Approved! - SVP International"

	defaultOTPTTL = 10 * time.Minute
)

// Delivery reports what happened to one outbound message. It never aborts the caller.
type Delivery struct {
	Delivered bool
	Mode      string
	Err       error
}

// Sender moves a rendered message to its destination.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
	Mode() string
}

type Notifier struct {
	sender Sender
	otpTTL time.Duration
}

type Option func(*Notifier)

// WithOTPTTL sets the lifetime quoted in the verification email.
func WithOTPTTL(ttl time.Duration) Option {
	return func(n *Notifier) {
		if ttl > 0 {
			n.otpTTL = ttl
		}
	}
}

func New(sender Sender, opts ...Option) *Notifier {
	n := &Notifier{sender: sender, otpTTL: defaultOTPTTL}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewFromSettings picks SMTP when host, user and password are all present, console otherwise.
func NewFromSettings(s SMTPSettings, opts ...Option) *Notifier {
	if s.Host == "" || s.User == "" || s.Pass == "" {
		log.Printf("mailer: SMTP not configured, using console delivery")
		return New(NewConsoleSender(), opts...)
	}
	return New(NewSMTPSender(s), opts...)
}

func (n *Notifier) Mode() string {
	return n.sender.Mode()
}

func (n *Notifier) SendOTP(ctx context.Context, email, code string) Delivery {
	body, err := renderOTP(code, n.otpTTL)
	if err != nil {
		return n.record(KindOTP, email, Delivery{Mode: n.sender.Mode(), Err: err})
	}
	if n.sender.Mode() == ModeConsole {
		log.Printf("[DEV-EMAIL] verification code email=%s code=%s", email, code)
	}
	return n.deliver(ctx, KindOTP, email, otpSubject, body)
}

func (n *Notifier) SendApproval(ctx context.Context, email, name, certificateSerial string) Delivery {
	body, err := renderApproval(name, certificateSerial)
	if err != nil {
		return n.record(KindApproval, email, Delivery{Mode: n.sender.Mode(), Err: err})
	}
	if n.sender.Mode() == ModeConsole {
		log.Printf("[DEV-EMAIL] approval email=%s applicant=%q certificate=%s", email, name, certificateSerial)
	}
	return n.deliver(ctx, KindApproval, email, approvalSubject, body)
}

func (n *Notifier) deliver(ctx context.Context, kind, to, subject, body string) Delivery {
	d := Delivery{Mode: n.sender.Mode()}
	if err := n.sender.Send(ctx, to, subject, body); err != nil {
		d.Err = err
	} else {
		d.Delivered = true
	}
	return n.record(kind, to, d)
}

func (n *Notifier) record(kind, to string, d Delivery) Delivery {
	outcome := metrics.OutcomeDelivered
	if !d.Delivered {
		outcome = metrics.OutcomeFailed
	}
	metrics.NotificationsTotal.WithLabelValues(kind, outcome).Inc()

	if d.Err != nil {
		log.Printf("notify_failed kind=%s email=%s mode=%s error=%q", kind, maskEmail(to), d.Mode, d.Err.Error())
	} else {
		log.Printf("notify kind=%s email=%s delivered=%t mode=%s", kind, maskEmail(to), d.Delivered, d.Mode)
	}
	return d
}

func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return email
	}
	return email[:1] + strings.Repeat("*", at-1) + email[at:]
}

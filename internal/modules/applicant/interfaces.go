package applicant

import (
	"context"
	"time"

	"svpportal/internal/domain"
	"svpportal/internal/events"
	"svpportal/internal/mailer"
	"svpportal/internal/repository"
)

type ApplicantStore interface {
	Create(ctx context.Context, a *domain.Applicant) error
	ExistsByPassportNumber(ctx context.Context, passportNumber string) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.Applicant, error)
	ListAll(ctx context.Context) ([]domain.Applicant, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicantStatus) error
	UpdateVerification(ctx context.Context, id int64, code, status string) error
	UpdateDetails(ctx context.Context, id int64, d repository.ApplicantDetails) (bool, error)
	MarkVerifiedByEmail(ctx context.Context, email string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type OTPStore interface {
	Insert(ctx context.Context, otp *domain.OTPCode) error
	FindValid(ctx context.Context, email, code string, now time.Time) (*domain.OTPCode, error)
}

// CertificateLookup finds the serial quoted in approval emails.
type CertificateLookup interface {
	LatestByPassport(ctx context.Context, passportNumber string) (*domain.Certificate, error)
}

type Notifier interface {
	SendOTP(ctx context.Context, email, code string) mailer.Delivery
	SendApproval(ctx context.Context, email, name, certificateSerial string) mailer.Delivery
}

type EventPublisher interface {
	Publish(event events.Event)
}

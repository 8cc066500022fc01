package applicant

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"svpportal/internal/domain"
	"svpportal/internal/events"
	"svpportal/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultOTPTTL      = 10 * time.Minute
	defaultMailTimeout = 10 * time.Second
)

// Service runs the onboarding flow: signup, email verification and admin review.
type Service struct {
	applicants   ApplicantStore
	otps         OTPStore
	certificates CertificateLookup
	notifier     Notifier
	events       EventPublisher

	otpTTL       time.Duration
	mailTimeout  time.Duration
	generateCode CodeGenerator
	now          func() time.Time
}

type Option func(*Service)

func WithOTPTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.otpTTL = ttl
		}
	}
}

func WithMailTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.mailTimeout = d
		}
	}
}

func WithCodeGenerator(gen CodeGenerator) Option {
	return func(s *Service) { s.generateCode = gen }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(
	applicants ApplicantStore,
	otps OTPStore,
	certificates CertificateLookup,
	notifier Notifier,
	publisher EventPublisher,
	opts ...Option,
) *Service {
	s := &Service{
		applicants:   applicants,
		otps:         otps,
		certificates: certificates,
		notifier:     notifier,
		events:       publisher,
		otpTTL:       defaultOTPTTL,
		mailTimeout:  defaultMailTimeout,
		generateCode: RandomCode,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers an applicant and emails a verification code.
// The store's unique index on passport_number is the final word on duplicates.
func (s *Service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	req = trimCreate(req)
	if err := validateRequest(req); err != nil {
		return 0, err
	}

	passport := req.PassportNumber
	email := strings.ToLower(req.Email)

	exists, err := s.applicants.ExistsByPassportNumber(ctx, passport)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicatePassport
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	if err := s.issueCode(ctx, email); err != nil {
		return 0, err
	}

	a := &domain.Applicant{
		PassportNumber: passport,
		NoFirstName:    req.NoFirstName,
		NoLastName:     req.NoLastName,
		Nationality:    req.Nationality,
		Email:          email,
		Phone:          req.Phone,
		CountryCode:    req.CountryCode,
		PassportImage:  req.PassportImagePath,
		PasswordHash:   string(hash),
		Status:         domain.ApplicantPending,
		IsVerified:     false,
		CurrentStep:    1,
	}
	if !req.NoFirstName {
		a.FirstName = &req.FirstName
	}
	if !req.NoLastName {
		a.LastName = &req.LastName
	}

	if err := s.applicants.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return 0, ErrDuplicatePassport
		}
		return 0, err
	}

	log.Printf("applicant_created applicant_id=%d", a.ID)
	s.publish(events.Event{
		Type:        events.TypeApplicantCreated,
		ApplicantID: a.ID,
		Payload: map[string]any{
			"passport_number": a.PassportNumber,
			"name":            a.DisplayName(),
			"nationality":     a.Nationality,
		},
	})

	return a.ID, nil
}

// VerifyOTP accepts any unexpired code issued to the email. Codes are not consumed.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	req := VerifyOTPRequest{Email: normalizeEmail(email), Code: strings.TrimSpace(code)}
	if err := validateRequest(req); err != nil {
		return err
	}

	email = req.Email
	if _, err := s.otps.FindValid(ctx, email, req.Code, s.now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOrExpiredCode
		}
		return err
	}

	n, err := s.applicants.MarkVerifiedByEmail(ctx, email)
	if err != nil {
		return err
	}

	log.Printf("applicant_verified applicants=%d", n)
	s.publish(events.Event{
		Type:    events.TypeApplicantVerified,
		Payload: map[string]any{"email": email, "applicants": n},
	})
	return nil
}

// ResendOTP issues another code. Earlier codes stay valid until they expire.
func (s *Service) ResendOTP(ctx context.Context, email string) error {
	req := ResendOTPRequest{Email: normalizeEmail(email)}
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.issueCode(ctx, req.Email)
}

func (s *Service) List(ctx context.Context) ([]domain.Applicant, error) {
	return s.applicants.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Applicant, error) {
	a, err := s.applicants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// UpdateStatus applies an admin decision. Approval triggers a best-effort notice.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.ApplicantStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if a.Status.IsTerminal() && a.Status != status {
		return ErrStatusFinal
	}

	if err := s.applicants.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	log.Printf("applicant_status_changed applicant_id=%d from=%s to=%s", id, a.Status, status)
	s.publish(events.Event{
		Type:        events.TypeApplicantStatusChanged,
		ApplicantID: id,
		Payload:     map[string]any{"from": a.Status, "to": status},
	})

	if status == domain.ApplicantApproved && a.Status != domain.ApplicantApproved {
		s.sendApproval(ctx, a)
	}
	return nil
}

func (s *Service) UpdateVerification(ctx context.Context, id int64, code, status string) error {
	return s.applicants.UpdateVerification(ctx, id, strings.TrimSpace(code), strings.TrimSpace(status))
}

// UpdateDetails stores the wizard's partial update. CurrentStep is taken as sent.
func (s *Service) UpdateDetails(ctx context.Context, id int64, req UpdateDetailsRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	ok, err := s.applicants.UpdateDetails(ctx, id, repository.ApplicantDetails{
		OccupationKey:         req.OccupationKey,
		EmployerName:          req.EmployerName,
		WorkExperienceYears:   req.WorkExperienceYears,
		Address:               req.Address,
		City:                  req.City,
		PostalCode:            req.PostalCode,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		CurrentStep:           req.CurrentStep,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.applicants.Delete(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("applicant_deleted applicant_id=%d rows=%d", id, n)
	return nil
}

// issueCode persists a fresh code and then attempts delivery.
func (s *Service) issueCode(ctx context.Context, email string) error {
	code, err := s.generateCode()
	if err != nil {
		return err
	}

	now := s.now().UTC()
	otp := &domain.OTPCode{
		Email:     email,
		Code:      code,
		Expiry:    now.Add(s.otpTTL),
		CreatedAt: now,
	}
	if err := s.otps.Insert(ctx, otp); err != nil {
		return err
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.mailTimeout)
	defer cancel()
	d := s.notifier.SendOTP(nctx, email, code)
	log.Printf("otp_notify otp_id=%d delivered=%t mode=%s", otp.ID, d.Delivered, d.Mode)
	return nil
}

func (s *Service) sendApproval(ctx context.Context, a *domain.Applicant) {
	var serial string
	if s.certificates != nil {
		cert, err := s.certificates.LatestByPassport(ctx, a.PassportNumber)
		switch {
		case err == nil:
			serial = cert.CertificateSerial
		case !errors.Is(err, gorm.ErrRecordNotFound):
			log.Printf("approval_certificate_lookup_failed applicant_id=%d error=%q", a.ID, err.Error())
		}
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.mailTimeout)
	defer cancel()
	d := s.notifier.SendApproval(nctx, a.Email, a.DisplayName(), serial)
	log.Printf("approval_notify applicant_id=%d delivered=%t mode=%s", a.ID, d.Delivered, d.Mode)
}

func (s *Service) publish(e events.Event) {
	if s.events == nil {
		return
	}
	e.At = s.now().UTC()
	s.events.Publish(e)
}

func trimCreate(req CreateRequest) CreateRequest {
	req.PassportNumber = strings.TrimSpace(req.PassportNumber)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Nationality = strings.TrimSpace(req.Nationality)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.CountryCode = strings.TrimSpace(req.CountryCode)
	req.PassportImagePath = strings.TrimSpace(req.PassportImagePath)
	return req
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

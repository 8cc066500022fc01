package certificate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"svpportal/internal/domain"
	"svpportal/internal/pkg/dateutil"
	"svpportal/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("certificate not found")
	ErrDuplicateSerial = errors.New("certificate serial already exists")
	ErrInvalidStatus   = errors.New("invalid certificate status")
	ErrInvalidDate     = errors.New("invalid date")
)

type Repository interface {
	Create(ctx context.Context, c *domain.Certificate) error
	GetByID(ctx context.Context, id int64) (*domain.Certificate, error)
	FindForVerification(ctx context.Context, passportNumber, serial string) (*domain.Certificate, error)
	List(ctx context.Context) ([]domain.Certificate, error)
	Update(ctx context.Context, c *domain.Certificate) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Verify answers the public lookup. A miss is not an error.
func (s *Service) Verify(ctx context.Context, passportNumber, serial string) (*VerifyResponse, error) {
	if strings.TrimSpace(passportNumber) == "" || strings.TrimSpace(serial) == "" {
		return &VerifyResponse{Valid: false, Message: "Certificate not found"}, nil
	}

	cert, err := s.repo.FindForVerification(ctx, passportNumber, serial)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &VerifyResponse{Valid: false, Message: "Certificate not found"}, nil
		}
		return nil, err
	}

	return &VerifyResponse{
		Valid:  true,
		Status: string(cert.EffectiveStatus(s.now())),
		Data: &VerifyData{
			HolderName:        cert.HolderName,
			Occupation:        cert.Occupation,
			CertificateSerial: cert.CertificateSerial,
			PassportNumber:    cert.PassportNumber,
			IssueDate:         dateutil.Format(cert.IssueDate),
			ExpiryDate:        dateutil.Format(cert.ExpiryDate),
		},
	}, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Certificate, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Certificate, error) {
	cert, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return cert, err
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (*domain.Certificate, error) {
	cert, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, cert); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateSerial
		}
		return nil, err
	}
	return cert, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertRequest) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	cert, err := req.toDomain()
	if err != nil {
		return err
	}
	cert.ID = id
	if err := s.repo.Update(ctx, cert); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ErrDuplicateSerial
		}
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (r UpsertRequest) toDomain() (*domain.Certificate, error) {
	issue, err := dateutil.Parse(r.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: issueDate: %v", ErrInvalidDate, err)
	}
	expiry, err := dateutil.Parse(r.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expiryDate: %v", ErrInvalidDate, err)
	}

	status := domain.CertificateStatus(strings.TrimSpace(r.Status))
	if status == "" {
		status = domain.CertificateValid
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	return &domain.Certificate{
		CertificateSerial: strings.TrimSpace(r.CertificateSerial),
		PassportNumber:    strings.TrimSpace(r.PassportNumber),
		HolderName:        strings.TrimSpace(r.HolderName),
		Occupation:        strings.TrimSpace(r.Occupation),
		IssueDate:         issue,
		ExpiryDate:        expiry,
		Status:            status,
	}, nil
}

package repository

import (
	"context"
	"strings"
	"time"

	"svpportal/internal/domain"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(ctx context.Context, c *domain.Certificate) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CertificateRepository) GetByID(ctx context.Context, id int64) (*domain.Certificate, error) {
	var c domain.Certificate
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindForVerification matches both halves of the public lookup.
func (r *CertificateRepository) FindForVerification(ctx context.Context, passportNumber, serial string) (*domain.Certificate, error) {
	var c domain.Certificate
	err := r.db.WithContext(ctx).
		Where("passport_number = ? AND certificate_serial = ?", strings.TrimSpace(passportNumber), strings.TrimSpace(serial)).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LatestByPassport returns the most recently created certificate for a passport.
func (r *CertificateRepository) LatestByPassport(ctx context.Context, passportNumber string) (*domain.Certificate, error) {
	var c domain.Certificate
	err := r.db.WithContext(ctx).
		Where("passport_number = ?", strings.TrimSpace(passportNumber)).
		Order("created_at DESC").
		Order("id DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CertificateRepository) List(ctx context.Context) ([]domain.Certificate, error) {
	certs := make([]domain.Certificate, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) Update(ctx context.Context, c *domain.Certificate) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Certificate{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"certificate_serial": c.CertificateSerial,
			"passport_number":    c.PassportNumber,
			"holder_name":        c.HolderName,
			"occupation":         c.Occupation,
			"issue_date":         c.IssueDate,
			"expiry_date":        c.ExpiryDate,
			"status":             c.Status,
			"updated_at":         time.Now().UTC(),
		}).Error
	return translate(err)
}

func (r *CertificateRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Certificate{}, id).Error
}

package repository

import (
	"context"
	"time"

	"svpportal/internal/domain"

	"gorm.io/gorm"
)

// OTPRepository is append-only on the request path: codes are inserted and
// looked up, never updated. Expired rows are filtered at read time and
// removed only by DeleteExpiredBefore from the cleanup job.
type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Insert(ctx context.Context, otp *domain.OTPCode) error {
	otp.Email = normalizeEmail(otp.Email)
	return r.db.WithContext(ctx).Create(otp).Error
}

// FindValid returns the newest row matching (email, code) whose expiry is
// after now, or gorm.ErrRecordNotFound.
func (r *OTPRepository) FindValid(ctx context.Context, email, code string, now time.Time) (*domain.OTPCode, error) {
	var otp domain.OTPCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND expiry > ?", normalizeEmail(email), code, now).
		Order("created_at DESC").
		Order("id DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expiry < ?", cutoff).
		Delete(&domain.OTPCode{})
	return tx.RowsAffected, tx.Error
}

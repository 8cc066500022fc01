package repository

import (
	"context"
	"strings"
	"time"

	"svpportal/internal/domain"

	"gorm.io/gorm"
)

type ApplicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// ApplicantDetails carries the wizard's step 2 and step 3 fields.
// Nil pointers leave the column untouched.
type ApplicantDetails struct {
	OccupationKey         *string
	EmployerName          *string
	WorkExperienceYears   *int
	Address               *string
	City                  *string
	PostalCode            *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	CurrentStep           *int
}

func (r *ApplicantRepository) Create(ctx context.Context, a *domain.Applicant) error {
	a.Email = normalizeEmail(a.Email)
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *ApplicantRepository) FindByPassportNumber(ctx context.Context, passportNumber string) (*domain.Applicant, error) {
	var a domain.Applicant
	err := r.db.WithContext(ctx).
		Where("passport_number = ?", strings.TrimSpace(passportNumber)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicantRepository) ExistsByPassportNumber(ctx context.Context, passportNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Applicant{}).
		Where("passport_number = ?", strings.TrimSpace(passportNumber)).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicantRepository) FindByID(ctx context.Context, id int64) (*domain.Applicant, error) {
	var a domain.Applicant
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicantRepository) ListAll(ctx context.Context) ([]domain.Applicant, error) {
	applicants := make([]domain.Applicant, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&applicants).Error
	return applicants, err
}

func (r *ApplicantRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicantStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Applicant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *ApplicantRepository) UpdateVerification(ctx context.Context, id int64, code, status string) error {
	var codePtr *string
	if code != "" {
		codePtr = &code
	}
	return r.db.WithContext(ctx).
		Model(&domain.Applicant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"verification_code":   codePtr,
			"verification_status": status,
			"updated_at":          time.Now().UTC(),
		}).Error
}

// UpdateDetails applies a partial wizard update and reports whether a row matched.
func (r *ApplicantRepository) UpdateDetails(ctx context.Context, id int64, d ApplicantDetails) (bool, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	setString("occupation_key", d.OccupationKey)
	setString("employer_name", d.EmployerName)
	setString("address", d.Address)
	setString("city", d.City)
	setString("postal_code", d.PostalCode)
	setString("emergency_contact_name", d.EmergencyContactName)
	setString("emergency_contact_phone", d.EmergencyContactPhone)
	if d.WorkExperienceYears != nil {
		updates["work_experience_years"] = *d.WorkExperienceYears
	}
	if d.CurrentStep != nil {
		updates["current_step"] = *d.CurrentStep
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.Applicant{}).
		Where("id = ?", id).
		Updates(updates)
	return tx.RowsAffected > 0, tx.Error
}

// MarkVerifiedByEmail flips is_verified on every applicant sharing the email.
func (r *ApplicantRepository) MarkVerifiedByEmail(ctx context.Context, email string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Applicant{}).
		Where("email = ?", normalizeEmail(email)).
		Updates(map[string]any{
			"is_verified": true,
			"updated_at":  time.Now().UTC(),
		})
	return tx.RowsAffected, tx.Error
}

func (r *ApplicantRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&domain.Applicant{}, id)
	return tx.RowsAffected, tx.Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

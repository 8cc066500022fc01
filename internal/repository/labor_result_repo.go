package repository

import (
	"context"
	"strings"
	"time"

	"svpportal/internal/domain"

	"gorm.io/gorm"
)

type LaborResultRepository struct {
	db *gorm.DB
}

func NewLaborResultRepository(db *gorm.DB) *LaborResultRepository {
	return &LaborResultRepository{db: db}
}

func (r *LaborResultRepository) Create(ctx context.Context, l *domain.LaborResult) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LaborResultRepository) GetByID(ctx context.Context, id int64) (*domain.LaborResult, error) {
	var l domain.LaborResult
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LaborResultRepository) Check(ctx context.Context, passportNumber, occupationKey, nationalityCode string) (*domain.LaborResult, error) {
	var l domain.LaborResult
	err := r.db.WithContext(ctx).
		Where("passport_number = ? AND occupation_key = ? AND nationality_code = ?",
			strings.TrimSpace(passportNumber), strings.TrimSpace(occupationKey), strings.TrimSpace(nationalityCode)).
		Order("created_at DESC").
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LaborResultRepository) List(ctx context.Context) ([]domain.LaborResult, error) {
	results := make([]domain.LaborResult, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&results).Error
	return results, err
}

func (r *LaborResultRepository) Update(ctx context.Context, l *domain.LaborResult) error {
	return r.db.WithContext(ctx).
		Model(&domain.LaborResult{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"passport_number":  l.PassportNumber,
			"occupation_key":   l.OccupationKey,
			"nationality_code": l.NationalityCode,
			"exam_date":        l.ExamDate,
			"score":            l.Score,
			"result":           l.Result,
			"updated_at":       time.Now().UTC(),
		}).Error
}

func (r *LaborResultRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.LaborResult{}, id).Error
}

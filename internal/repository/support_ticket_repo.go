package repository

import (
	"context"
	"time"

	"svpportal/internal/domain"

	"gorm.io/gorm"
)

type SupportTicketRepository struct {
	db *gorm.DB
}

func NewSupportTicketRepository(db *gorm.DB) *SupportTicketRepository {
	return &SupportTicketRepository{db: db}
}

func (r *SupportTicketRepository) Create(ctx context.Context, t *domain.SupportTicket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *SupportTicketRepository) GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	var t domain.SupportTicket
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SupportTicketRepository) List(ctx context.Context) ([]domain.SupportTicket, error) {
	tickets := make([]domain.SupportTicket, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&tickets).Error
	return tickets, err
}

func (r *SupportTicketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.SupportTicket{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *SupportTicketRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.SupportTicket{}, id).Error
}

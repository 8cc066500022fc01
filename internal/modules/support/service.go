package support

import (
	"context"
	"errors"
	"log"
	"strings"

	"svpportal/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("ticket not found")
	ErrInvalidStatus = errors.New("invalid ticket status")
)

type Repository interface {
	Create(ctx context.Context, t *domain.SupportTicket) error
	GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error)
	List(ctx context.Context) ([]domain.SupportTicket, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*domain.SupportTicket, error) {
	ticket := &domain.SupportTicket{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:     strings.TrimSpace(req.Subject),
		Description: strings.TrimSpace(req.Description),
		Status:      domain.TicketOpen,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	log.Printf("support_ticket_submitted id=%d subject=%q", ticket.ID, ticket.Subject)
	return ticket, nil
}

func (s *Service) List(ctx context.Context) ([]domain.SupportTicket, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return ticket, err
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, raw string) error {
	status := domain.TicketStatus(strings.TrimSpace(raw))
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

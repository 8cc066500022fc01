package user

import (
	"context"
	"errors"
	"strings"

	"svpportal/internal/domain"
	"svpportal/internal/modules/auth"
	"svpportal/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
	ErrInvalidRole   = errors.New("invalid role")
)

type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	users Repository
}

func NewService(users Repository) *Service {
	return &Service{users: users}
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.User, error) {
	role, err := parseRole(req.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) error {
	role, err := parseRole(req.Role)
	if err != nil {
		return err
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	u.Email = req.Email
	u.FirstName = strings.TrimSpace(req.FirstName)
	u.LastName = strings.TrimSpace(req.LastName)
	u.Role = role

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *Service) UpdatePassword(ctx context.Context, id int64, password string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

func parseRole(raw string) (domain.UserRole, error) {
	switch domain.UserRole(strings.ToLower(strings.TrimSpace(raw))) {
	case "", domain.RoleUser:
		return domain.RoleUser, nil
	case domain.RoleAdmin:
		return domain.RoleAdmin, nil
	}
	return "", ErrInvalidRole
}

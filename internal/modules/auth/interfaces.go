package auth

import (
	"context"

	"svpportal/internal/domain"
)

// UserRepositoryInterface lists the user store methods auth needs.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type jwtService interface {
	GenerateToken(userID int64, email, role string) (string, error)
}

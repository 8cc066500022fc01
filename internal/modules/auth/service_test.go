package auth

import (
	"context"
	"errors"
	"testing"

	"svpportal/internal/domain"
	"svpportal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 10
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockJWT struct {
	mock.Mock
}

func (m *mockJWT) GenerateToken(userID int64, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func TestRegister_Success(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockJWT))
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "staff@svp.com").Return(false, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "staff@svp.com" && u.Role == domain.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password1")) == nil
	})).Return(nil)

	user, err := svc.Register(ctx, RegisterRequest{Email: " Staff@SVP.com", Password: "password1", FirstName: "Sara"})

	require.NoError(t, err)
	assert.Equal(t, int64(10), user.ID)
	users.AssertExpectations(t)
}

func TestRegister_Duplicate(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockJWT))
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "staff@svp.com").Return(true, nil)

	_, err := svc.Register(ctx, RegisterRequest{Email: "staff@svp.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_UniqueIndexRace(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockJWT))
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "staff@svp.com").Return(false, nil)
	users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := svc.Register(ctx, RegisterRequest{Email: "staff@svp.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	admin := &domain.User{ID: 1, Email: "admin@svp.com", PasswordHash: hash, Role: domain.RoleAdmin}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(users *mockUserRepo, jwt *mockJWT)
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    "admin@svp.com",
			password: "correct-horse",
			setup: func(users *mockUserRepo, jwt *mockJWT) {
				users.On("GetByEmail", mock.Anything, "admin@svp.com").Return(admin, nil)
				jwt.On("GenerateToken", int64(1), "admin@svp.com", "admin").Return("signed", nil)
			},
		},
		{
			name:     "wrong password",
			email:    "admin@svp.com",
			password: "nope",
			setup: func(users *mockUserRepo, jwt *mockJWT) {
				users.On("GetByEmail", mock.Anything, "admin@svp.com").Return(admin, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@svp.com",
			password: "x",
			setup: func(users *mockUserRepo, jwt *mockJWT) {
				users.On("GetByEmail", mock.Anything, "ghost@svp.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "store failure",
			email:    "admin@svp.com",
			password: "x",
			setup: func(users *mockUserRepo, jwt *mockJWT) {
				users.On("GetByEmail", mock.Anything, "admin@svp.com").Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, jwt := new(mockUserRepo), new(mockJWT)
			tt.setup(users, jwt)

			res, err := NewService(users, jwt).Login(context.Background(), LoginRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "signed", res.Token)
			assert.Equal(t, admin, res.User)
		})
	}
}

func TestMe_NotFound(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(users, new(mockJWT)).Me(context.Background(), 5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

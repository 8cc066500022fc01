package laborresult

import (
	"context"
	"errors"
	"testing"
	"time"

	"svpportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, l *domain.LaborResult) error {
	args := m.Called(ctx, l)
	if args.Error(0) == nil {
		l.ID = 7
	}
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.LaborResult, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.LaborResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Check(ctx context.Context, passportNumber, occupationKey, nationalityCode string) (*domain.LaborResult, error) {
	args := m.Called(ctx, passportNumber, occupationKey, nationalityCode)
	if v := args.Get(0); v != nil {
		return v.(*domain.LaborResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]domain.LaborResult, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LaborResult), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, l *domain.LaborResult) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestCheck_MissingKeySkipsLookup(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	res, err := svc.Check(context.Background(), CheckQuery{PassportNumber: "P1", OccupationKey: "71111"})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, "Labor result not found", res.Message)
	repo.AssertNotCalled(t, "Check", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheck_Found(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	exam := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	score := 88
	repo.On("Check", mock.Anything, "P1", "71111", "PK").Return(&domain.LaborResult{
		PassportNumber: "P1", OccupationKey: "71111", NationalityCode: "PK",
		ExamDate: &exam, Score: &score, Result: "Passed",
	}, nil)

	res, err := svc.Check(context.Background(), CheckQuery{PassportNumber: "P1", OccupationKey: "71111", NationalityCode: "PK"})
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, "2025-06-02", *res.Data.ExamDate)
	assert.Equal(t, 88, *res.Data.Score)
	repo.AssertExpectations(t)
}

func TestCheck_NotFoundAndStoreError(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Check", mock.Anything, "P1", "71111", "PK").Return(nil, gorm.ErrRecordNotFound).Once()
	res, err := svc.Check(context.Background(), CheckQuery{PassportNumber: "P1", OccupationKey: "71111", NationalityCode: "PK"})
	require.NoError(t, err)
	assert.False(t, res.Found)

	repo.On("Check", mock.Anything, "P1", "71111", "PK").Return(nil, errors.New("connection reset")).Once()
	_, err = svc.Check(context.Background(), CheckQuery{PassportNumber: "P1", OccupationKey: "71111", NationalityCode: "PK"})
	assert.EqualError(t, err, "connection reset")
}

func TestCreate_DefaultsResult(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.LaborResult) bool {
		return l.Result == "Passed" && l.ExamDate != nil
	})).Return(nil)

	res, err := svc.Create(context.Background(), UpsertRequest{
		PassportNumber: "P1", OccupationKey: "71111", NationalityCode: "PK", ExamDate: "2025-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.ID)
	repo.AssertExpectations(t)
}

func TestCreate_InvalidDate(t *testing.T) {
	svc := NewService(new(mockRepo))

	_, err := svc.Create(context.Background(), UpsertRequest{ExamDate: "June 2nd"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdate_Missing(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Update(context.Background(), 9, UpsertRequest{PassportNumber: "P1"})
	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

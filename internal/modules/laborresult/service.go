package laborresult

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"svpportal/internal/domain"
	"svpportal/internal/pkg/dateutil"

	"gorm.io/gorm"
)

const defaultResult = "Passed"

var (
	ErrNotFound    = errors.New("labor result not found")
	ErrInvalidDate = errors.New("invalid date")
)

type Repository interface {
	Create(ctx context.Context, l *domain.LaborResult) error
	GetByID(ctx context.Context, id int64) (*domain.LaborResult, error)
	Check(ctx context.Context, passportNumber, occupationKey, nationalityCode string) (*domain.LaborResult, error)
	List(ctx context.Context) ([]domain.LaborResult, error)
	Update(ctx context.Context, l *domain.LaborResult) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Check needs all three keys; any missing key is reported as not found.
func (s *Service) Check(ctx context.Context, q CheckQuery) (*CheckResponse, error) {
	if q.PassportNumber == "" || q.OccupationKey == "" || q.NationalityCode == "" {
		return &CheckResponse{Found: false, Message: "Labor result not found"}, nil
	}

	res, err := s.repo.Check(ctx, q.PassportNumber, q.OccupationKey, q.NationalityCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CheckResponse{Found: false, Message: "Labor result not found"}, nil
		}
		return nil, err
	}

	return &CheckResponse{
		Found: true,
		Data: &CheckData{
			PassportNumber:  res.PassportNumber,
			OccupationKey:   res.OccupationKey,
			NationalityCode: res.NationalityCode,
			ExamDate:        dateutil.Format(res.ExamDate),
			Score:           res.Score,
			Result:          res.Result,
		},
	}, nil
}

func (s *Service) List(ctx context.Context) ([]domain.LaborResult, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.LaborResult, error) {
	res, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return res, err
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (*domain.LaborResult, error) {
	res, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertRequest) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	res, err := req.toDomain()
	if err != nil {
		return err
	}
	res.ID = id
	return s.repo.Update(ctx, res)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (r UpsertRequest) toDomain() (*domain.LaborResult, error) {
	examDate, err := dateutil.Parse(r.ExamDate)
	if err != nil {
		return nil, fmt.Errorf("%w: examDate: %v", ErrInvalidDate, err)
	}

	result := strings.TrimSpace(r.Result)
	if result == "" {
		result = defaultResult
	}

	return &domain.LaborResult{
		PassportNumber:  strings.TrimSpace(r.PassportNumber),
		OccupationKey:   strings.TrimSpace(r.OccupationKey),
		NationalityCode: strings.TrimSpace(r.NationalityCode),
		ExamDate:        examDate,
		Score:           r.Score,
		Result:          result,
	}, nil
}

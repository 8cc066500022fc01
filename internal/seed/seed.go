// Package seed fills a database with an admin account and demo lookup data.
// Development and test use only.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"svpportal/internal/domain"
	"svpportal/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AdminEmail    = "admin@svp.com"
	AdminPassword = "admin123"

	SampleCertificateSerial = "792063687"
	SamplePassport          = "XZ4134442"
)

type Options struct {
	Certificates int
	LaborResults int
	// Seed makes generated data reproducible; zero uses the clock.
	Seed int64
}

type Result struct {
	AdminCreated bool
	Certificates int
	LaborResults int
}

var occupationKeys = []string{"93110", "71111", "72121", "74110", "83322"}
var nationalityCodes = []string{"PK", "IN", "BD", "NP", "LK", "PH", "EG"}

// Factory builds demo rows. It is safe to run repeatedly: the admin account
// and the fixed sample rows are only inserted once.
type Factory struct {
	db    *gorm.DB
	users *repository.UserRepository
	faker *gofakeit.Faker
}

func NewFactory(db *gorm.DB, seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{
		db:    db,
		users: repository.NewUserRepository(db),
		faker: gofakeit.New(seed),
	}
}

func (f *Factory) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	created, err := f.ensureAdmin(ctx)
	if err != nil {
		return nil, err
	}
	res.AdminCreated = created

	if err := f.ensureSamples(ctx); err != nil {
		return nil, err
	}

	for i := 0; i < opts.Certificates; i++ {
		cert := f.Certificate()
		if err := f.db.WithContext(ctx).Create(cert).Error; err != nil {
			return nil, fmt.Errorf("seed certificate: %w", err)
		}
		res.Certificates++
	}
	for i := 0; i < opts.LaborResults; i++ {
		lr := f.LaborResult()
		if err := f.db.WithContext(ctx).Create(lr).Error; err != nil {
			return nil, fmt.Errorf("seed labor result: %w", err)
		}
		res.LaborResults++
	}

	log.Printf("seed completed admin_created=%t certificates=%d labor_results=%d", res.AdminCreated, res.Certificates, res.LaborResults)
	return res, nil
}

func (f *Factory) ensureAdmin(ctx context.Context) (bool, error) {
	exists, err := f.users.ExistsByEmail(ctx, AdminEmail)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := &domain.User{
		Email:        AdminEmail,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "User",
		Role:         domain.RoleAdmin,
	}
	if err := f.users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

func (f *Factory) ensureSamples(ctx context.Context) error {
	issue := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	score := 85

	cert := domain.Certificate{
		CertificateSerial: SampleCertificateSerial,
		PassportNumber:    SamplePassport,
		HolderName:        "John Doe",
		IssueDate:         &issue,
		ExpiryDate:        &expiry,
		Status:            domain.CertificateValid,
	}
	if err := f.db.WithContext(ctx).
		Where(domain.Certificate{CertificateSerial: SampleCertificateSerial}).
		FirstOrCreate(&cert).Error; err != nil {
		return fmt.Errorf("seed sample certificate: %w", err)
	}

	lr := domain.LaborResult{
		PassportNumber:  SamplePassport,
		OccupationKey:   "93110",
		NationalityCode: "PK",
		ExamDate:        &issue,
		Score:           &score,
		Result:          "Passed",
	}
	if err := f.db.WithContext(ctx).
		Where(domain.LaborResult{PassportNumber: SamplePassport}).
		FirstOrCreate(&lr).Error; err != nil {
		return fmt.Errorf("seed sample labor result: %w", err)
	}
	return nil
}

// Certificate returns an unsaved certificate with a random serial.
func (f *Factory) Certificate() *domain.Certificate {
	issue := f.faker.DateRange(time.Now().AddDate(-3, 0, 0), time.Now()).UTC().Truncate(24 * time.Hour)
	expiry := issue.AddDate(2, 0, 0)

	status := domain.CertificateValid
	if f.faker.Number(1, 10) == 1 {
		status = domain.CertificateRevoked
	}

	return &domain.Certificate{
		CertificateSerial: f.faker.Numerify("#########"),
		PassportNumber:    f.passport(),
		HolderName:        f.faker.Name(),
		Occupation:        f.faker.JobTitle(),
		IssueDate:         &issue,
		ExpiryDate:        &expiry,
		Status:            status,
	}
}

// LaborResult returns an unsaved labor result.
func (f *Factory) LaborResult() *domain.LaborResult {
	exam := f.faker.DateRange(time.Now().AddDate(-2, 0, 0), time.Now()).UTC().Truncate(24 * time.Hour)
	score := f.faker.Number(30, 100)
	result := "Passed"
	if score < 60 {
		result = "Failed"
	}

	return &domain.LaborResult{
		PassportNumber:  f.passport(),
		OccupationKey:   f.faker.RandomString(occupationKeys),
		NationalityCode: f.faker.RandomString(nationalityCodes),
		ExamDate:        &exam,
		Score:           &score,
		Result:          result,
	}
}

func (f *Factory) passport() string {
	return strings.ToUpper(f.faker.Lexify("??")) + f.faker.Numerify("#######")
}

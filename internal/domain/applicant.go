package domain

import (
	"strings"
	"time"
)

type ApplicantStatus string

const (
	ApplicantPending   ApplicantStatus = "Pending"
	ApplicantReviewing ApplicantStatus = "Reviewing"
	ApplicantApproved  ApplicantStatus = "Approved"
	ApplicantRejected  ApplicantStatus = "Rejected"
)

func (s ApplicantStatus) Valid() bool {
	switch s {
	case ApplicantPending, ApplicantReviewing, ApplicantApproved, ApplicantRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further workflow transitions are expected.
func (s ApplicantStatus) IsTerminal() bool {
	return s == ApplicantApproved || s == ApplicantRejected
}

// Applicant is a prospective certificate holder going through the
// four-step signup wizard. PassportNumber is the business key.
type Applicant struct {
	ID             int64   `gorm:"column:id;primaryKey" json:"id"`
	PassportNumber string  `gorm:"column:passport_number;size:50;uniqueIndex;not null" json:"passport_number"`
	FirstName      *string `gorm:"column:first_name;size:100" json:"first_name"`
	LastName       *string `gorm:"column:last_name;size:100" json:"last_name"`
	NoFirstName    bool    `gorm:"column:no_first_name;not null;default:false" json:"no_first_name"`
	NoLastName     bool    `gorm:"column:no_last_name;not null;default:false" json:"no_last_name"`
	Nationality    string  `gorm:"column:nationality;size:50" json:"nationality"`
	Email          string  `gorm:"column:email;size:255;index" json:"email"`
	Phone          string  `gorm:"column:phone;size:50" json:"phone"`
	CountryCode    string  `gorm:"column:country_code;size:10" json:"country_code"`
	PassportImage  string  `gorm:"column:passport_image;size:255" json:"passport_image"`

	// Step 2
	OccupationKey       string `gorm:"column:occupation_key;size:50" json:"occupation_key"`
	EmployerName        string `gorm:"column:employer_name;size:255" json:"employer_name"`
	WorkExperienceYears *int   `gorm:"column:work_experience_years" json:"work_experience_years"`

	// Step 3
	Address               string `gorm:"column:address;size:500" json:"address"`
	City                  string `gorm:"column:city;size:100" json:"city"`
	PostalCode            string `gorm:"column:postal_code;size:20" json:"postal_code"`
	EmergencyContactName  string `gorm:"column:emergency_contact_name;size:255" json:"emergency_contact_name"`
	EmergencyContactPhone string `gorm:"column:emergency_contact_phone;size:50" json:"emergency_contact_phone"`

	PasswordHash string `gorm:"column:password_hash;size:255" json:"-"`

	// Step 4
	VerificationCode   *string         `gorm:"column:verification_code;size:20" json:"verification_code"`
	VerificationStatus string          `gorm:"column:verification_status;size:20;default:Pending" json:"verification_status"`
	IsVerified         bool            `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	Status             ApplicantStatus `gorm:"column:status;size:30;default:Pending" json:"status"`
	CurrentStep        int             `gorm:"column:current_step;default:1" json:"current_step"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Applicant) TableName() string { return "applicants" }

// DisplayName joins whichever name parts are present.
func (a *Applicant) DisplayName() string {
	parts := make([]string, 0, 2)
	if a.FirstName != nil && *a.FirstName != "" {
		parts = append(parts, *a.FirstName)
	}
	if a.LastName != nil && *a.LastName != "" {
		parts = append(parts, *a.LastName)
	}
	if len(parts) == 0 {
		return a.PassportNumber
	}
	return strings.Join(parts, " ")
}

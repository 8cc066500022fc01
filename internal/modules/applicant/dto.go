package applicant

// CreateRequest is the first wizard page.
type CreateRequest struct {
	PassportNumber    string `json:"passportNumber" validate:"required"`
	FirstName         string `json:"firstName" validate:"required_unless=NoFirstName true"`
	LastName          string `json:"lastName" validate:"required_unless=NoLastName true"`
	NoFirstName       bool   `json:"noFirstName"`
	NoLastName        bool   `json:"noLastName"`
	Nationality       string `json:"nationality"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone"`
	CountryCode       string `json:"countryCode"`
	PassportImagePath string `json:"passportImagePath"`
	Password          string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateVerificationRequest struct {
	VerificationCode   string `json:"verificationCode"`
	VerificationStatus string `json:"verificationStatus"`
}

// UpdateDetailsRequest carries pages two and three. Absent fields are left unchanged.
type UpdateDetailsRequest struct {
	OccupationKey         *string `json:"occupationKey"`
	EmployerName          *string `json:"employerName"`
	WorkExperienceYears   *int    `json:"workExperienceYears" validate:"omitempty,min=0"`
	Address               *string `json:"address"`
	City                  *string `json:"city"`
	PostalCode            *string `json:"postalCode"`
	EmergencyContactName  *string `json:"emergencyContactName"`
	EmergencyContactPhone *string `json:"emergencyContactPhone"`
	CurrentStep           *int    `json:"currentStep"`
}

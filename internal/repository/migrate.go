package repository

import (
	"svpportal/internal/domain"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the API reads and writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.Applicant{},
		&domain.OTPCode{},
		&domain.Certificate{},
		&domain.LaborResult{},
		&domain.SupportTicket{},
	)
}

package domain

import "time"

type CertificateStatus string

const (
	CertificateValid   CertificateStatus = "Valid"
	CertificateExpired CertificateStatus = "Expired"
	CertificateRevoked CertificateStatus = "Revoked"
)

type Certificate struct {
	ID                int64             `gorm:"column:id;primaryKey" json:"id"`
	CertificateSerial string            `gorm:"column:certificate_serial;size:50;uniqueIndex;not null" json:"certificate_serial"`
	PassportNumber    string            `gorm:"column:passport_number;size:50;not null;index" json:"passport_number"`
	HolderName        string            `gorm:"column:holder_name;size:255" json:"holder_name"`
	Occupation        string            `gorm:"column:occupation;size:255" json:"occupation"`
	IssueDate         *time.Time        `gorm:"column:issue_date" json:"issue_date"`
	ExpiryDate        *time.Time        `gorm:"column:expiry_date" json:"expiry_date"`
	Status            CertificateStatus `gorm:"column:status;size:20;default:Valid" json:"status"`
	CreatedAt         time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (Certificate) TableName() string { return "certificates" }

func (s CertificateStatus) Valid() bool {
	switch s {
	case CertificateValid, CertificateExpired, CertificateRevoked:
		return true
	}
	return false
}

// EffectiveStatus reports Expired for a Valid certificate whose expiry date has passed.
func (c *Certificate) EffectiveStatus(now time.Time) CertificateStatus {
	if c.Status == CertificateValid && c.ExpiryDate != nil && c.ExpiryDate.Before(now) {
		return CertificateExpired
	}
	return c.Status
}

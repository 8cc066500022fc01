package domain

import "time"

// OTPCode is an emailed verification code. Rows are append-only; several
// codes for one email may be live at the same time.
type OTPCode struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;size:255;not null;index:idx_otp_codes_email_code" json:"email"`
	Code      string    `gorm:"column:code;size:10;not null;index:idx_otp_codes_email_code" json:"code"`
	Expiry    time.Time `gorm:"column:expiry;not null;index" json:"expiry"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (OTPCode) TableName() string { return "otp_codes" }

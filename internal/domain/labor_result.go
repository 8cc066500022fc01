package domain

import "time"

type LaborResult struct {
	ID              int64      `gorm:"column:id;primaryKey" json:"id"`
	PassportNumber  string     `gorm:"column:passport_number;size:50;not null;index" json:"passport_number"`
	OccupationKey   string     `gorm:"column:occupation_key;size:50" json:"occupation_key"`
	NationalityCode string     `gorm:"column:nationality_code;size:10" json:"nationality_code"`
	ExamDate        *time.Time `gorm:"column:exam_date" json:"exam_date"`
	Score           *int       `gorm:"column:score" json:"score"`
	Result          string     `gorm:"column:result;size:20;default:Passed" json:"result"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (LaborResult) TableName() string { return "labor_results" }

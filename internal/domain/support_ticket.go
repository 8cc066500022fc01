package domain

import "time"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketInProgress TicketStatus = "In Progress"
	TicketResolved   TicketStatus = "Resolved"
	TicketClosed     TicketStatus = "Closed"
)

type SupportTicket struct {
	ID          int64        `gorm:"column:id;primaryKey" json:"id"`
	Name        string       `gorm:"column:name;size:255" json:"name"`
	Email       string       `gorm:"column:email;size:255" json:"email"`
	Subject     string       `gorm:"column:subject;size:255" json:"subject"`
	Description string       `gorm:"column:description;type:text" json:"description"`
	Status      TicketStatus `gorm:"column:status;size:20;default:Open" json:"status"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

func (SupportTicket) TableName() string { return "support_tickets" }

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

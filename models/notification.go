package models

import "time"

// Notification types emitted by the workflows.
const (
	NotificationSubmission = "submission"
	NotificationWithdrawal = "withdrawal"
	NotificationPurchase   = "purchase"
)

type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ToEmail     string    `gorm:"size:191;index;not null" json:"to_email"`
	FromEmail   string    `gorm:"size:191" json:"from_email,omitempty"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Type        string    `gorm:"size:50;not null" json:"type"`
	ActionRoute string    `gorm:"size:191" json:"action_route,omitempty"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

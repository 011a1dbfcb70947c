package models

import "time"

// Task statuses are derived, never stored: a task with no remaining worker
// slots is "full" and disappears from the open listing, it is not deleted.
const (
	TaskStatusOpen = "open"
	TaskStatusFull = "full"
)

type Task struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	BuyerEmail      string    `gorm:"size:191;index;not null" json:"buyer_email"`
	BuyerName       string    `gorm:"size:100" json:"buyer_name"`
	Title           string    `gorm:"size:191;not null" json:"title"`
	Detail          string    `gorm:"type:text" json:"detail"`
	SubmissionInfo  string    `gorm:"type:text" json:"submission_info"`
	RequiredWorkers int64     `gorm:"not null" json:"required_workers"`
	PayableAmount   float64   `gorm:"type:decimal(15,2);not null" json:"payable_amount"`
	CompletionDate  *time.Time `json:"completion_date,omitempty"`
	ImageURL        *string   `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// Status reports the derived lifecycle state of the task.
func (t *Task) Status() string {
	if t.RequiredWorkers > 0 {
		return TaskStatusOpen
	}
	return TaskStatusFull
}

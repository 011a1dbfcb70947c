package models

import "time"

// Submission and withdrawal statuses share the same state machine:
// pending is the only non-terminal state.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Submission struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TaskID        uint      `gorm:"not null;index" json:"task_id"`
	TaskTitle     string    `gorm:"size:191" json:"task_title"`
	BuyerEmail    string    `gorm:"size:191;index" json:"buyer_email"`
	WorkerEmail   string    `gorm:"size:191;index;not null" json:"worker_email"`
	WorkerName    string    `gorm:"size:100" json:"worker_name"`
	Details       string    `gorm:"type:text" json:"details"`
	PayableAmount float64   `gorm:"type:decimal(15,2);not null" json:"payable_amount"`
	Status        string    `gorm:"type:enum('pending','approved','rejected');not null;default:'pending'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Terminal reports whether the submission can no longer change status.
func (s *Submission) Terminal() bool {
	return StatusTerminal(s.Status)
}

// StatusTerminal reports whether status is one of the terminal states.
func StatusTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// CanTransition reports whether a status change is permitted. Only
// pending->approved and pending->rejected are legal moves.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

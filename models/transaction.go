package models

import "time"

// Transaction types written alongside every balance mutation.
const (
	TxSignupBonus    = "signup_bonus"
	TxTaskReward     = "task_reward"
	TxWithdrawEscrow = "withdraw_escrow"
	TxWithdrawRefund = "withdraw_refund"
	TxPurchase       = "purchase"
)

// Transaction is the append-only record of a single balance change.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserEmail   string    `gorm:"size:191;index;not null" json:"user_email"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Flow        string    `gorm:"type:enum('credit','debit');not null" json:"flow"`
	Type        string    `gorm:"type:varchar(50);not null" json:"type"`
	ReferenceID string    `gorm:"type:varchar(191);not null;index" json:"reference_id"`
	Message     *string   `gorm:"type:text" json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

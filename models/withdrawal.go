package models

import "time"

type Withdrawal struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	WorkerEmail    string    `gorm:"size:191;index;not null" json:"worker_email"`
	WorkerName     string    `gorm:"size:100" json:"worker_name"`
	WithdrawalCoin float64   `gorm:"type:decimal(15,2);not null" json:"withdrawal_coin"`
	WithdrawalCash float64   `gorm:"type:decimal(15,2);not null" json:"withdrawal_cash"`
	PaymentSystem  string    `gorm:"size:50;not null" json:"payment_system"`
	AccountNumber  string    `gorm:"size:100;not null" json:"account_number"`
	ReferenceID    string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"reference_id"`
	Status         string    `gorm:"type:enum('pending','approved','rejected');not null;default:'pending'" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

// Terminal reports whether the request has already been approved or rejected.
func (w *Withdrawal) Terminal() bool {
	return StatusTerminal(w.Status)
}

package models

// Setting is the singleton row of runtime tunables. Defaults cover a fresh
// database; admins adjust the row directly.
type Setting struct {
	ID                int     `gorm:"primaryKey" json:"id"`
	MinWithdrawCoin   float64 `gorm:"type:decimal(15,2);not null;default:200" json:"min_withdraw_coin"`
	MaxWithdrawCoin   float64 `gorm:"type:decimal(15,2);not null;default:100000" json:"max_withdraw_coin"`
	CoinRate          float64 `gorm:"type:decimal(15,2);not null;default:20" json:"coin_rate"` // coins per 1 USD
	BuyerSignupBonus  float64 `gorm:"type:decimal(15,2);not null;default:50" json:"buyer_signup_bonus"`
	WorkerSignupBonus float64 `gorm:"type:decimal(15,2);not null;default:10" json:"worker_signup_bonus"`
	Maintenance       bool    `gorm:"default:false" json:"maintenance"`
}

func (Setting) TableName() string {
	return "settings"
}

package models

import "time"

// Payment tracks a coin-package purchase intent. The charge itself happens in
// the buyer's browser against the external gateway; coins are credited only
// when the client reports back via save-purchase.
type Payment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserEmail    string    `gorm:"size:191;index;not null" json:"user_email"`
	Coins        int64     `gorm:"not null" json:"coins"`
	AmountCents  int64     `gorm:"not null" json:"amount_cents"`
	ClientSecret string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"-"`
	Status       string    `gorm:"type:enum('created','succeeded');not null;default:'created'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// CoinPackage is a purchasable bundle. The list is static configuration, not a
// database table.
type CoinPackage struct {
	Coins       int64 `json:"coins"`
	AmountCents int64 `json:"amount_cents"`
}

var CoinPackages = []CoinPackage{
	{Coins: 10, AmountCents: 100},
	{Coins: 150, AmountCents: 1000},
	{Coins: 500, AmountCents: 2000},
	{Coins: 1000, AmountCents: 3500},
}

// FindCoinPackage returns the package with exactly coins coins.
func FindCoinPackage(coins int64) (CoinPackage, bool) {
	for _, p := range CoinPackages {
		if p.Coins == coins {
			return p, true
		}
	}
	return CoinPackage{}, false
}

package store

import (
	"errors"

	"microjob/models"

	"gorm.io/gorm"
)

// adjustBalance applies coin += delta as a single conditional UPDATE. The
// WHERE clause is the sufficiency check: two racing debits cannot both pass it
// because the database serializes row updates. Credits (delta > 0) always
// satisfy the condition since balances never go negative.
func adjustBalance(tx *gorm.DB, email string, delta float64) error {
	res := tx.Model(&models.User{}).
		Where("email = ? AND coin + ? >= 0", email, delta).
		Update("coin", gorm.Expr("coin + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientBalance
	}
	return nil
}

// recordTransaction appends the ledger row that pairs with a balance change.
// Always called in the same transaction as adjustBalance.
func recordTransaction(tx *gorm.DB, email string, amount float64, flow, txType, refID, message string) error {
	var msg *string
	if message != "" {
		msg = &message
	}
	t := models.Transaction{
		UserEmail:   email,
		Amount:      amount,
		Flow:        flow,
		Type:        txType,
		ReferenceID: refID,
		Message:     msg,
	}
	return tx.Create(&t).Error
}

// loadSetting fetches the singleton settings row, falling back to defaults
// when the table is empty (fresh database before the seed ran).
func loadSetting(tx *gorm.DB) (*models.Setting, error) {
	var s models.Setting
	if err := tx.First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Setting{
				MinWithdrawCoin:   200,
				MaxWithdrawCoin:   100000,
				CoinRate:          20,
				BuyerSignupBonus:  50,
				WorkerSignupBonus: 10,
			}, nil
		}
		return nil, err
	}
	return &s, nil
}

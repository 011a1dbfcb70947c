package store

import (
	"errors"
	"time"

	"microjob/models"
	"microjob/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AccountStore owns user rows and is the sole authority over the coin balance
// invariant: no caller pre-checks and re-applies, they call AdjustBalance and
// react to its failure.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// UpsertOnLogin returns the account for email, creating it on first login.
// Existing accounts only get their last-login timestamp refreshed; the signup
// bonus is a one-time grant, never reapplied. Returns true when the account
// was created.
func (s *AccountStore) UpsertOnLogin(email, name, role string) (*models.User, bool, error) {
	if role == "" {
		role = models.RoleWorker
	}
	var user models.User
	created := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).First(&user).Error; err == nil {
			updates := map[string]interface{}{"last_login_at": time.Now()}
			if name != "" && name != user.Name {
				updates["name"] = name
			}
			return tx.Model(&user).Updates(updates).Error
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		setting, err := loadSetting(tx)
		if err != nil {
			return err
		}
		bonus := setting.WorkerSignupBonus
		if role == models.RoleBuyer {
			bonus = setting.BuyerSignupBonus
		}
		user = models.User{
			Name:        name,
			Email:       email,
			Role:        role,
			Coin:        bonus,
			LastLoginAt: time.Now(),
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		created = true
		return recordTransaction(tx, email, bonus, "credit", models.TxSignupBonus,
			utils.GenerateReferenceID(user.ID), "Signup bonus for role "+role)
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		logrus.WithFields(logrus.Fields{
			"email": email,
			"role":  user.Role,
			"coin":  user.Coin,
		}).Info("account created with signup bonus")
	}
	return &user, created, nil
}

// AdjustBalance atomically applies coin += delta and appends the paired ledger
// row. Debits that would go negative fail with ErrInsufficientBalance and
// leave the balance untouched.
func (s *AccountStore) AdjustBalance(email string, delta float64, txType, refID, message string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := adjustBalance(tx, email, delta); err != nil {
			return err
		}
		flow := "credit"
		amount := delta
		if delta < 0 {
			flow = "debit"
			amount = -delta
		}
		if err := recordTransaction(tx, email, amount, flow, txType, refID, message); err != nil {
			return err
		}
		return tx.Where("email = ?", email).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"email":        email,
		"delta":        delta,
		"type":         txType,
		"reference_id": refID,
	}).Info("balance adjusted")
	return &user, nil
}

// Balance returns the current coin balance, 0 for unknown accounts.
func (s *AccountStore) Balance(email string) (float64, error) {
	var user models.User
	if err := s.db.Select("coin").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return user.Coin, nil
}

// ByEmail fetches a single account.
func (s *AccountStore) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns accounts newest-first with the usual page/limit window.
func (s *AccountStore) List(page, limit int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	offset := (page - 1) * limit
	if err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SetRole changes an account's role. Admin only; the signup bonus is not
// re-seeded on role change.
func (s *AccountStore) SetRole(email, role string) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleBuyer && role != models.RoleWorker {
		return nil, ErrInvalidInput
	}
	res := s.db.Model(&models.User{}).Where("email = ?", email).Update("role", role)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.ByEmail(email)
}

// Delete removes an account. Admin only.
func (s *AccountStore) Delete(email string) error {
	res := s.db.Where("email = ?", email).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Transactions returns the account's ledger rows newest-first.
func (s *AccountStore) Transactions(email string, page, limit int) ([]models.Transaction, int64, error) {
	var total int64
	if err := s.db.Model(&models.Transaction{}).Where("user_email = ?", email).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var txs []models.Transaction
	offset := (page - 1) * limit
	if err := s.db.Where("user_email = ?", email).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// TotalCoins sums all user balances (admin stats).
func (s *AccountStore) TotalCoins() (float64, error) {
	var total float64
	err := s.db.Model(&models.User{}).Select("COALESCE(SUM(coin), 0)").Scan(&total).Error
	return total, err
}

// Count returns the number of accounts, optionally filtered by role.
func (s *AccountStore) Count(role string) (int64, error) {
	q := s.db.Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

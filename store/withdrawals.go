package store

import (
	"errors"
	"fmt"
	"math"

	"microjob/models"
	"microjob/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WithdrawalStore runs the payout state machine. Coins are escrowed (debited)
// when the request is created, not when an admin approves it; a rejection
// refunds exactly the escrowed amount, once.
type WithdrawalStore struct {
	db            *gorm.DB
	notifications *NotificationStore
}

func NewWithdrawalStore(db *gorm.DB, notifications *NotificationStore) *WithdrawalStore {
	return &WithdrawalStore{db: db, notifications: notifications}
}

// Request escrows coin from the worker's balance and records a pending
// withdrawal in one transaction. If the debit fails no request row is created.
func (s *WithdrawalStore) Request(workerEmail, workerName string, coin, cash float64, paymentSystem, accountNumber string) (*models.Withdrawal, error) {
	setting, err := loadSetting(s.db)
	if err != nil {
		return nil, err
	}
	if coin < setting.MinWithdrawCoin {
		return nil, fmt.Errorf("%w: minimum withdrawal is %.0f coins", ErrInvalidInput, setting.MinWithdrawCoin)
	}
	if coin > setting.MaxWithdrawCoin {
		return nil, fmt.Errorf("%w: maximum withdrawal is %.0f coins", ErrInvalidInput, setting.MaxWithdrawCoin)
	}
	// The client sends both amounts; verify they agree with the configured
	// rate instead of trusting the conversion.
	if setting.CoinRate > 0 && math.Abs(cash-coin/setting.CoinRate) > 0.01 {
		return nil, fmt.Errorf("%w: cash amount does not match coin rate", ErrInvalidInput)
	}

	var wd models.Withdrawal
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := adjustBalance(tx, workerEmail, -coin); err != nil {
			return err
		}
		wd = models.Withdrawal{
			WorkerEmail:    workerEmail,
			WorkerName:     workerName,
			WithdrawalCoin: coin,
			WithdrawalCash: cash,
			PaymentSystem:  paymentSystem,
			AccountNumber:  accountNumber,
			ReferenceID:    utils.GenerateReferenceID(0),
			Status:         models.StatusPending,
		}
		if err := tx.Create(&wd).Error; err != nil {
			return err
		}
		return recordTransaction(tx, workerEmail, coin, "debit", models.TxWithdrawEscrow,
			wd.ReferenceID, fmt.Sprintf("Withdrawal escrow via %s", paymentSystem))
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"withdrawal_id": wd.ID,
		"worker":        workerEmail,
		"coin":          coin,
		"reference_id":  wd.ReferenceID,
	}).Info("withdrawal requested, coins escrowed")
	return &wd, nil
}

// Approve marks a pending request approved. The coins were already escrowed at
// request time, so there is no further balance change.
func (s *WithdrawalStore) Approve(id uint, adminEmail string) (*models.Withdrawal, error) {
	var wd models.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wd, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if wd.Status != models.StatusPending {
			return ErrAlreadyProcessed
		}
		return tx.Model(&wd).Update("status", models.StatusApproved).Error
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"withdrawal_id": wd.ID,
		"worker":        wd.WorkerEmail,
		"coin":          wd.WithdrawalCoin,
	}).Info("withdrawal approved")
	s.notify(&models.Notification{
		ToEmail:   wd.WorkerEmail,
		FromEmail: adminEmail,
		Message: fmt.Sprintf("Your withdrawal of %.0f coins ($%.2f via %s) was approved",
			wd.WithdrawalCoin, wd.WithdrawalCash, wd.PaymentSystem),
		Type:        models.NotificationWithdrawal,
		ActionRoute: fmt.Sprintf("/withdrawals/%d", wd.ID),
	})
	return &wd, nil
}

// Reject marks a pending request rejected and refunds the escrow in the same
// transaction. The terminal-state check guarantees the refund is credited at
// most once.
func (s *WithdrawalStore) Reject(id uint, adminEmail string) (*models.Withdrawal, error) {
	var wd models.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wd, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if wd.Status != models.StatusPending {
			return ErrAlreadyProcessed
		}
		if err := tx.Model(&wd).Update("status", models.StatusRejected).Error; err != nil {
			return err
		}
		if err := adjustBalance(tx, wd.WorkerEmail, wd.WithdrawalCoin); err != nil {
			return err
		}
		return recordTransaction(tx, wd.WorkerEmail, wd.WithdrawalCoin, "credit",
			models.TxWithdrawRefund, wd.ReferenceID, "Withdrawal rejected, escrow refunded")
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"withdrawal_id": wd.ID,
		"worker":        wd.WorkerEmail,
		"coin":          wd.WithdrawalCoin,
	}).Info("withdrawal rejected, escrow refunded")
	s.notify(&models.Notification{
		ToEmail:   wd.WorkerEmail,
		FromEmail: adminEmail,
		Message: fmt.Sprintf("Your withdrawal of %.0f coins was rejected, coins refunded",
			wd.WithdrawalCoin),
		Type:        models.NotificationWithdrawal,
		ActionRoute: fmt.Sprintf("/withdrawals/%d", wd.ID),
	})
	return &wd, nil
}

// ByWorker lists a worker's withdrawal requests newest-first.
func (s *WithdrawalStore) ByWorker(email string, page, limit int) ([]models.Withdrawal, int64, error) {
	var total int64
	if err := s.db.Model(&models.Withdrawal{}).Where("worker_email = ?", email).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var wds []models.Withdrawal
	offset := (page - 1) * limit
	if err := s.db.Where("worker_email = ?", email).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&wds).Error; err != nil {
		return nil, 0, err
	}
	return wds, total, nil
}

// List returns withdrawals for the admin view, optionally filtered by status.
func (s *WithdrawalStore) List(status string, page, limit int) ([]models.Withdrawal, int64, error) {
	q := s.db.Model(&models.Withdrawal{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var wds []models.Withdrawal
	offset := (page - 1) * limit
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&wds).Error; err != nil {
		return nil, 0, err
	}
	return wds, total, nil
}

// PendingEscrowTotal sums coins held in pending withdrawals (admin stats and
// the conservation check: user balances + pending escrow is invariant under
// the workflows).
func (s *WithdrawalStore) PendingEscrowTotal() (float64, error) {
	var total float64
	err := s.db.Model(&models.Withdrawal{}).
		Where("status = ?", models.StatusPending).
		Select("COALESCE(SUM(withdrawal_coin), 0)").Scan(&total).Error
	return total, err
}

func (s *WithdrawalStore) notify(n *models.Notification) {
	if err := s.notifications.Record(n); err != nil {
		logrus.WithError(err).Warn("withdrawal notification dropped")
	}
}

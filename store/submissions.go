package store

import (
	"errors"
	"fmt"

	"microjob/models"
	"microjob/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionStore runs the submission state machine. Every state-changing
// operation is one database transaction; notifications go out after commit and
// never roll a transition back.
type SubmissionStore struct {
	db            *gorm.DB
	notifications *NotificationStore
}

func NewSubmissionStore(db *gorm.DB, notifications *NotificationStore) *SubmissionStore {
	return &SubmissionStore{db: db, notifications: notifications}
}

// Submit consumes one task slot and records a pending submission with the
// payable amount snapshotted from the task at this instant. If the slot
// decrement fails nothing is recorded.
func (s *SubmissionStore) Submit(taskID uint, workerEmail, workerName, details string) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if task.BuyerEmail == workerEmail {
			return ErrForbidden
		}
		if err := decrementSlot(tx, task.ID); err != nil {
			return err
		}
		sub = models.Submission{
			TaskID:        task.ID,
			TaskTitle:     task.Title,
			BuyerEmail:    task.BuyerEmail,
			WorkerEmail:   workerEmail,
			WorkerName:    workerName,
			Details:       details,
			PayableAmount: task.PayableAmount,
			Status:        models.StatusPending,
		}
		return tx.Create(&sub).Error
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"task_id":       sub.TaskID,
		"worker":        sub.WorkerEmail,
		"payable":       sub.PayableAmount,
	}).Info("submission created")
	s.notify(&models.Notification{
		ToEmail:     sub.BuyerEmail,
		FromEmail:   sub.WorkerEmail,
		Message:     fmt.Sprintf("%s submitted work for your task %q", sub.WorkerName, sub.TaskTitle),
		Type:        models.NotificationSubmission,
		ActionRoute: fmt.Sprintf("/submissions/%d", sub.ID),
	})
	return &sub, nil
}

// Approve flips a pending submission to approved and credits the worker in the
// same transaction: the worker is never marked paid without being paid, nor
// paid without being marked approved. Ownership is re-validated against the
// current task row, not trusted from submission time.
func (s *SubmissionStore) Approve(submissionID uint, callerEmail string) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sub, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sub.Status != models.StatusPending {
			return ErrAlreadyProcessed
		}
		if err := s.requireTaskOwner(tx, sub.TaskID, callerEmail); err != nil {
			return err
		}
		if err := tx.Model(&sub).Update("status", models.StatusApproved).Error; err != nil {
			return err
		}
		if err := adjustBalance(tx, sub.WorkerEmail, sub.PayableAmount); err != nil {
			return err
		}
		return recordTransaction(tx, sub.WorkerEmail, sub.PayableAmount, "credit",
			models.TxTaskReward, utils.GenerateReferenceID(sub.ID),
			fmt.Sprintf("Reward for task %q", sub.TaskTitle))
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"worker":        sub.WorkerEmail,
		"payable":       sub.PayableAmount,
	}).Info("submission approved, worker credited")
	s.notify(&models.Notification{
		ToEmail:     sub.WorkerEmail,
		FromEmail:   callerEmail,
		Message:     fmt.Sprintf("Your submission for %q was approved, %.2f coins credited", sub.TaskTitle, sub.PayableAmount),
		Type:        models.NotificationSubmission,
		ActionRoute: fmt.Sprintf("/submissions/%d", sub.ID),
	})
	return &sub, nil
}

// Reject flips a pending submission to rejected and returns the consumed slot
// to the task. The worker was never credited, so no balance change.
func (s *SubmissionStore) Reject(submissionID uint, callerEmail string) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sub, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sub.Status != models.StatusPending {
			return ErrAlreadyProcessed
		}
		if err := s.requireTaskOwner(tx, sub.TaskID, callerEmail); err != nil {
			return err
		}
		if err := tx.Model(&sub).Update("status", models.StatusRejected).Error; err != nil {
			return err
		}
		return incrementSlot(tx, sub.TaskID)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"task_id":       sub.TaskID,
		"worker":        sub.WorkerEmail,
	}).Info("submission rejected, slot returned")
	s.notify(&models.Notification{
		ToEmail:     sub.WorkerEmail,
		FromEmail:   callerEmail,
		Message:     fmt.Sprintf("Your submission for %q was rejected", sub.TaskTitle),
		Type:        models.NotificationSubmission,
		ActionRoute: fmt.Sprintf("/submissions/%d", sub.ID),
	})
	return &sub, nil
}

func (s *SubmissionStore) requireTaskOwner(tx *gorm.DB, taskID uint, callerEmail string) error {
	var task models.Task
	if err := tx.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if task.BuyerEmail != callerEmail {
		return ErrForbidden
	}
	return nil
}

func (s *SubmissionStore) ByID(id uint) (*models.Submission, error) {
	var sub models.Submission
	if err := s.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// ByWorker lists a worker's own submissions newest-first.
func (s *SubmissionStore) ByWorker(email string, page, limit int) ([]models.Submission, int64, error) {
	var total int64
	if err := s.db.Model(&models.Submission{}).Where("worker_email = ?", email).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var subs []models.Submission
	offset := (page - 1) * limit
	if err := s.db.Where("worker_email = ?", email).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// PendingForBuyer lists pending submissions across all of a buyer's tasks.
func (s *SubmissionStore) PendingForBuyer(email string) ([]models.Submission, error) {
	var subs []models.Submission
	if err := s.db.Where("buyer_email = ? AND status = ?", email, models.StatusPending).
		Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ByTask lists every submission for one task; only the owning buyer may look.
func (s *SubmissionStore) ByTask(taskID uint, callerEmail string, isAdmin bool) ([]models.Submission, error) {
	if !isAdmin {
		if err := s.requireTaskOwner(s.db, taskID, callerEmail); err != nil {
			return nil, err
		}
	}
	var subs []models.Submission
	if err := s.db.Where("task_id = ?", taskID).Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// notify records a workflow notification best-effort. Failures are logged and
// swallowed so they never convert a committed transition into an error.
func (s *SubmissionStore) notify(n *models.Notification) {
	if err := s.notifications.Record(n); err != nil {
		logrus.WithError(err).Warn("submission notification dropped")
	}
}

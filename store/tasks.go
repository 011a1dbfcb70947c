package store

import (
	"errors"
	"time"

	"microjob/models"

	"gorm.io/gorm"
)

type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) Create(task *models.Task) error {
	return s.db.Create(task).Error
}

func (s *TaskStore) ByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListOpen returns tasks that still have worker slots, newest first. A task
// whose required_workers hit zero stays in the table but drops out of this
// listing.
func (s *TaskStore) ListOpen() ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Where("required_workers > 0").Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskStore) ListByBuyer(email string) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Where("buyer_email = ?", email).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAll returns every task for the admin view.
func (s *TaskStore) ListAll(page, limit int) ([]models.Task, int64, error) {
	var total int64
	if err := s.db.Model(&models.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var tasks []models.Task
	offset := (page - 1) * limit
	if err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// TaskUpdate carries the buyer-editable fields. Reward and slot counts are
// ledger-bearing and cannot be edited after posting.
type TaskUpdate struct {
	Title          string
	Detail         string
	SubmissionInfo string
	CompletionDate *time.Time
}

func (s *TaskStore) Update(id uint, callerEmail string, isAdmin bool, upd TaskUpdate) (*models.Task, error) {
	task, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && task.BuyerEmail != callerEmail {
		return nil, ErrForbidden
	}
	updates := map[string]interface{}{}
	if upd.Title != "" {
		updates["title"] = upd.Title
	}
	if upd.Detail != "" {
		updates["detail"] = upd.Detail
	}
	if upd.SubmissionInfo != "" {
		updates["submission_info"] = upd.SubmissionInfo
	}
	if upd.CompletionDate != nil {
		updates["completion_date"] = upd.CompletionDate
	}
	if len(updates) == 0 {
		return task, nil
	}
	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskStore) SetImageURL(id uint, callerEmail string, isAdmin bool, url string) (*models.Task, error) {
	task, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && task.BuyerEmail != callerEmail {
		return nil, ErrForbidden
	}
	if err := s.db.Model(task).Update("image_url", url).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskStore) Delete(id uint, callerEmail string, isAdmin bool) error {
	task, err := s.ByID(id)
	if err != nil {
		return err
	}
	if !isAdmin && task.BuyerEmail != callerEmail {
		return ErrForbidden
	}
	return s.db.Delete(task).Error
}

// decrementSlot consumes one worker slot. The conditional UPDATE never takes
// required_workers below zero: two workers racing for the last slot resolve to
// exactly one winner.
func decrementSlot(tx *gorm.DB, id uint) error {
	res := tx.Model(&models.Task{}).
		Where("id = ? AND required_workers > 0", id).
		Update("required_workers", gorm.Expr("required_workers - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNoSlotsAvailable
	}
	return nil
}

// incrementSlot returns a slot consumed by a rejected submission. No upper
// bound: a reject can only give back what its paired submit took.
func incrementSlot(tx *gorm.DB, id uint) error {
	res := tx.Model(&models.Task{}).
		Where("id = ?", id).
		Update("required_workers", gorm.Expr("required_workers + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"errors"

	"microjob/models"

	"gorm.io/gorm"
)

// NotificationStore is a passive, append-only sink for workflow outcomes.
type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Record appends a notification. Callers treat failures as best-effort.
func (s *NotificationStore) Record(n *models.Notification) error {
	return s.db.Create(n).Error
}

// ListFor returns a user's notifications newest-first.
func (s *NotificationStore) ListFor(email string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []models.Notification
	if err := s.db.Where("to_email = ?", email).
		Order("created_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationStore) UnreadCount(email string) (int64, error) {
	var n int64
	err := s.db.Model(&models.Notification{}).
		Where("to_email = ? AND is_read = ?", email, false).Count(&n).Error
	return n, err
}

// MarkRead flips the read flag. Only the recipient may do so.
func (s *NotificationStore) MarkRead(id uint, requesterEmail string) error {
	var n models.Notification
	if err := s.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if n.ToEmail != requesterEmail {
		return ErrForbidden
	}
	if n.IsRead {
		return nil
	}
	return s.db.Model(&n).Update("is_read", true).Error
}

package service

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"healthcare-backend/internal/auth"
	"healthcare-backend/internal/models"
)

// NotificationService reads and flips the is_read flag on notification
// rows. Rows are created by the appointment workflow, never here.
type NotificationService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewNotificationService(db *gorm.DB, logger *logrus.Logger) *NotificationService {
	return &NotificationService{db: db, logger: logger}
}

// NotificationList groups unread and recently read notifications.
type NotificationList struct {
	Unread []models.Notification `json:"unread"`
	Read   []models.Notification `json:"read"`
}

// List returns all unread notifications plus the 20 most recent read
// ones, newest first.
func (s *NotificationService) List(principal auth.Principal) (*NotificationList, error) {
	list := &NotificationList{
		Unread: []models.Notification{},
		Read:   []models.Notification{},
	}
	err := s.db.Where("user_id = ? AND is_read = ?", principal.UserID, false).
		Order("created_at desc").Find(&list.Unread).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Where("user_id = ? AND is_read = ?", principal.UserID, true).
		Order("created_at desc").Limit(20).Find(&list.Read).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UnreadCount returns the number of unread notifications for the caller.
func (s *NotificationService) UnreadCount(principal auth.Principal) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", principal.UserID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips one notification to read, owner-only.
func (s *NotificationService) MarkRead(principal auth.Principal, notificationID uint) error {
	var notification models.Notification
	if err := s.db.First(&notification, notificationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("notification %d: %w", notificationID, ErrNotFound)
		}
		return err
	}
	if notification.UserID != principal.UserID {
		return fmt.Errorf("notification %d does not belong to user: %w", notificationID, ErrNotAuthorized)
	}

	notification.IsRead = true
	if err := s.db.Save(&notification).Error; err != nil {
		s.logger.WithFields(logrus.Fields{
			"function":       "MarkRead",
			"notificationId": notificationID,
			"error":          err,
		}).Error("Failed to mark notification read")
		return err
	}
	return nil
}

// RecentForUser returns the user's latest notifications for the dashboard.
func (s *NotificationService) RecentForUser(userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&notifications).Error
	return notifications, err
}

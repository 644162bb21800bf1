package persistent

import (
	"campus-market/internal/entity"
	"campus-market/pkg/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *entity.Notification) (*entity.Notification, error)
	ListForUser(userID string, limit, offset int) ([]*entity.Notification, int64, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) (int64, error)
	CountUnread(userID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *entity.Notification) (*entity.Notification, error) {
	notificationModel := &models.Notification{
		ID:      notification.ID,
		UserID:  notification.UserID,
		Type:    notification.Type,
		Title:   notification.Title,
		Message: notification.Message,
		Data:    notification.Data,
	}
	if err := r.db.Create(notificationModel).Error; err != nil {
		return nil, err
	}
	return ToNotificationEntity(notificationModel), nil
}

func (r *notificationRepository) ListForUser(userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	var total int64
	if err := r.db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var notificationModels []models.Notification
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]*entity.Notification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = ToNotificationEntity(&notificationModels[i])
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(id, userID string) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(userID string) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campus-market/internal/entity"
	"campus-market/internal/repo/persistent"
	"campus-market/pkg/logger"
	"campus-market/pkg/queue"

	"github.com/redis/go-redis/v9"
)

type NotificationUseCase interface {
	SendNotification(userID, title, message, notificationType string, data map[string]interface{}) (*entity.Notification, error)
	GetNotifications(userID string, limit, offset int) ([]*entity.Notification, int64, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) (int64, error)
	CountUnread(userID string) (int64, error)
	HandleNotificationTask(task *queue.Task) error
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	redisClient      *redis.Client
	logger           *logger.Logger
}

func NewNotificationUseCase(notificationRepo persistent.NotificationRepository, redisClient *redis.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
		logger:           logger,
	}
}

func (uc *notificationUseCase) SendNotification(userID, title, message, notificationType string, data map[string]interface{}) (*entity.Notification, error) {
	notification := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notificationType,
		Data:    data,
	}

	created, err := uc.notificationRepo.Create(notification)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	// Realtime push is best effort; the persisted record is the source of truth
	if err := uc.publishToRedis(created); err != nil {
		uc.logger.Warn("Failed to publish notification to redis for user %s: %v", userID, err)
	}

	return created, nil
}

func (uc *notificationUseCase) GetNotifications(userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	notifications, total, err := uc.notificationRepo.ListForUser(userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, total, nil
}

func (uc *notificationUseCase) MarkRead(id, userID string) error {
	if err := uc.notificationRepo.MarkRead(id, userID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (uc *notificationUseCase) MarkAllRead(userID string) (int64, error) {
	count, err := uc.notificationRepo.MarkAllRead(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return count, nil
}

func (uc *notificationUseCase) CountUnread(userID string) (int64, error) {
	count, err := uc.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// HandleNotificationTask processes one fanout task from the queue.
func (uc *notificationUseCase) HandleNotificationTask(task *queue.Task) error {
	if task.UserID == "" || task.Type == "" {
		return fmt.Errorf("invalid task: missing user_id or type")
	}

	_, err := uc.SendNotification(task.UserID, task.Title, task.Message, task.Type, task.Data)
	return err
}

func (uc *notificationUseCase) publishToRedis(notification *entity.Notification) error {
	if uc.redisClient == nil {
		return nil
	}

	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx := context.Background()
	userNotificationsKey := fmt.Sprintf("notifications:%s", notification.UserID)
	if err := uc.redisClient.LPush(ctx, userNotificationsKey, notificationJSON).Err(); err != nil {
		return fmt.Errorf("failed to LPush notification to redis: %w", err)
	}
	uc.redisClient.LTrim(ctx, userNotificationsKey, 0, 99)
	uc.redisClient.Expire(ctx, userNotificationsKey, 30*24*time.Hour)

	if err := uc.redisClient.Publish(ctx, userNotificationsKey, notificationJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to redis channel: %w", err)
	}

	return nil
}

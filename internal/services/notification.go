package services

import (
	"context"
	"fmt"
	"yuepai/internal/models"

	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// List 最近 50 条通知
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).Preload("Actor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("查询通知失败: %w", err)
	}
	return notifications, nil
}

// MarkRead 标记为已读，返回是否找到该通知
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return false, fmt.Errorf("标记通知失败: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

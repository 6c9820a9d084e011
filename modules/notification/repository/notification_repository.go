package repository

import (
	"context"

	"meetwise/core/database"
	"meetwise/core/logger"
	"meetwise/modules/notification/entity"

	"github.com/google/uuid"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	DB database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// NotificationRepositoryInterface defines the repository contract
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, body)
		VALUES ($1, $2, $3, $4)
	`

	err := r.DB.ExecContext(ctx, query,
		notification.UserID, notification.Type, notification.Title, notification.Body)
	if err != nil {
		logger.Error("NotificationRepository:Create", err)
		return err
	}

	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Notification, error) {
	query := `
		SELECT id, user_id, type, title, body, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var notifications []entity.Notification
	err := r.DB.SelectContext(ctx, &notifications, query, userID, limit)
	if err != nil {
		logger.Error("NotificationRepository:ListByUser", err)
		return nil, err
	}

	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`
	err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		logger.Error("NotificationRepository:MarkRead", err)
		return err
	}
	return nil
}

package service

import (
	"context"

	"meetwise/core/errors"
	"meetwise/modules/notification/dto"
	"meetwise/modules/notification/entity"
	"meetwise/modules/notification/repository"

	"github.com/google/uuid"
)

const defaultListLimit = 50

// NotificationService handles in-app notification records
type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

type NotificationServiceInterface interface {
	CreateForUsers(ctx context.Context, userIDs []uuid.UUID, notifType entity.NotificationType, title, body string) error
	ListMyNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, *errors.AppError)
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID uuid.UUID) *errors.AppError
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) NotificationServiceInterface {
	return &NotificationService{repo: repo}
}

// CreateForUsers writes one notification row per user. A failure for one
// user does not stop the rest; the first error is reported after the loop.
func (s *NotificationService) CreateForUsers(ctx context.Context, userIDs []uuid.UUID, notifType entity.NotificationType, title, body string) error {
	var firstErr error
	for _, userID := range userIDs {
		err := s.repo.Create(ctx, &entity.Notification{
			UserID: userID,
			Type:   notifType,
			Title:  title,
			Body:   body,
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *NotificationService) ListMyNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, *errors.AppError) {
	notifications, err := s.repo.ListByUser(ctx, userID, defaultListLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list notifications", err)
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, *dto.ToNotificationResponse(&notifications[i]))
	}
	return result, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID uuid.UUID, notificationID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkRead(ctx, notificationID, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to mark notification read", err)
	}
	return nil
}

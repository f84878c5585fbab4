package service

import (
	"context"
	"encoding/json"
	"log"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"
	"mockmatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type NotificationService struct {
	notifRepo repository.NotificationRepository
	rdb       *redis.Client
	queueName string
}

func NewNotificationService(notifRepo repository.NotificationRepository, rdb *redis.Client, queueName string) *NotificationService {
	return &NotificationService{notifRepo: notifRepo, rdb: rdb, queueName: queueName}
}

// Enqueue pushes a notification event onto the Redis list consumed by the
// notification worker. Each event gets a fresh ID so the worker can
// deduplicate redeliveries.
func (s *NotificationService) Enqueue(ctx context.Context, event model.NotificationEvent) error {
	event.EventID = uuid.NewString()
	payload, err := json.Marshal(event)
	if err != nil {
		return common.Errorf("failed to marshal notification event: %w", err)
	}
	if err := s.rdb.LPush(ctx, s.queueName, payload).Err(); err != nil {
		return common.Errorf("failed to push notification event to Redis queue: %w", err)
	}
	log.Printf("Notification event %s (%s) enqueued for user %d.", event.EventID, event.Kind, event.RecipientID)
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID int64) ([]model.Notification, error) {
	return s.notifRepo.ListForUser(ctx, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

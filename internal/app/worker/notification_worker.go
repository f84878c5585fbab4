package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"mockmatch/internal/domain/model"
	"mockmatch/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// NotificationWorker drains the notification event queue and persists rows
// for recipients to read. Delivery is at-least-once from Redis; a short-lived
// SETNX marker on the event ID keeps retried events from producing duplicate
// rows.
type NotificationWorker struct {
	rdb       *redis.Client
	notifRepo repository.NotificationRepository
	queueName string
}

const eventDedupTTL = 24 * time.Hour

func NewNotificationWorker(rdb *redis.Client, notifRepo repository.NotificationRepository, queueName string) *NotificationWorker {
	return &NotificationWorker{rdb: rdb, notifRepo: notifRepo, queueName: queueName}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	log.Println("Notification worker started, listening to queue:", w.queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Notification worker stopping...")
			return
		default:
			// Blocking pop from Redis queue
			result, err := w.rdb.BRPop(ctx, 0*time.Second, w.queueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Printf("Worker BRPop exiting or timed out: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", w.queueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// result is an array: [queueName, value]
			if len(result) < 2 || result[1] == "" {
				log.Println("WARN: BRPop returned empty payload.")
				continue
			}
			w.handleEvent(ctx, result[1])
		}
	}
}

func (w *NotificationWorker) handleEvent(ctx context.Context, payload string) {
	var event model.NotificationEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Printf("ERROR: Failed to decode notification event, dropping: %v", err)
		return
	}

	if event.EventID != "" {
		ok, err := w.rdb.SetNX(ctx, "notification_event:"+event.EventID, 1, eventDedupTTL).Result()
		if err != nil {
			log.Printf("ERROR: Dedup check failed for event %s: %v", event.EventID, err)
			// Fall through and deliver; a duplicate beats a lost notification.
		} else if !ok {
			log.Printf("INFO: Event %s already delivered, skipping.", event.EventID)
			return
		}
	}

	notification := &model.Notification{
		UserID:    event.RecipientID,
		Kind:      event.Kind,
		ActorID:   event.ActorID,
		SubjectID: event.SubjectID,
		Message:   messageFor(event),
	}
	if err := w.notifRepo.Create(ctx, notification); err != nil {
		log.Printf("ERROR: Failed to persist notification for event %s: %v", event.EventID, err)
		// Clear the dedup marker so the retried event is not skipped.
		if event.EventID != "" {
			w.rdb.Del(ctx, "notification_event:"+event.EventID)
		}
		w.requeueEvent(ctx, payload)
		return
	}
	log.Printf("Notification %d delivered to user %d (event %s).", notification.ID, notification.UserID, event.EventID)
}

func (w *NotificationWorker) requeueEvent(ctx context.Context, payload string) {
	if err := w.rdb.RPush(ctx, w.queueName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to re-queue notification event: %v", err)
	} else {
		log.Println("INFO: Notification event re-queued.")
	}
}

func messageFor(event model.NotificationEvent) string {
	switch event.Kind {
	case model.NotificationMatchRequest:
		return fmt.Sprintf("%s sent you a match request", event.ActorName)
	case model.NotificationInterviewRequest:
		return fmt.Sprintf("%s invited you to a mock interview", event.ActorName)
	default:
		return fmt.Sprintf("New activity from %s", event.ActorName)
	}
}

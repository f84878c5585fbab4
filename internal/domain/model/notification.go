package model

import "time"

type NotificationKind string

const (
	NotificationMatchRequest     NotificationKind = "match_request"
	NotificationInterviewRequest NotificationKind = "interview_request"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"` // recipient
	Kind      NotificationKind `json:"kind"`
	ActorID   int64            `json:"actor_id"`
	SubjectID int64            `json:"subject_id"` // match request or interview ID
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationEvent is the queue payload services push to Redis; the
// notification worker turns events into persisted rows. EventID deduplicates
// deliveries.
type NotificationEvent struct {
	EventID     string           `json:"event_id"`
	Kind        NotificationKind `json:"kind"`
	ActorID     int64            `json:"actor_id"`
	ActorName   string           `json:"actor_name"`
	RecipientID int64            `json:"recipient_id"`
	SubjectID   int64            `json:"subject_id"`
}

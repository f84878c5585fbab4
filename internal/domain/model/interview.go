package model

import "time"

type InterviewStatus string

const (
	InterviewStatusPending   InterviewStatus = "pending"
	InterviewStatusConfirmed InterviewStatus = "confirmed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
	InterviewStatusCompleted InterviewStatus = "completed"
)

type Interview struct {
	ID            int64           `json:"id"`
	InterviewerID int64           `json:"interviewer_id"`
	IntervieweeID int64           `json:"interviewee_id"`
	Type          string          `json:"type"`
	ScheduledTime time.Time       `json:"scheduled_time"`
	Status        InterviewStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

package model

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

// MatchRequest records one user asking another for a mock-interview pairing.
// The score is computed once, when the request is created.
type MatchRequest struct {
	ID         int64       `json:"id"`
	UserID1    int64       `json:"user_id_1"` // requester
	UserID2    int64       `json:"user_id_2"` // recipient
	MatchScore int         `json:"match_score"`
	Status     MatchStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/matching"
	"mockmatch/internal/domain/model"
	"mockmatch/internal/domain/repository"
)

// Notifier delivers asynchronous notification events. Satisfied by
// NotificationService; tests substitute a fake.
type Notifier interface {
	Enqueue(ctx context.Context, event model.NotificationEvent) error
}

type MatchService struct {
	userRepo  repository.UserRepository
	matchRepo repository.MatchRepository
	notifier  Notifier
}

func NewMatchService(userRepo repository.UserRepository, matchRepo repository.MatchRepository, notifier Notifier) *MatchService {
	return &MatchService{userRepo: userRepo, matchRepo: matchRepo, notifier: notifier}
}

// GetRankedMatches scores every other user against the requester and returns
// them sorted by descending score. The requester is excluded here, before the
// scorer ever sees the pair.
func (s *MatchService) GetRankedMatches(ctx context.Context, requesterID int64) ([]matching.Candidate, error) {
	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	others, err := s.userRepo.ListOthers(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	for i := range others {
		others[i].HashedPassword = ""
	}

	return matching.Rank(requester, others)
}

type CreateMatchRequestResponse struct {
	Request *model.MatchRequest `json:"request"`
	Message string              `json:"message"`
}

// CreateRequest asks another user for a pairing. An existing pending or
// accepted request between the pair is reported as-is; a rejected one is
// re-opened to pending instead of creating a duplicate row.
func (s *MatchService) CreateRequest(ctx context.Context, requesterID, targetID int64) (*CreateMatchRequestResponse, error) {
	if targetID == 0 {
		return nil, fmt.Errorf("target user ID is required: %w", common.ErrBadRequest)
	}
	if targetID == requesterID {
		return nil, fmt.Errorf("cannot request a match with yourself: %w", common.ErrBadRequest)
	}

	existing, err := s.matchRepo.FindBetween(ctx, requesterID, targetID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case model.MatchStatusPending:
			return &CreateMatchRequestResponse{Request: existing, Message: "match request already pending"}, nil
		case model.MatchStatusAccepted:
			return &CreateMatchRequestResponse{Request: existing, Message: "already matched"}, nil
		case model.MatchStatusRejected:
			if err := s.matchRepo.UpdateStatus(ctx, existing.ID, model.MatchStatusPending); err != nil {
				return nil, err
			}
			existing.Status = model.MatchStatusPending
			return &CreateMatchRequestResponse{Request: existing, Message: "match request sent"}, nil
		}
	}

	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("target user does not exist: %w", common.ErrNotFound)
		}
		return nil, err
	}

	score, err := matching.Score(requester, target)
	if err != nil {
		return nil, fmt.Errorf("failed to score pair: %w", err)
	}

	req := &model.MatchRequest{
		UserID1:    requesterID,
		UserID2:    targetID,
		MatchScore: score,
		Status:     model.MatchStatusPending,
	}
	if err := s.matchRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, model.NotificationMatchRequest, requester, targetID, req.ID)

	return &CreateMatchRequestResponse{Request: req, Message: "match request sent"}, nil
}

func (s *MatchService) ListRequests(ctx context.Context, userID int64) ([]model.MatchRequest, error) {
	return s.matchRepo.ListForUser(ctx, userID)
}

// Respond lets the recipient accept or reject a pending request.
func (s *MatchService) Respond(ctx context.Context, callerID, requestID int64, accept bool) (*model.MatchRequest, error) {
	req, err := s.matchRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.UserID2 != callerID {
		return nil, fmt.Errorf("only the recipient may respond: %w", common.ErrForbidden)
	}
	if req.Status != model.MatchStatusPending {
		return nil, fmt.Errorf("request is not pending: %w", common.ErrConflict)
	}

	status := model.MatchStatusRejected
	if accept {
		status = model.MatchStatusAccepted
	}
	if err := s.matchRepo.UpdateStatus(ctx, req.ID, status); err != nil {
		return nil, err
	}
	req.Status = status
	return req, nil
}

func (s *MatchService) notify(ctx context.Context, kind model.NotificationKind, actor *model.User, recipientID, subjectID int64) {
	event := model.NotificationEvent{
		Kind:        kind,
		ActorID:     actor.ID,
		ActorName:   actor.DisplayName(),
		RecipientID: recipientID,
		SubjectID:   subjectID,
	}
	// Notification delivery is best-effort; the request itself succeeded.
	if err := s.notifier.Enqueue(ctx, event); err != nil {
		log.Printf("WARN: failed to enqueue %s notification: %v", kind, err)
	}
}

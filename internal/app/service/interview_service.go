package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"
	"mockmatch/internal/domain/repository"
)

type InterviewService struct {
	userRepo      repository.UserRepository
	interviewRepo repository.InterviewRepository
	notifier      Notifier
}

func NewInterviewService(userRepo repository.UserRepository, interviewRepo repository.InterviewRepository, notifier Notifier) *InterviewService {
	return &InterviewService{userRepo: userRepo, interviewRepo: interviewRepo, notifier: notifier}
}

type ScheduleInterviewRequest struct {
	IntervieweeID int64     `json:"intervieweeId"`
	Type          string    `json:"type"`
	ScheduledTime time.Time `json:"scheduledTime"`
}

func (s *InterviewService) Schedule(ctx context.Context, interviewerID int64, req ScheduleInterviewRequest) (*model.Interview, error) {
	if req.IntervieweeID == 0 {
		return nil, fmt.Errorf("interviewee is required: %w", common.ErrBadRequest)
	}
	if req.IntervieweeID == interviewerID {
		return nil, fmt.Errorf("cannot schedule an interview with yourself: %w", common.ErrBadRequest)
	}
	if req.ScheduledTime.IsZero() {
		return nil, fmt.Errorf("scheduled time is required: %w", common.ErrBadRequest)
	}

	interviewer, err := s.userRepo.FindByID(ctx, interviewerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, req.IntervieweeID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("interviewee does not exist: %w", common.ErrNotFound)
		}
		return nil, err
	}

	interviewType := req.Type
	if interviewType == "" {
		interviewType = "mock-interview"
	}

	iv := &model.Interview{
		InterviewerID: interviewerID,
		IntervieweeID: req.IntervieweeID,
		Type:          interviewType,
		ScheduledTime: req.ScheduledTime,
		Status:        model.InterviewStatusPending,
	}
	if err := s.interviewRepo.Create(ctx, iv); err != nil {
		return nil, err
	}

	event := model.NotificationEvent{
		Kind:        model.NotificationInterviewRequest,
		ActorID:     interviewer.ID,
		ActorName:   interviewer.DisplayName(),
		RecipientID: req.IntervieweeID,
		SubjectID:   iv.ID,
	}
	if err := s.notifier.Enqueue(ctx, event); err != nil {
		log.Printf("WARN: failed to enqueue interview notification: %v", err)
	}

	return iv, nil
}

func (s *InterviewService) List(ctx context.Context, userID int64) ([]model.Interview, error) {
	return s.interviewRepo.ListForUser(ctx, userID)
}

// UpdateStatus lets either participant move the interview along its
// lifecycle. Completed and cancelled are terminal.
func (s *InterviewService) UpdateStatus(ctx context.Context, callerID, interviewID int64, status model.InterviewStatus) (*model.Interview, error) {
	switch status {
	case model.InterviewStatusConfirmed, model.InterviewStatusCancelled, model.InterviewStatusCompleted:
	default:
		return nil, fmt.Errorf("unknown interview status %q: %w", status, common.ErrValidation)
	}

	iv, err := s.interviewRepo.FindByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if iv.InterviewerID != callerID && iv.IntervieweeID != callerID {
		return nil, fmt.Errorf("not a participant of this interview: %w", common.ErrForbidden)
	}
	if iv.Status == model.InterviewStatusCancelled || iv.Status == model.InterviewStatusCompleted {
		return nil, fmt.Errorf("interview is already %s: %w", iv.Status, common.ErrConflict)
	}

	if err := s.interviewRepo.UpdateStatus(ctx, iv.ID, status); err != nil {
		return nil, err
	}
	iv.Status = status
	return iv, nil
}

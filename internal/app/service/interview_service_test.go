package service

import (
	"context"
	"testing"
	"time"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleInterview_Success(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewInterviewService(newFakeUserRepo(matchUsers()...), newFakeInterviewRepo(), notifier)

	when := time.Now().Add(48 * time.Hour)
	iv, err := svc.Schedule(context.Background(), 1, ScheduleInterviewRequest{
		IntervieweeID: 2,
		ScheduledTime: when,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), iv.InterviewerID)
	assert.Equal(t, int64(2), iv.IntervieweeID)
	assert.Equal(t, "mock-interview", iv.Type, "type defaults when omitted")
	assert.Equal(t, model.InterviewStatusPending, iv.Status)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, model.NotificationInterviewRequest, notifier.events[0].Kind)
	assert.Equal(t, int64(2), notifier.events[0].RecipientID)
}

func TestScheduleInterview_Validation(t *testing.T) {
	svc := NewInterviewService(newFakeUserRepo(matchUsers()...), newFakeInterviewRepo(), &fakeNotifier{})
	when := time.Now().Add(time.Hour)

	_, err := svc.Schedule(context.Background(), 1, ScheduleInterviewRequest{IntervieweeID: 1, ScheduledTime: when})
	assert.ErrorIs(t, err, common.ErrBadRequest)

	_, err = svc.Schedule(context.Background(), 1, ScheduleInterviewRequest{IntervieweeID: 2})
	assert.ErrorIs(t, err, common.ErrBadRequest)

	_, err = svc.Schedule(context.Background(), 1, ScheduleInterviewRequest{IntervieweeID: 999, ScheduledTime: when})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateInterviewStatus_ParticipantsOnly(t *testing.T) {
	repo := newFakeInterviewRepo()
	svc := NewInterviewService(newFakeUserRepo(matchUsers()...), repo, &fakeNotifier{})

	iv, err := svc.Schedule(context.Background(), 1, ScheduleInterviewRequest{
		IntervieweeID: 2,
		ScheduledTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), 3, iv.ID, model.InterviewStatusConfirmed)
	assert.ErrorIs(t, err, common.ErrForbidden)

	updated, err := svc.UpdateStatus(context.Background(), 2, iv.ID, model.InterviewStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewStatusConfirmed, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), 1, iv.ID, model.InterviewStatusCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), 1, iv.ID, model.InterviewStatusConfirmed)
	assert.ErrorIs(t, err, common.ErrConflict, "cancelled is terminal")

	_, err = svc.UpdateStatus(context.Background(), 1, iv.ID, model.InterviewStatus("weird"))
	assert.ErrorIs(t, err, common.ErrValidation)
}

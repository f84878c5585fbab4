package service

import (
	"context"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"
	"mockmatch/internal/domain/repository"
)

// In-memory fakes standing in for the postgres repositories.

type fakeUserRepo struct {
	users  map[int64]model.User
	nextID int64
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]model.User), nextID: 1}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return common.ErrConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) ListOthers(ctx context.Context, excludeID int64) ([]model.User, error) {
	var out []model.User
	// Deterministic order by ID, mirroring the repository's ORDER BY.
	for id := int64(1); id < r.nextID; id++ {
		u, ok := r.users[id]
		if !ok || id == excludeID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, fields repository.ProfileUpdate) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.Nickname = fields.Nickname
	u.ContactInfo = fields.ContactInfo
	u.TargetRole = fields.TargetRole
	u.WorkExperience = fields.WorkExperience
	u.PracticeAreas = fields.PracticeAreas
	u.TargetIndustry = fields.TargetIndustry
	u.TargetCompany = fields.TargetCompany
	u.AvailableTimes = fields.AvailableTimes
	r.users[id] = u
	copied := u
	return &copied, nil
}

type fakeMatchRepo struct {
	matches map[int64]model.MatchRequest
	nextID  int64
}

func newFakeMatchRepo(matches ...model.MatchRequest) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int64]model.MatchRequest), nextID: 1}
	for _, m := range matches {
		r.matches[m.ID] = m
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	return r
}

func (r *fakeMatchRepo) Create(ctx context.Context, req *model.MatchRequest) error {
	req.ID = r.nextID
	r.nextID++
	r.matches[req.ID] = *req
	return nil
}

func (r *fakeMatchRepo) FindByID(ctx context.Context, id int64) (*model.MatchRequest, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := m
	return &copied, nil
}

func (r *fakeMatchRepo) FindBetween(ctx context.Context, userA, userB int64) (*model.MatchRequest, error) {
	for _, m := range r.matches {
		if (m.UserID1 == userA && m.UserID2 == userB) || (m.UserID1 == userB && m.UserID2 == userA) {
			copied := m
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeMatchRepo) ListForUser(ctx context.Context, userID int64) ([]model.MatchRequest, error) {
	var out []model.MatchRequest
	for id := int64(1); id < r.nextID; id++ {
		m, ok := r.matches[id]
		if !ok {
			continue
		}
		if m.UserID1 == userID || m.UserID2 == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateStatus(ctx context.Context, id int64, status model.MatchStatus) error {
	m, ok := r.matches[id]
	if !ok {
		return common.ErrNotFound
	}
	m.Status = status
	r.matches[id] = m
	return nil
}

type fakeNotifier struct {
	events []model.NotificationEvent
}

func (n *fakeNotifier) Enqueue(ctx context.Context, event model.NotificationEvent) error {
	n.events = append(n.events, event)
	return nil
}

type fakeInterviewRepo struct {
	interviews map[int64]model.Interview
	nextID     int64
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: make(map[int64]model.Interview), nextID: 1}
}

func (r *fakeInterviewRepo) Create(ctx context.Context, iv *model.Interview) error {
	iv.ID = r.nextID
	r.nextID++
	r.interviews[iv.ID] = *iv
	return nil
}

func (r *fakeInterviewRepo) FindByID(ctx context.Context, id int64) (*model.Interview, error) {
	iv, ok := r.interviews[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := iv
	return &copied, nil
}

func (r *fakeInterviewRepo) ListForUser(ctx context.Context, userID int64) ([]model.Interview, error) {
	var out []model.Interview
	for id := int64(1); id < r.nextID; id++ {
		iv, ok := r.interviews[id]
		if !ok {
			continue
		}
		if iv.InterviewerID == userID || iv.IntervieweeID == userID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) UpdateStatus(ctx context.Context, id int64, status model.InterviewStatus) error {
	iv, ok := r.interviews[id]
	if !ok {
		return common.ErrNotFound
	}
	iv.Status = status
	r.interviews[id] = iv
	return nil
}

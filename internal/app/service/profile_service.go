package service

import (
	"context"
	"fmt"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"
	"mockmatch/internal/domain/repository"

	"github.com/gosimple/slug"
)

type ProfileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

type UpdateProfileRequest struct {
	Nickname       string                `json:"nickname"`
	ContactInfo    string                `json:"contactInfo"`
	TargetRole     string                `json:"targetRole"`
	WorkExperience string                `json:"workExperience"`
	PracticeAreas  []string              `json:"practiceAreas"`
	TargetIndustry string                `json:"targetIndustry"`
	TargetCompany  string                `json:"targetCompany"`
	AvailableTimes *model.AvailableTimes `json:"availableTimes"`
}

// Update replaces the caller's profile fields. Practice-area tags are
// free-form, so they are normalized to slugs before storage; otherwise
// "Case Study" and "case-study" would never overlap during scoring.
func (s *ProfileService) Update(ctx context.Context, userID int64, req UpdateProfileRequest) (*model.User, error) {
	if !model.ValidExperienceBucket(req.WorkExperience) {
		return nil, fmt.Errorf("unknown work experience value %q: %w", req.WorkExperience, common.ErrValidation)
	}

	fields := repository.ProfileUpdate{
		Nickname:       req.Nickname,
		ContactInfo:    req.ContactInfo,
		TargetRole:     req.TargetRole,
		WorkExperience: req.WorkExperience,
		PracticeAreas:  normalizeAreas(req.PracticeAreas),
		TargetIndustry: req.TargetIndustry,
		TargetCompany:  req.TargetCompany,
		AvailableTimes: req.AvailableTimes,
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func normalizeAreas(areas []string) []string {
	seen := make(map[string]struct{}, len(areas))
	normalized := make([]string, 0, len(areas))
	for _, area := range areas {
		tag := slug.Make(area)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

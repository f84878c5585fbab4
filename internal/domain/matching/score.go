package matching

import (
	"errors"
	"math"
	"sort"

	"mockmatch/internal/domain/model"
)

// ErrInvalidProfile signals a malformed profile handed to the scorer. This is
// a caller bug, not a user error; it must surface, never be swallowed into a
// zero score.
var ErrInvalidProfile = errors.New("invalid profile")

// Score weights. Mutually exclusive cases per field sum to at most 100.
const (
	roleWeight            = 30
	experienceExactWeight = 20
	experienceNearWeight  = 10
	practiceAreasWeight   = 30
	industryWeight        = 10
	companyWeight         = 10

	// Assigned when the requester has filled in none of the matching fields.
	// Several earlier revisions disagreed on this constant (60 vs a 50 floor);
	// 60 with no extra floor is the canonical behavior now.
	noSignalScore = 60
)

// Score computes the 0-100 compatibility between the requesting user's
// profile and a candidate. It is deterministic and pure. Note the asymmetry:
// the no-signal fallback looks only at the requester, so Score(a, b) and
// Score(b, a) can differ.
func Score(self, other *model.User) (int, error) {
	if self == nil || other == nil {
		return 0, ErrInvalidProfile
	}
	if !model.ValidExperienceBucket(self.WorkExperience) || !model.ValidExperienceBucket(other.WorkExperience) {
		return 0, ErrInvalidProfile
	}

	if self.TargetRole == "" && self.WorkExperience == "" && len(self.PracticeAreas) == 0 {
		return noSignalScore, nil
	}

	score := 0.0

	if self.TargetRole != "" && other.TargetRole != "" && self.TargetRole == other.TargetRole {
		score += roleWeight
	}

	if self.WorkExperience != "" && other.WorkExperience != "" {
		switch {
		case self.WorkExperience == other.WorkExperience:
			score += experienceExactWeight
		case adjacentExperience(self.WorkExperience, other.WorkExperience):
			score += experienceNearWeight
		}
	}

	// Skipped entirely unless both sides declared areas; an empty set is
	// "no signal", not a zero-length intersection.
	if len(self.PracticeAreas) > 0 && len(other.PracticeAreas) > 0 {
		common := intersectionSize(self.PracticeAreas, other.PracticeAreas)
		larger := len(self.PracticeAreas)
		if len(other.PracticeAreas) > larger {
			larger = len(other.PracticeAreas)
		}
		score += float64(common) / float64(larger) * practiceAreasWeight
	}

	if self.TargetIndustry != "" && other.TargetIndustry != "" && self.TargetIndustry == other.TargetIndustry {
		score += industryWeight
	}

	if self.TargetCompany != "" && other.TargetCompany != "" && self.TargetCompany == other.TargetCompany {
		score += companyWeight
	}

	rounded := int(math.Round(score))
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 100 {
		rounded = 100
	}
	return rounded, nil
}

func adjacentExperience(a, b string) bool {
	ai, bi := bucketIndex(a), bucketIndex(b)
	if ai < 0 || bi < 0 {
		return false
	}
	diff := ai - bi
	return diff == 1 || diff == -1
}

func bucketIndex(v string) int {
	for i, b := range model.ExperienceBuckets {
		if v == b {
			return i
		}
	}
	return -1
}

func intersectionSize(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	n := 0
	for _, v := range b {
		if _, ok := set[v]; ok {
			n++
		}
	}
	return n
}

// Candidate is a profile annotated with its score against the requester.
type Candidate struct {
	model.User
	DisplayName string `json:"displayName"`
	MatchScore  int    `json:"matchScore"`
}

// Rank scores every candidate against the requester and sorts descending.
// The sort is stable so equal scores keep their input order; callers filter
// the requester out of the candidate list before calling.
func Rank(self *model.User, others []model.User) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(others))
	for i := range others {
		s, err := Score(self, &others[i])
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{
			User:        others[i],
			DisplayName: others[i].DisplayName(),
			MatchScore:  s,
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})
	return candidates, nil
}

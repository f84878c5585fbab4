package model

import (
	"time"
)

// Target role categories offered by the profile form. TargetRole is stored as
// a plain string; "other" covers anything outside the preset list.
const (
	RoleDataAnalyst   = "data-analyst"
	RoleDataScientist = "data-scientist"
	RoleDataEngineer  = "data-engineer"
	RoleOther         = "other"
)

// Work experience buckets, ordered. Adjacency between buckets matters for
// match scoring.
var ExperienceBuckets = []string{"0", "1-3", "4-5", ">5"}

// AvailableTimes is the structured practice schedule a user offers.
type AvailableTimes struct {
	Weekdays []string `json:"weekdays"`
	Weekends []string `json:"weekends"`
}

type User struct {
	ID             int64           `json:"id"`
	Username       string          `json:"username"`
	HashedPassword string          `json:"-"` // Not exposed
	Nickname       string          `json:"nickname,omitempty"`
	ContactInfo    string          `json:"contactInfo,omitempty"`
	TargetRole     string          `json:"targetRole,omitempty"`
	WorkExperience string          `json:"workExperience,omitempty"`
	PracticeAreas  []string        `json:"practiceAreas"`
	TargetIndustry string          `json:"targetIndustry,omitempty"`
	TargetCompany  string          `json:"targetCompany,omitempty"`
	AvailableTimes *AvailableTimes `json:"availableTimes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DisplayName prefers the nickname, falling back to the username.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

// ValidExperienceBucket reports whether v is one of the known buckets.
// The empty string is valid: experience is an optional profile field.
func ValidExperienceBucket(v string) bool {
	if v == "" {
		return true
	}
	for _, b := range ExperienceBuckets {
		if v == b {
			return true
		}
	}
	return false
}

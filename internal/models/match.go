package models

import "time"

// MatchStatus is the lifecycle state of a Match.
type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusAccepted, MatchStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
// Accepted and rejected are terminal.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	if s == next {
		return true
	}
	return s == MatchStatusPending && (next == MatchStatusAccepted || next == MatchStatusRejected)
}

// Match is a directed exchange proposal from a source user to a target user.
// TeachSkillID and LearnSkillID both reference UserSkill rows of the source.
type Match struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	SourceUserID uint        `gorm:"index;not null" json:"sourceUserId"`
	TargetUserID uint        `gorm:"index;not null" json:"targetUserId"`
	TeachSkillID uint        `gorm:"not null" json:"teachSkillId"`
	LearnSkillID uint        `gorm:"not null" json:"learnSkillId"`
	Status       MatchStatus `gorm:"size:10;not null;default:pending;index" json:"status"`
	CreatedAt    time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	SourceUser *User      `gorm:"foreignKey:SourceUserID" json:"sourceUser,omitempty"`
	TargetUser *User      `gorm:"foreignKey:TargetUserID" json:"targetUser,omitempty"`
	TeachSkill *UserSkill `gorm:"foreignKey:TeachSkillID" json:"teachSkill,omitempty"`
	LearnSkill *UserSkill `gorm:"foreignKey:LearnSkillID" json:"learnSkill,omitempty"`
}

// Involves reports whether userID is the source or the target of m.
func (m *Match) Involves(userID uint) bool {
	return m.SourceUserID == userID || m.TargetUserID == userID
}

// SkillMatchWithUsers is a Match reoriented to the requesting user's point of view:
// TeachSkill is what the viewer offers and LearnSkill what the viewer seeks.
type SkillMatchWithUsers struct {
	ID         uint        `json:"id"`
	Status     MatchStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	IsSource   bool        `json:"isSource"`
	Partner    UserSummary `json:"partner"`
	SourceUser UserSummary `json:"sourceUser"`
	TargetUser UserSummary `json:"targetUser"`
	TeachSkill *UserSkill  `json:"teachSkill"`
	LearnSkill *UserSkill  `json:"learnSkill"`
	// Verified is false when the perspective validator could not confirm the swapped view.
	Verified bool `json:"verified"`
}

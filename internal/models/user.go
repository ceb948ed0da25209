// Package models contains the domain entities and derived views of SkillSwap.
package models

import (
	"time"
)

// User is a SkillSwap member. The password hash is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Bio       *string   `json:"bio"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Skills []UserSkill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

// UserSummary is the compact user shape embedded in other payloads.
type UserSummary struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar,omitempty"`
}

// Summary returns the compact representation of u.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// UserWithStats is a leaderboard row.
type UserWithStats struct {
	User
	SkillsShared int `json:"skillsShared"`
	Points       int `json:"points"`
}

// UserStats is the per-user dashboard aggregate.
type UserStats struct {
	ActiveMatches         int `json:"activeMatches"`
	NewMatches            int `json:"newMatches"`
	SkillsShared          int `json:"skillsShared"`
	NewSkillsShared       int `json:"newSkillsShared"`
	LeaderboardRank       int `json:"leaderboardRank"`
	LeaderboardPercentile int `json:"leaderboardPercentile"`
}

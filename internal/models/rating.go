package models

import "time"

// Rating is feedback left by one user about another for a skill exchange.
type Rating struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RaterID      uint      `gorm:"index;not null" json:"raterId"`
	TargetUserID uint      `gorm:"index;not null" json:"targetUserId"`
	SkillID      uint      `gorm:"not null" json:"skillId"`
	Score        int       `gorm:"not null" json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

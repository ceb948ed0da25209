package models

import "time"

// SkillType is the direction of a UserSkill.
type SkillType string

const (
	SkillTypeTeach SkillType = "teach"
	SkillTypeLearn SkillType = "learn"
)

// Valid reports whether t is a known direction.
func (t SkillType) Valid() bool {
	return t == SkillTypeTeach || t == SkillTypeLearn
}

// Proficiency labels accepted on skill records.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

// Valid reports whether p is one of the known labels.
func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

// Skill is a named subject that users teach or learn.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Category  *string   `gorm:"size:100" json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSkill links a user to a skill in one direction.
// Progress is meaningful for learn records; PartnerCount for teach records.
type UserSkill struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       uint        `gorm:"index;not null" json:"userId"`
	SkillID      uint        `gorm:"index;not null" json:"skillId"`
	Type         SkillType   `gorm:"size:10;not null;index" json:"type"`
	Proficiency  Proficiency `gorm:"size:20;not null" json:"proficiency"`
	Description  *string     `json:"description"`
	Progress     int         `gorm:"not null;default:0" json:"progress"`
	PartnerCount int         `gorm:"not null;default:0" json:"partnerCount"`
	Teacher      *string     `gorm:"size:100" json:"teacher"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	Skill *Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

// Recommendation is one AI-suggested learning resource.
type Recommendation struct {
	Skill    string `json:"skill"`
	Resource string `json:"resource"`
	Reason   string `json:"reason"`
}

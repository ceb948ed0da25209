package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"skillswap/internal/models"
)

const (
	SkillNameMinLength    = 2
	SkillNameMaxLength    = 100
	DescriptionMaxLength  = 1000
	RatingMin             = 1
	RatingMax             = 5
	MessageMaxLength      = 4000
	ChatbotMessageMaxSize = 2000
)

// ValidateSkillName checks a skill name after trimming.
func ValidateSkillName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < SkillNameMinLength {
		return fmt.Errorf("skill name must be at least %d characters", SkillNameMinLength)
	}
	if n > SkillNameMaxLength {
		return fmt.Errorf("skill name must be at most %d characters", SkillNameMaxLength)
	}
	return nil
}

// ValidateSkillForm validates a declared teach/learn record.
func ValidateSkillForm(skillType models.SkillType, name string, proficiency models.Proficiency, description string) error {
	if !skillType.Valid() {
		return fmt.Errorf("type must be one of: teach, learn")
	}
	if err := ValidateSkillName(name); err != nil {
		return err
	}
	if !proficiency.Valid() {
		return fmt.Errorf("proficiency must be one of: Beginner, Intermediate, Advanced, Expert")
	}
	if utf8.RuneCountInString(description) > DescriptionMaxLength {
		return fmt.Errorf("description must be at most %d characters", DescriptionMaxLength)
	}
	return nil
}

// ValidateProgress checks a learning progress percentage.
func ValidateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}

// ValidateRating checks a 1-5 score.
func ValidateRating(score int) error {
	if score < RatingMin || score > RatingMax {
		return fmt.Errorf("rating must be between %d and %d", RatingMin, RatingMax)
	}
	return nil
}

// ValidateMessage checks chat and direct message content.
func ValidateMessage(content string, maxLen int) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message content is required")
	}
	if utf8.RuneCountInString(content) > maxLen {
		return fmt.Errorf("message must be at most %d characters", maxLen)
	}
	return nil
}

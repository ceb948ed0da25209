package validation

import (
	"strings"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Simple", "alex", false},
		{"Display Name", "Sarah Johnson", false},
		{"Underscore", "dev_kim", false},
		{"Unicode", "Zoë", false},
		{"Exactly Min Length", "abc", false},
		{"Exactly Max Length", strings.Repeat("a", 30), false},
		{"Too Short", "ab", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Leading Space", " alex", true},
		{"Trailing Dash", "alex-", true},
		{"Double Space", "Sarah  Johnson", true},
		{"Symbols", "alex!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePassword("password123"))
	assert.NoError(t, ValidatePassword("sixsix"))
	assert.Error(t, ValidatePassword("five5"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
}

func TestValidateAvatarURL(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateAvatarURL(""))
	assert.NoError(t, ValidateAvatarURL("https://images.example.com/a.png"))
	assert.NoError(t, ValidateAvatarURL("/uploads/avatars/1.webp"))
	assert.Error(t, ValidateAvatarURL("javascript:alert(1)"))
}

func TestValidateSkillForm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		skillType   models.SkillType
		skillName   string
		proficiency models.Proficiency
		description string
		wantErr     bool
	}{
		{"Valid Teach", models.SkillTypeTeach, "JavaScript", models.ProficiencyAdvanced, "", false},
		{"Valid Learn", models.SkillTypeLearn, "Go", models.ProficiencyBeginner, "basics", false},
		{"Bad Type", "teaching", "JavaScript", models.ProficiencyAdvanced, "", true},
		{"Short Name", models.SkillTypeTeach, "J", models.ProficiencyAdvanced, "", true},
		{"Whitespace Name", models.SkillTypeTeach, "  J  ", models.ProficiencyAdvanced, "", true},
		{"Bad Proficiency", models.SkillTypeTeach, "JavaScript", "Guru", "", true},
		{"Long Description", models.SkillTypeLearn, "Go", models.ProficiencyBeginner, strings.Repeat("d", 1001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSkillForm(tt.skillType, tt.skillName, tt.proficiency, tt.description)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRatingAndProgress(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(5))
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))

	assert.NoError(t, ValidateProgress(0))
	assert.NoError(t, ValidateProgress(100))
	assert.Error(t, ValidateProgress(101))
}

func TestValidateMessage(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateMessage("hi", 10))
	assert.Error(t, ValidateMessage("   ", 10))
	assert.Error(t, ValidateMessage(strings.Repeat("x", 11), 10))
}

func TestDetectUpload(t *testing.T) {
	t.Parallel()

	kind, mime, err := DetectUpload([]byte("%PDF-1.7\n%âãÏÓ\n1 0 obj"))
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypePDF, kind)
	assert.Equal(t, MimePDF, mime)

	mp4 := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)
	kind, mime, err = DetectUpload(mp4)
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeVideo, kind)
	assert.Equal(t, MimeMP4, mime)

	_, _, err = DetectUpload([]byte("\x89PNG\r\n\x1a\n0000"))
	assert.Error(t, err)

	_, _, err = DetectUpload(nil)
	assert.Error(t, err)
}

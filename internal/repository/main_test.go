package repository

import (
	"strings"
	"testing"
	"time"

	"skillswap/internal/database"
	"skillswap/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenSQLiteMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Password: "hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createRecord(t *testing.T, db *gorm.DB, userID uint, skillName string, typ models.SkillType) *models.UserSkill {
	t.Helper()
	skill := models.Skill{Name: skillName}
	require.NoError(t, db.Where("name = ?", skillName).FirstOrCreate(&skill).Error)
	rec := &models.UserSkill{
		UserID:      userID,
		SkillID:     skill.ID,
		Type:        typ,
		Proficiency: models.ProficiencyIntermediate,
	}
	require.NoError(t, db.Create(rec).Error)
	return rec
}

func createMatch(t *testing.T, db *gorm.DB, source, target uint, teach, learn uint, status models.MatchStatus, createdAt time.Time) *models.Match {
	t.Helper()
	m := &models.Match{
		SourceUserID: source,
		TargetUserID: target,
		TeachSkillID: teach,
		LearnSkillID: learn,
		Status:       status,
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

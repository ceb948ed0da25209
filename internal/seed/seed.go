// Package seed loads the SkillSwap demo community and optional generated
// users for development and testing.
package seed

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

// Options configuration for the seeder
type Options struct {
	// ExtraUsers adds generated users with random skill records.
	ExtraUsers  int
	ShouldClean bool
	SkipBcrypt  bool
	DryRun      bool
	// RandSeed makes generated data reproducible when non-zero.
	RandSeed int64
}

// Result counts what a seeding run created.
type Result struct {
	Users      int
	Skills     int
	UserSkills int
	Matches    int
	Messages   int
	Content    int
}

// Seeder applies a fixture and generated extras to a database.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// Seed populates the database with the demo fixture plus opts.ExtraUsers
// generated users.
func Seed(db *gorm.DB, opts Options) (*Result, error) {
	fixture, err := DemoFixture()
	if err != nil {
		return nil, err
	}
	return NewSeeder(db, opts).Run(fixture)
}

// Run loads fixture and the generated extras. Existing users and skills
// with the same names are reused, so a second run adds no duplicates.
func (s *Seeder) Run(fixture *Fixture) (*Result, error) {
	log.Printf("🌱 Seeding %d demo users and %d generated users...", len(fixture.Users), s.opts.ExtraUsers)

	if s.opts.ShouldClean && !s.opts.DryRun {
		if err := clearData(s.db); err != nil {
			return nil, fmt.Errorf("clear existing data: %w", err)
		}
	}

	res := &Result{}
	if s.opts.DryRun {
		res.Users = len(fixture.Users) + s.opts.ExtraUsers
		res.Skills = len(fixture.Skills)
		for _, u := range fixture.Users {
			res.UserSkills += len(u.Skills)
		}
		res.Matches = len(fixture.Matches)
		res.Messages = len(fixture.Messages)
		res.Content = len(fixture.Content)
		log.Printf("[dry-run] would seed %+v", *res)
		return res, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txSeeder := &Seeder{db: tx, opts: s.opts, factory: s.factory.withDB(tx)}
		return txSeeder.apply(fixture, res)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎉 Seeding complete: %d users, %d skills, %d skill records, %d matches, %d messages, %d content items",
		res.Users, res.Skills, res.UserSkills, res.Matches, res.Messages, res.Content)
	return res, nil
}

func (s *Seeder) apply(fixture *Fixture, res *Result) error {
	skills, err := s.upsertSkills(fixture.Skills)
	if err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	res.Skills = len(skills)

	users := make(map[string]*models.User, len(fixture.Users))
	records := make(map[string]*models.UserSkill)
	for _, uf := range fixture.Users {
		user, created, err := s.ensureUser(uf, fixture.Password)
		if err != nil {
			return fmt.Errorf("user %s: %w", uf.Username, err)
		}
		users[uf.Username] = user
		if created {
			res.Users++
		}

		for _, sf := range uf.Skills {
			record, created, err := s.ensureUserSkill(user, skills[sf.Skill], sf)
			if err != nil {
				return fmt.Errorf("skill %s for %s: %w", sf.Skill, uf.Username, err)
			}
			records[recordKey(uf.Username, sf.Skill)] = record
			if created {
				res.UserSkills++
			}
		}
	}

	for _, mf := range fixture.Matches {
		created, err := s.ensureMatch(users, records, mf)
		if err != nil {
			return fmt.Errorf("match %s -> %s: %w", mf.Source, mf.Target, err)
		}
		if created {
			res.Matches++
		}
	}

	if res.Users > 0 {
		for _, msg := range fixture.Messages {
			ago := time.Duration(msg.MinutesAgo) * time.Minute
			if _, err := s.factory.CreateMessage(users[msg.From], users[msg.To], msg.Content, ago, msg.Read); err != nil {
				return fmt.Errorf("message: %w", err)
			}
			res.Messages++
		}
		for _, cf := range fixture.Content {
			if err := s.createContent(users[cf.Owner], cf); err != nil {
				return fmt.Errorf("content %s: %w", cf.Filename, err)
			}
			res.Content++
		}
	}

	extra, err := s.seedExtraUsers(skills, res)
	if err != nil {
		return fmt.Errorf("generated users: %w", err)
	}
	res.Users += extra
	return nil
}

func (s *Seeder) upsertSkills(fixtures []SkillFixture) (map[string]*models.Skill, error) {
	out := make(map[string]*models.Skill, len(fixtures))
	for _, sf := range fixtures {
		category := sf.Category
		skill := models.Skill{Name: sf.Name, Category: &category}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"category"}),
		}).Create(&skill).Error; err != nil {
			return nil, err
		}
		// The upsert does not report the id of an existing row on every driver.
		var stored models.Skill
		if err := s.db.Where("name = ?", sf.Name).First(&stored).Error; err != nil {
			return nil, err
		}
		out[sf.Name] = &stored
	}
	return out, nil
}

func (s *Seeder) ensureUser(uf UserFixture, password string) (*models.User, bool, error) {
	var existing models.User
	err := s.db.Where("username = ?", uf.Username).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	hashed, err := s.factory.passwordHash(password)
	if err != nil {
		return nil, false, err
	}
	user := &models.User{
		Username: uf.Username,
		Password: hashed,
		Bio:      optional(uf.Bio),
		Avatar:   optional(uf.Avatar),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *Seeder) ensureUserSkill(user *models.User, skill *models.Skill, sf UserSkillFixture) (*models.UserSkill, bool, error) {
	var existing models.UserSkill
	err := s.db.Where("user_id = ? AND skill_id = ? AND type = ?", user.ID, skill.ID, sf.Type).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	record, err := s.factory.CreateUserSkill(user, skill, sf.Type, func(us *models.UserSkill) {
		us.Proficiency = sf.Proficiency
		us.Description = optional(sf.Description)
		us.Progress = sf.Progress
		us.PartnerCount = sf.Partners
		us.Teacher = optional(sf.Teacher)
	})
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

func (s *Seeder) ensureMatch(users map[string]*models.User, records map[string]*models.UserSkill, mf MatchFixture) (bool, error) {
	source, target := users[mf.Source], users[mf.Target]
	teach, learn := records[mf.Teach], records[mf.Learn]

	var count int64
	if err := s.db.Model(&models.Match{}).
		Where("source_user_id = ? AND target_user_id = ? AND teach_skill_id = ? AND learn_skill_id = ?",
			source.ID, target.ID, teach.ID, learn.ID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	match := &models.Match{
		SourceUserID: source.ID,
		TargetUserID: target.ID,
		TeachSkillID: teach.ID,
		LearnSkillID: learn.ID,
		Status:       mf.Status,
	}
	return true, s.db.Create(match).Error
}

func (s *Seeder) createContent(owner *models.User, cf ContentFixture) error {
	summary := strings.TrimSpace(cf.Summary)
	content := &models.Content{
		UserID:   owner.ID,
		Filename: cf.Filename,
		Type:     cf.Type,
		Path:     cf.Path,
		URL:      "/uploads/" + cf.Path,
		Size:     cf.Size,
		Summary:  optional(summary),
		Status:   models.ContentStatusComplete,
	}
	return s.db.Create(content).Error
}

// seedExtraUsers generates users with one to three teach and learn records each.
func (s *Seeder) seedExtraUsers(skills map[string]*models.Skill, res *Result) (int, error) {
	if s.opts.ExtraUsers <= 0 || len(skills) == 0 {
		return 0, nil
	}
	catalogue := make([]models.Skill, 0, len(skills))
	for _, sk := range skills {
		catalogue = append(catalogue, *sk)
	}

	created := 0
	for i := 0; i < s.opts.ExtraUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create generated user: %v", err)
			continue
		}
		created++

		picks := s.factory.RandomSkills(catalogue, 2+s.factory.rng.Intn(3))
		for j := range picks {
			skillType := models.SkillTypeTeach
			if j%2 == 1 {
				skillType = models.SkillTypeLearn
			}
			if _, err := s.factory.CreateUserSkill(user, &picks[j], skillType); err != nil {
				return created, err
			}
			res.UserSkills++
		}

		if created%100 == 0 {
			log.Printf("Created %d generated users...", created)
		}
	}
	return created, nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE ratings, contents, messages, matches, user_skills, skills, users RESTART IDENTITY CASCADE`).Error
	}
	for _, table := range []string{"ratings", "contents", "messages", "matches", "user_skills", "skills", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db       *gorm.DB
	opts     Options
	password string
	rng      *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	return &Factory{
		db:     db,
		opts:   opts,
		nextID: 1000,
		//nolint:gosec // Weak random number generator is fine for seeding
		rng: rand.New(rand.NewSource(seed)),
	}
}

// withDB returns a copy of f writing through db, sharing its random source.
func (f *Factory) withDB(db *gorm.DB) *Factory {
	cp := *f
	cp.db = db
	return &cp
}

// passwordHash hashes the shared demo password once per factory.
func (f *Factory) passwordHash(plain string) (string, error) {
	if f.opts.SkipBcrypt {
		return plain, nil
	}
	if f.password != "" {
		return f.password, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	f.password = string(hashed)
	return f.password, nil
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	bio := gofakeit.Sentence(10)
	avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
	user := &models.User{
		Username: fakeUsername(),
		Bio:      &bio,
		Avatar:   &avatar,
	}

	hashed, err := f.passwordHash(DefaultPassword)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// fakeUsername returns a handle that passes username validation.
func fakeUsername() string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, gofakeit.Username())
	if len(name) > 24 {
		name = name[:24]
	}
	if len(name) < 3 {
		name = "user"
	}
	return fmt.Sprintf("%s%d", name, gofakeit.Number(100, 999))
}

// CreateUserSkill declares a skill record for user. Learn records get a
// random progress and teach records a random partner count.
func (f *Factory) CreateUserSkill(user *models.User, skill *models.Skill, skillType models.SkillType, overrides ...func(*models.UserSkill)) (*models.UserSkill, error) {
	proficiencies := []models.Proficiency{
		models.ProficiencyBeginner, models.ProficiencyIntermediate,
		models.ProficiencyAdvanced, models.ProficiencyExpert,
	}
	description := gofakeit.Sentence(8)
	record := &models.UserSkill{
		UserID:      user.ID,
		SkillID:     skill.ID,
		Type:        skillType,
		Proficiency: proficiencies[f.rng.Intn(len(proficiencies))],
		Description: &description,
	}
	if skillType == models.SkillTypeLearn {
		record.Progress = f.rng.Intn(101)
	} else {
		record.PartnerCount = f.rng.Intn(6)
	}

	for _, override := range overrides {
		override(record)
	}

	if f.opts.DryRun {
		f.nextID++
		record.ID = f.nextID
		return record, nil
	}
	if err := f.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// CreateMessage persists a message between two users sent `ago` before now.
func (f *Factory) CreateMessage(from, to *models.User, content string, ago time.Duration, read bool) (*models.Message, error) {
	if content == "" {
		content = gofakeit.Sentence(10)
	}
	msg := &models.Message{
		SenderID:   from.ID,
		ReceiverID: to.ID,
		Content:    content,
		Read:       read,
		CreatedAt:  time.Now().Add(-ago).UTC(),
	}
	if f.opts.DryRun {
		f.nextID++
		msg.ID = f.nextID
		return msg, nil
	}
	if err := f.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// RandomSkills returns n distinct entries from skills.
func (f *Factory) RandomSkills(skills []models.Skill, n int) []models.Skill {
	if n > len(skills) {
		n = len(skills)
	}
	out := make([]models.Skill, len(skills))
	copy(out, skills)
	f.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out[:n]
}

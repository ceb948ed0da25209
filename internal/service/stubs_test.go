package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

// noopUserRepo resolves any id to a user named "user<id>".
func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: fmt.Sprintf("user%d", id)}, nil
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

func missingUsers(ids ...uint) func(context.Context, uint) (*models.User, error) {
	return func(_ context.Context, id uint) (*models.User, error) {
		for _, missing := range ids {
			if id == missing {
				return nil, models.NewNotFoundError("User", id)
			}
		}
		return &models.User{ID: id, Username: "user"}, nil
	}
}

type skillRepoStub struct {
	listFn         func(context.Context) ([]models.Skill, error)
	getByIDFn      func(context.Context, uint) (*models.Skill, error)
	getByNameFn    func(context.Context, string) (*models.Skill, error)
	createFn       func(context.Context, *models.Skill) error
	findOrCreateFn func(context.Context, string, *string) (*models.Skill, error)
}

func (s *skillRepoStub) List(ctx context.Context) ([]models.Skill, error) {
	return s.listFn(ctx)
}
func (s *skillRepoStub) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *skillRepoStub) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	return s.getByNameFn(ctx, name)
}
func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) FindOrCreate(ctx context.Context, name string, category *string) (*models.Skill, error) {
	return s.findOrCreateFn(ctx, name, category)
}

func noopSkillRepo() *skillRepoStub {
	return &skillRepoStub{
		listFn:      func(context.Context) ([]models.Skill, error) { return nil, nil },
		getByIDFn:   func(_ context.Context, id uint) (*models.Skill, error) { return &models.Skill{ID: id}, nil },
		getByNameFn: func(context.Context, string) (*models.Skill, error) { return nil, nil },
		createFn: func(_ context.Context, s *models.Skill) error {
			s.ID = 1
			return nil
		},
		findOrCreateFn: func(_ context.Context, name string, _ *string) (*models.Skill, error) {
			return &models.Skill{ID: 7, Name: name}, nil
		},
	}
}

type userSkillRepoStub struct {
	listByUserFn func(context.Context, uint, *models.SkillType) ([]models.UserSkill, error)
	getByIDFn    func(context.Context, uint) (*models.UserSkill, error)
	createFn     func(context.Context, *models.UserSkill) error
	updateFn     func(context.Context, *models.UserSkill) error
	hasSkillFn   func(context.Context, uint, uint, models.SkillType) (bool, error)
}

func (s *userSkillRepoStub) ListByUser(ctx context.Context, userID uint, t *models.SkillType) ([]models.UserSkill, error) {
	return s.listByUserFn(ctx, userID, t)
}
func (s *userSkillRepoStub) GetByID(ctx context.Context, id uint) (*models.UserSkill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userSkillRepoStub) Create(ctx context.Context, record *models.UserSkill) error {
	return s.createFn(ctx, record)
}
func (s *userSkillRepoStub) Update(ctx context.Context, record *models.UserSkill) error {
	return s.updateFn(ctx, record)
}
func (s *userSkillRepoStub) HasSkill(ctx context.Context, userID, skillID uint, t models.SkillType) (bool, error) {
	return s.hasSkillFn(ctx, userID, skillID, t)
}

func noopUserSkillRepo() *userSkillRepoStub {
	return &userSkillRepoStub{
		listByUserFn: func(context.Context, uint, *models.SkillType) ([]models.UserSkill, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.UserSkill, error) {
			return nil, models.NewNotFoundError("Skill record", id)
		},
		createFn: func(_ context.Context, r *models.UserSkill) error {
			r.ID = 1
			return nil
		},
		updateFn:   func(context.Context, *models.UserSkill) error { return nil },
		hasSkillFn: func(context.Context, uint, uint, models.SkillType) (bool, error) { return true, nil },
	}
}

// recordsByID serves GetByID from a fixed set of records.
func recordsByID(records ...*models.UserSkill) func(context.Context, uint) (*models.UserSkill, error) {
	return func(_ context.Context, id uint) (*models.UserSkill, error) {
		for _, r := range records {
			if r.ID == id {
				copied := *r
				return &copied, nil
			}
		}
		return nil, models.NewNotFoundError("Skill record", id)
	}
}

type matchRepoStub struct {
	listForUserFn      func(context.Context, uint, *models.MatchStatus) ([]models.Match, error)
	getByIDFn          func(context.Context, uint) (*models.Match, error)
	createFn           func(context.Context, *models.Match) error
	createWithNoticeFn func(context.Context, *models.Match, *models.Message) error
	updateStatusFn     func(context.Context, uint, models.MatchStatus) error
}

func (s *matchRepoStub) ListForUser(ctx context.Context, userID uint, status *models.MatchStatus) ([]models.Match, error) {
	return s.listForUserFn(ctx, userID, status)
}
func (s *matchRepoStub) GetByID(ctx context.Context, id uint) (*models.Match, error) {
	return s.getByIDFn(ctx, id)
}
func (s *matchRepoStub) Create(ctx context.Context, m *models.Match) error {
	return s.createFn(ctx, m)
}
func (s *matchRepoStub) CreateWithNotice(ctx context.Context, m *models.Match, notice *models.Message) error {
	return s.createWithNoticeFn(ctx, m, notice)
}
func (s *matchRepoStub) UpdateStatus(ctx context.Context, id uint, status models.MatchStatus) error {
	return s.updateStatusFn(ctx, id, status)
}

func noopMatchRepo() *matchRepoStub {
	return &matchRepoStub{
		listForUserFn: func(context.Context, uint, *models.MatchStatus) ([]models.Match, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Match, error) {
			return nil, models.NewNotFoundError("Match", id)
		},
		createFn: func(context.Context, *models.Match) error { return nil },
		createWithNoticeFn: func(_ context.Context, m *models.Match, n *models.Message) error {
			m.ID = 1
			n.ID = 1
			n.CreatedAt = time.Now()
			return nil
		},
		updateStatusFn: func(context.Context, uint, models.MatchStatus) error { return nil },
	}
}

type messageRepoStub struct {
	listForUserFn  func(context.Context, uint, int) ([]models.Message, error)
	conversationFn func(context.Context, uint, uint, int) ([]models.Message, error)
	createFn       func(context.Context, *models.Message) error
	markReadFn     func(context.Context, uint, uint) (int64, error)
}

func (s *messageRepoStub) ListForUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.listForUserFn(ctx, userID, limit)
}
func (s *messageRepoStub) Conversation(ctx context.Context, a, b uint, limit int) ([]models.Message, error) {
	return s.conversationFn(ctx, a, b, limit)
}
func (s *messageRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, receiverID, senderID uint) (int64, error) {
	return s.markReadFn(ctx, receiverID, senderID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		listForUserFn:  func(context.Context, uint, int) ([]models.Message, error) { return nil, nil },
		conversationFn: func(context.Context, uint, uint, int) ([]models.Message, error) { return nil, nil },
		createFn: func(_ context.Context, m *models.Message) error {
			m.ID = 1
			m.CreatedAt = time.Now()
			return nil
		},
		markReadFn: func(context.Context, uint, uint) (int64, error) { return 0, nil },
	}
}

type statsRepoStub struct {
	leaderboardFn    func(context.Context) ([]models.UserWithStats, error)
	activityCountsFn func(context.Context, uint, time.Time) (repository.ActivityCounts, error)
}

func (s *statsRepoStub) Leaderboard(ctx context.Context) ([]models.UserWithStats, error) {
	return s.leaderboardFn(ctx)
}
func (s *statsRepoStub) ActivityCounts(ctx context.Context, userID uint, now time.Time) (repository.ActivityCounts, error) {
	return s.activityCountsFn(ctx, userID, now)
}

// contentRepoStub keeps content rows in memory.
type contentRepoStub struct {
	mu      sync.Mutex
	rows    map[uint]models.Content
	nextID  uint
	updates int
}

func newContentRepoStub() *contentRepoStub {
	return &contentRepoStub{rows: make(map[uint]models.Content)}
}

func (s *contentRepoStub) ListByUser(_ context.Context, userID uint) ([]models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Content
	for _, c := range s.rows {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (s *contentRepoStub) GetByID(_ context.Context, id uint) (*models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.rows[id]
	if !ok {
		return nil, models.NewNotFoundError("Content", id)
	}
	return &c, nil
}
func (s *contentRepoStub) Create(_ context.Context, c *models.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.rows[c.ID] = *c
	return nil
}
func (s *contentRepoStub) Update(_ context.Context, c *models.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	s.rows[c.ID] = *c
	return nil
}

type ratingRepoStub struct {
	created []models.Rating
}

func (s *ratingRepoStub) Create(_ context.Context, r *models.Rating) error {
	r.ID = uint(len(s.created) + 1)
	s.created = append(s.created, *r)
	return nil
}
func (s *ratingRepoStub) ListForUser(_ context.Context, userID uint) ([]models.Rating, error) {
	var out []models.Rating
	for _, r := range s.created {
		if r.TargetUserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type pushCall struct {
	userID uint
	env    models.ChatEnvelope
}

type recordingPusher struct {
	mu    sync.Mutex
	calls []pushCall
	err   error
}

func (p *recordingPusher) PushToUser(_ context.Context, userID uint, env models.ChatEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, pushCall{userID: userID, env: env})
	return p.err
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, models.CodeValidation)
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func strPtr(s string) *string { return &s }

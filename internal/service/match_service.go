package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// Pusher delivers a live envelope to a connected user.
type Pusher interface {
	PushToUser(ctx context.Context, userID uint, env models.ChatEnvelope) error
}

// PerspectiveValidator decides whether a reoriented match holds up for the viewer.
type PerspectiveValidator interface {
	Verify(ctx context.Context, viewerID uint, view *models.SkillMatchWithUsers) (bool, error)
}

// AcceptAllPerspectives keeps the literal swap unchecked.
type AcceptAllPerspectives struct{}

func (AcceptAllPerspectives) Verify(context.Context, uint, *models.SkillMatchWithUsers) (bool, error) {
	return true, nil
}

// TeachRecordValidator checks that a target viewer owns a teach record for
// the skill the swapped view says they teach.
type TeachRecordValidator struct {
	UserSkills repository.UserSkillRepository
}

func (v TeachRecordValidator) Verify(ctx context.Context, viewerID uint, view *models.SkillMatchWithUsers) (bool, error) {
	if view.IsSource || view.TeachSkill == nil {
		return true, nil
	}
	return v.UserSkills.HasSkill(ctx, viewerID, view.TeachSkill.SkillID, models.SkillTypeTeach)
}

type MatchService struct {
	matchRepo     repository.MatchRepository
	userRepo      repository.UserRepository
	userSkillRepo repository.UserSkillRepository
	validator     PerspectiveValidator
	pusher        Pusher
}

type ProposeMatchInput struct {
	SourceUserID uint
	TargetUserID uint
	TeachSkillID uint
	LearnSkillID uint
}

func NewMatchService(
	matchRepo repository.MatchRepository,
	userRepo repository.UserRepository,
	userSkillRepo repository.UserSkillRepository,
	validator PerspectiveValidator,
	pusher Pusher,
) *MatchService {
	if validator == nil {
		validator = AcceptAllPerspectives{}
	}
	return &MatchService{
		matchRepo:     matchRepo,
		userRepo:      userRepo,
		userSkillRepo: userSkillRepo,
		validator:     validator,
		pusher:        pusher,
	}
}

// ParseMatchStatus validates an optional ?status= filter.
func ParseMatchStatus(raw string) (*models.MatchStatus, error) {
	if raw == "" {
		return nil, nil
	}
	status := models.MatchStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return nil, models.NewValidationError("status must be one of: pending, accepted, rejected")
	}
	return &status, nil
}

// Normalize reorients m so TeachSkill is what the viewer offers and
// LearnSkill is what the viewer seeks. A target viewer gets the source's
// skills swapped as-is.
func Normalize(viewerID uint, m *models.Match) models.SkillMatchWithUsers {
	view := models.SkillMatchWithUsers{
		ID:        m.ID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		IsSource:  m.SourceUserID == viewerID,
		Verified:  true,
	}
	if m.SourceUser != nil {
		view.SourceUser = m.SourceUser.Summary()
	} else {
		view.SourceUser = models.UserSummary{ID: m.SourceUserID}
	}
	if m.TargetUser != nil {
		view.TargetUser = m.TargetUser.Summary()
	} else {
		view.TargetUser = models.UserSummary{ID: m.TargetUserID}
	}

	if view.IsSource {
		view.TeachSkill = m.TeachSkill
		view.LearnSkill = m.LearnSkill
		view.Partner = view.TargetUser
	} else {
		view.TeachSkill = m.LearnSkill
		view.LearnSkill = m.TeachSkill
		view.Partner = view.SourceUser
	}
	return view
}

func (s *MatchService) ListForUser(ctx context.Context, userID uint, statusFilter string) ([]models.SkillMatchWithUsers, error) {
	status, err := ParseMatchStatus(statusFilter)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListForUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	out := make([]models.SkillMatchWithUsers, 0, len(matches))
	for i := range matches {
		view := Normalize(userID, &matches[i])
		ok, err := s.validator.Verify(ctx, userID, &view)
		if err != nil {
			slog.WarnContext(ctx, "match perspective check failed", "match_id", view.ID, "error", err)
			ok = false
		}
		view.Verified = ok
		out = append(out, view)
	}
	return out, nil
}

// Propose records a pending match and leaves a notice message for the target
// in the same transaction. The live push is best-effort.
func (s *MatchService) Propose(ctx context.Context, in ProposeMatchInput) (*models.Match, error) {
	if in.TargetUserID == 0 || in.TeachSkillID == 0 || in.LearnSkillID == 0 {
		return nil, models.NewValidationError("targetUserId, teachSkillId and learnSkillId are required")
	}
	if in.TargetUserID == in.SourceUserID {
		return nil, models.NewValidationError("You cannot match with yourself")
	}

	source, err := s.userRepo.GetByID(ctx, in.SourceUserID)
	if err != nil {
		return nil, err
	}
	target, err := s.userRepo.GetByID(ctx, in.TargetUserID)
	if err != nil {
		return nil, err
	}

	teach, err := s.userSkillRepo.GetByID(ctx, in.TeachSkillID)
	if err != nil {
		return nil, err
	}
	if teach.UserID != source.ID || teach.Type != models.SkillTypeTeach {
		return nil, models.NewValidationError("teachSkillId must be one of your teach skills")
	}

	learn, err := s.userSkillRepo.GetByID(ctx, in.LearnSkillID)
	if err != nil {
		return nil, err
	}
	if learn.Type != models.SkillTypeLearn || (learn.UserID != source.ID && learn.UserID != target.ID) {
		return nil, models.NewValidationError("learnSkillId must be a learn skill of either party")
	}

	match := &models.Match{
		SourceUserID: source.ID,
		TargetUserID: target.ID,
		TeachSkillID: teach.ID,
		LearnSkillID: learn.ID,
		Status:       models.MatchStatusPending,
	}
	notice := &models.Message{
		SenderID:   source.ID,
		ReceiverID: target.ID,
		Content:    proposalNotice(source.Username, teach, learn),
	}
	if err := s.matchRepo.CreateWithNotice(ctx, match, notice); err != nil {
		return nil, err
	}

	match.SourceUser = source
	match.TargetUser = target
	match.TeachSkill = teach
	match.LearnSkill = learn

	s.push(ctx, target.ID, models.ChatEnvelope{
		Type:       models.EnvelopeMessage,
		Content:    notice.Content,
		SenderID:   source.ID,
		SenderName: source.Username,
		ReceiverID: &match.TargetUserID,
		Timestamp:  notice.CreatedAt,
	})
	return match, nil
}

func proposalNotice(username string, teach, learn *models.UserSkill) string {
	return fmt.Sprintf("%s would like to teach you %s in exchange for %s.", username, skillName(teach), skillName(learn))
}

func skillName(record *models.UserSkill) string {
	if record != nil && record.Skill != nil {
		return record.Skill.Name
	}
	return "a skill"
}

// Connect accepts a match the caller is party to. Accepting twice is a no-op.
func (s *MatchService) Connect(ctx context.Context, matchID, userID uint) (*models.Match, error) {
	return s.transition(ctx, matchID, userID, models.MatchStatusAccepted)
}

func (s *MatchService) Reject(ctx context.Context, matchID, userID uint) (*models.Match, error) {
	return s.transition(ctx, matchID, userID, models.MatchStatusRejected)
}

func (s *MatchService) transition(ctx context.Context, matchID, userID uint, next models.MatchStatus) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(userID) {
		return nil, models.NewForbiddenError("You are not part of this match")
	}
	if !match.Status.CanTransitionTo(next) {
		return nil, models.NewConflictError(fmt.Sprintf("Match is already %s", match.Status))
	}
	if match.Status == next {
		return match, nil
	}

	if err := s.matchRepo.UpdateStatus(ctx, matchID, next); err != nil {
		return nil, err
	}
	match.Status = next
	match.UpdatedAt = time.Now().UTC()

	other := match.SourceUserID
	if other == userID {
		other = match.TargetUserID
	}
	s.push(ctx, other, models.ChatEnvelope{
		Type:      models.EnvelopeSystem,
		Content:   fmt.Sprintf("Match %d is now %s", match.ID, next),
		Timestamp: match.UpdatedAt,
	})
	return match, nil
}

func (s *MatchService) push(ctx context.Context, userID uint, env models.ChatEnvelope) {
	if s.pusher == nil {
		return
	}
	if err := s.pusher.PushToUser(ctx, userID, env); err != nil {
		logPushFailure(ctx, userID, err)
	}
}

func logPushFailure(ctx context.Context, userID uint, err error) {
	slog.WarnContext(ctx, "live push failed", "user_id", userID, "error", err)
}

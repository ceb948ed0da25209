package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"skillswap/internal/ai"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

const (
	ChatbotBusyReply        = "I'm currently unavailable due to high demand. Please try again in a few minutes."
	ChatbotErrorReply       = "Sorry, I'm having trouble processing your request right now. Please try again later."
	ChatbotEmptyReply       = "I'm sorry, I couldn't process your request."
	MatchAdviceFallback     = "I'm unable to provide personalized match suggestions right now. Please try again later."
	MatchAdviceEmptyReply   = "I couldn't generate match suggestions at this time."
	chatbotMaxTokens        = 300
	matchAdviceMaxTokens    = 250
	matchAdviceSystemPrompt = "You are SkillBot's matchmaking assistant. Help provide personalized advice for finding good skill matches on the platform."
)

type ChatbotService struct {
	userRepo      repository.UserRepository
	userSkillRepo repository.UserSkillRepository
	ai            ai.Client
}

func NewChatbotService(userRepo repository.UserRepository, userSkillRepo repository.UserSkillRepository, client ai.Client) *ChatbotService {
	return &ChatbotService{userRepo: userRepo, userSkillRepo: userSkillRepo, ai: client}
}

// Reply answers a SkillBot message. Provider failures become fixed copy
// rather than errors.
func (s *ChatbotService) Reply(ctx context.Context, userID uint, message string) (string, error) {
	message = strings.TrimSpace(message)
	if err := validation.ValidateMessage(message, validation.ChatbotMessageMaxSize); err != nil {
		return "", models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	records, err := s.userSkillRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return "", err
	}

	reply, err := s.ai.Chat(ctx, skillBotPrompt(user, records), message, ai.ChatOptions{MaxTokens: chatbotMaxTokens})
	if err != nil {
		if errors.Is(err, ai.ErrRateLimited) {
			return ChatbotBusyReply, nil
		}
		slog.WarnContext(ctx, "chatbot completion failed", "user_id", userID, "error", err)
		return ChatbotErrorReply, nil
	}
	if strings.TrimSpace(reply) == "" {
		return ChatbotEmptyReply, nil
	}
	return reply, nil
}

// MatchAdvice suggests what kind of partners suit the user's skills.
func (s *ChatbotService) MatchAdvice(ctx context.Context, userID uint) (string, error) {
	records, err := s.userSkillRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return "", err
	}
	teaching, learning := describeSkills(records)
	prompt := fmt.Sprintf(
		"Based on my profile, what kind of skill matches should I look for?\n\n"+
			"My teaching skills: %s\nMy learning interests: %s\n\n"+
			"Provide brief, specific advice on what types of users would be good matches for me, "+
			"and how I might improve my profile to find better matches.",
		teaching, learning)

	reply, err := s.ai.Chat(ctx, matchAdviceSystemPrompt, prompt, ai.ChatOptions{MaxTokens: matchAdviceMaxTokens})
	if err != nil {
		slog.WarnContext(ctx, "match advice failed", "user_id", userID, "error", err)
		return MatchAdviceFallback, nil
	}
	if strings.TrimSpace(reply) == "" {
		return MatchAdviceEmptyReply, nil
	}
	return reply, nil
}

func skillBotPrompt(user *models.User, records []models.UserSkill) string {
	bio := "No bio provided"
	if user.Bio != nil && *user.Bio != "" {
		bio = *user.Bio
	}
	teaching, learning := describeSkills(records)

	var b strings.Builder
	b.WriteString("You are SkillBot, an assistant for the SkillSwap platform. Your goal is to help users find learning partners, ")
	b.WriteString("improve their skills, and navigate the platform. Be friendly, encouraging, and helpful.\n\n")
	b.WriteString("SkillSwap is a skill-sharing platform where users can find learning partners based on complementary skills. ")
	b.WriteString("Users can teach skills they're good at and learn skills from others.\n\n")
	b.WriteString("Current user information:\n")
	fmt.Fprintf(&b, "- Username: %s\n", user.Username)
	fmt.Fprintf(&b, "- Bio: %s\n", bio)
	fmt.Fprintf(&b, "- Teaching skills: %s\n", teaching)
	fmt.Fprintf(&b, "- Learning skills: %s\n\n", learning)
	b.WriteString("Keep responses concise (max 3-4 sentences). Focus on being helpful with skill learning advice, ")
	b.WriteString("platform navigation help, and matchmaking suggestions.")
	return b.String()
}

func describeSkills(records []models.UserSkill) (teaching, learning string) {
	var teach, learn []string
	for i := range records {
		r := &records[i]
		label := fmt.Sprintf("%s (%s)", skillName(r), r.Proficiency)
		if r.Type == models.SkillTypeTeach {
			teach = append(teach, label)
		} else {
			learn = append(learn, label)
		}
	}
	return joinOrNone(teach), joinOrNone(learn)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

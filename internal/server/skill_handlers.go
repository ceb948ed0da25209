package server

import (
	"skillswap/internal/featureflags"
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUserSkills handles GET /api/users/current/skills
// @Summary My skill records
// @Tags skills
// @Security SessionToken
// @Produce json
// @Param type query string false "teach or learn"
// @Success 200 {array} models.UserSkill
// @Failure 400 {object} models.ErrorResponse
// @Router /users/current/skills [get]
func (s *Server) GetCurrentUserSkills(c *fiber.Ctx) error {
	records, err := s.skillService.ListForUser(c.UserContext(), currentUserID(c), c.Query("type"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(records)
}

// AddCurrentUserSkill handles POST /api/users/current/skills
// @Summary Declare a skill
// @Description Finds or creates the skill by name and links it to the current user
// @Tags skills
// @Security SessionToken
// @Accept json
// @Produce json
// @Param request body object{type=string,name=string,proficiency=string,description=string} true "Skill form"
// @Success 201 {object} models.UserSkill
// @Failure 400 {object} models.ErrorResponse
// @Router /users/current/skills [post]
func (s *Server) AddCurrentUserSkill(c *fiber.Ctx) error {
	var req struct {
		Type        string `json:"type"`
		Name        string `json:"name"`
		Proficiency string `json:"proficiency"`
		Description string `json:"description"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	record, err := s.skillService.AddSkill(c.UserContext(), service.AddSkillInput{
		UserID:      currentUserID(c),
		Type:        models.SkillType(req.Type),
		Name:        req.Name,
		Proficiency: models.Proficiency(req.Proficiency),
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// UpdateCurrentUserSkill handles PATCH /api/users/current/skills/:id
// @Summary Update a skill record
// @Tags skills
// @Security SessionToken
// @Accept json
// @Produce json
// @Param id path int true "Skill record ID"
// @Param request body object{proficiency=string,description=string,progress=int,partnerCount=int,teacher=string} true "Fields to change"
// @Success 200 {object} models.UserSkill
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/current/skills/{id} [patch]
func (s *Server) UpdateCurrentUserSkill(c *fiber.Ctx) error {
	recordID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Proficiency  *models.Proficiency `json:"proficiency"`
		Description  *string             `json:"description"`
		Progress     *int                `json:"progress"`
		PartnerCount *int                `json:"partnerCount"`
		Teacher      *string             `json:"teacher"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	record, err := s.skillService.UpdateSkill(c.UserContext(), service.UpdateSkillInput{
		UserID:       currentUserID(c),
		RecordID:     recordID,
		Proficiency:  req.Proficiency,
		Description:  req.Description,
		Progress:     req.Progress,
		PartnerCount: req.PartnerCount,
		Teacher:      req.Teacher,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(record)
}

// ListSkills handles GET /api/skills
// @Summary Skill catalogue
// @Tags skills
// @Security SessionToken
// @Produce json
// @Success 200 {array} models.Skill
// @Router /skills [get]
func (s *Server) ListSkills(c *fiber.Ctx) error {
	skills, err := s.skillService.ListCatalogue(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(skills)
}

// CreateSkill handles POST /api/skills
// @Summary Add a skill to the catalogue
// @Tags skills
// @Security SessionToken
// @Accept json
// @Produce json
// @Param request body object{name=string,category=string} true "Skill"
// @Success 201 {object} models.Skill
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /skills [post]
func (s *Server) CreateSkill(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	skill, err := s.skillService.CreateSkill(c.UserContext(), req.Name, req.Category)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// GetSkillRecommendations handles GET /api/users/current/skill-recommendations
// @Summary Learning recommendations
// @Description AI suggestions based on the user's declared skills
// @Tags skills
// @Security SessionToken
// @Produce json
// @Success 200 {object} object{recommendations=[]models.Recommendation}
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /users/current/skill-recommendations [get]
func (s *Server) GetSkillRecommendations(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if !s.featureFlags.Enabled(featureflags.AIRecommendations, userID) {
		return c.JSON(fiber.Map{"recommendations": []models.Recommendation{}})
	}

	recs, err := s.recommendationService.ForUser(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"recommendations": recs})
}

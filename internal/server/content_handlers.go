package server

import (
	"io"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

type uploadResponse struct {
	Message string          `json:"message"`
	Summary *string         `json:"summary"`
	Content *models.Content `json:"content"`
}

// UploadContent handles POST /api/uploads and POST /api/content/upload
// @Summary Upload learning content
// @Description PDF files are summarized; MP4 files get a placeholder summary
// @Tags content
// @Security SessionToken
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or MP4"
// @Success 201 {object} uploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /content/upload [post]
func (s *Server) UploadContent(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondServiceError(c, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return respondServiceError(c, err)
	}

	content, err := s.contentService.Upload(c.UserContext(), service.UploadContentInput{
		UserID:   currentUserID(c),
		Filename: fh.Filename,
		Content:  data,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Video uploaded"
	switch {
	case content.Status == models.ContentStatusFailed:
		message = "File stored but summary failed"
	case content.Type == models.ContentTypePDF:
		message = "PDF processed"
	}
	return c.Status(fiber.StatusCreated).JSON(uploadResponse{
		Message: message,
		Summary: content.Summary,
		Content: content,
	})
}

// GetContent handles GET /api/content
// @Summary My uploads
// @Tags content
// @Security SessionToken
// @Produce json
// @Success 200 {array} models.Content
// @Router /content [get]
func (s *Server) GetContent(c *fiber.Ctx) error {
	items, err := s.contentService.ListForUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}

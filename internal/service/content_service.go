package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"skillswap/internal/ai"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/storage"
	"skillswap/internal/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	VideoSummaryPlaceholder = "Video summary is under construction"
	DefaultUploadMaxBytes   = 50 << 20
)

type UploadContentInput struct {
	UserID   uint
	Filename string
	Content  []byte
}

type ContentService struct {
	contentRepo repository.ContentRepository
	store       storage.Storage
	ai          ai.Client
	maxBytes    int64
	extractPDF  func([]byte) (string, error)
}

type contentMetadata struct {
	MimeType     string `json:"mimeType"`
	OriginalName string `json:"originalName"`
	Extracted    int    `json:"extractedChars,omitempty"`
	Error        string `json:"error,omitempty"`
}

func NewContentService(contentRepo repository.ContentRepository, store storage.Storage, client ai.Client, maxBytes int64) *ContentService {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	return &ContentService{
		contentRepo: contentRepo,
		store:       store,
		ai:          client,
		maxBytes:    maxBytes,
		extractPDF:  ai.ExtractPDFText,
	}
}

func (s *ContentService) ListForUser(ctx context.Context, userID uint) ([]models.Content, error) {
	return s.contentRepo.ListByUser(ctx, userID)
}

// Upload stores a PDF or MP4 and records it. PDFs are summarized inline;
// videos get a placeholder summary. A summarization failure marks the record
// failed; only provider throttling is returned as an error.
func (s *ContentService) Upload(ctx context.Context, in UploadContentInput) (*models.Content, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}
	kind, mimeType, err := validation.DetectUpload(in.Content)
	if err != nil {
		return nil, models.NewValidationError("Invalid file type. Only PDF and MP4 files are allowed.")
	}

	filename := filepath.Base(strings.TrimSpace(in.Filename))
	if filename == "" || filename == "." || filename == "/" {
		filename = "upload"
	}
	key := fmt.Sprintf("content/%d/%s%s", in.UserID, uuid.NewString(), extensionFor(kind))
	if err := s.store.Save(ctx, key, bytes.NewReader(in.Content), mimeType); err != nil {
		return nil, models.NewInternalError(err)
	}

	meta := contentMetadata{MimeType: mimeType, OriginalName: filename}
	content := &models.Content{
		UserID:   in.UserID,
		Filename: filename,
		Type:     kind,
		Path:     key,
		URL:      s.store.URL(key),
		Size:     int64(len(in.Content)),
		Status:   models.ContentStatusProcessing,
		Metadata: encodeMetadata(meta),
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, err
	}

	var summary string
	var sumErr error
	switch kind {
	case models.ContentTypePDF:
		summary, sumErr = s.summarizePDF(ctx, in.Content, &meta)
	default:
		summary = VideoSummaryPlaceholder
	}

	if sumErr != nil {
		slog.WarnContext(ctx, "content summary failed", "content_id", content.ID, "error", sumErr)
		meta.Error = sumErr.Error()
		content.Status = models.ContentStatusFailed
	} else {
		content.Summary = &summary
		content.Status = models.ContentStatusComplete
	}
	content.Metadata = encodeMetadata(meta)
	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, err
	}

	if errors.Is(sumErr, ai.ErrRateLimited) {
		return content, models.NewUpstreamRateLimitedError(sumErr)
	}
	return content, nil
}

func (s *ContentService) summarizePDF(ctx context.Context, data []byte, meta *contentMetadata) (string, error) {
	text, err := s.extractPDF(data)
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	meta.Extracted = len([]rune(text))
	if strings.TrimSpace(text) == "" {
		return "", errors.New("pdf contains no extractable text")
	}
	return s.ai.Summarize(ctx, ai.TruncateForSummary(text))
}

func extensionFor(kind models.ContentType) string {
	if kind == models.ContentTypePDF {
		return ".pdf"
	}
	return ".mp4"
}

func encodeMetadata(meta contentMetadata) datatypes.JSON {
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// Package testutil holds in-memory doubles shared by service and server tests.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"sync"

	"skillswap/internal/ai"
	"skillswap/internal/models"
)

// MemoryStorage keeps stored objects in a map.
type MemoryStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	SaveErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Objects: make(map[string][]byte)}
}

func (s *MemoryStorage) Save(_ context.Context, key string, r io.Reader, _ string) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = data
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	return nil
}

func (s *MemoryStorage) URL(key string) string {
	return "/uploads/" + key
}

func (s *MemoryStorage) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.Objects[key]
	return data, ok
}

// FakeAI is a scriptable ai.Client. Nil funcs fall back to ai.Noop.
type FakeAI struct {
	SummarizeFn func(ctx context.Context, text string) (string, error)
	RecommendFn func(ctx context.Context, skills []ai.SkillInput) ([]models.Recommendation, error)
	ChatFn      func(ctx context.Context, system, user string, opts ai.ChatOptions) (string, error)
}

func (f *FakeAI) Summarize(ctx context.Context, text string) (string, error) {
	if f.SummarizeFn != nil {
		return f.SummarizeFn(ctx, text)
	}
	return ai.Noop{}.Summarize(ctx, text)
}

func (f *FakeAI) Recommend(ctx context.Context, skills []ai.SkillInput) ([]models.Recommendation, error) {
	if f.RecommendFn != nil {
		return f.RecommendFn(ctx, skills)
	}
	return ai.Noop{}.Recommend(ctx, skills)
}

func (f *FakeAI) Chat(ctx context.Context, system, user string, opts ai.ChatOptions) (string, error) {
	if f.ChatFn != nil {
		return f.ChatFn(ctx, system, user, opts)
	}
	return ai.Noop{}.Chat(ctx, system, user, opts)
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

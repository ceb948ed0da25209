package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/models"
	"skillswap/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key-12345678901234567890123456789012"

type testEnv struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
	store  *testutil.MemoryStorage
	ai     *testutil.FakeAI
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenSQLiteMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		JWTSecret:       testJWTSecret,
		SessionTTLHours: 1,
		Env:             "test",
		FeatureFlags:    "chatbot=on,ai_recommendations=on,targeted_chat=on",
		UploadMaxMB:     5,
	}
	for _, m := range mutate {
		m(cfg)
	}

	store := testutil.NewMemoryStorage()
	fakeAI := &testutil.FakeAI{}
	s := newServer(cfg, db, nil, store, fakeAI)
	return &testEnv{server: s, app: s.App(), db: db, store: store, ai: fakeAI}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) upload(t *testing.T, path, token, field, filename string, data []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// register creates a user over HTTP and returns its session token and id.
func (e *testEnv) register(t *testing.T, username string) (string, uint) {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body authResponse
	decode(t, resp, &body)
	return body.SessionID, body.User.ID
}

// addSkill declares a skill for the token's user and returns the record id.
func (e *testEnv) addSkill(t *testing.T, token string, typ models.SkillType, name string) uint {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/users/current/skills", token, map[string]string{
		"type":        string(typ),
		"name":        name,
		"proficiency": string(models.ProficiencyIntermediate),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec models.UserSkill
	decode(t, resp, &rec)
	return rec.ID
}

func decode(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func errorBody(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	decode(t, resp, &body)
	return body
}

func newRequest(method, path, authorization string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// propose creates a match from the token's user and returns its id.
func (e *testEnv) propose(t *testing.T, token string, targetID, teachID, learnID uint) uint {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/matches", token, map[string]uint{
		"targetUserId": targetID,
		"teachSkillId": teachID,
		"learnSkillId": learnID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var match models.Match
	decode(t, resp, &match)
	return match.ID
}

package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/internal/domain"
	"github.com/lingochat/memories-backend/internal/handler"
	"github.com/lingochat/memories-backend/internal/middleware"
	"github.com/lingochat/memories-backend/internal/migration"
	"github.com/lingochat/memories-backend/internal/repository"
	"github.com/lingochat/memories-backend/internal/service"
	"github.com/lingochat/memories-backend/pkg/database"
	"github.com/lingochat/memories-backend/pkg/jwt"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MemoriesAPISuite is an integration test suite for the memories endpoints
type MemoriesAPISuite struct {
	suite.Suite
	db         *gorm.DB
	router     *gin.Engine
	jwtManager *jwt.Manager
	tokens     map[string]string
}

func TestMemoriesAPISuite(t *testing.T) {
	suite.Run(t, new(MemoriesAPISuite))
}

func (s *MemoriesAPISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	// Use SQLite for tests (no external DB dependency)
	db, err := database.OpenMemory()
	s.Require().NoError(err)
	s.Require().NoError(migration.Run(db))
	s.db = db

	s.Require().NoError(db.Create(&[]domain.User{
		{ID: "user-a", FullName: "Ana Souza", ProfilePic: "https://cdn.test/a.png"},
		{ID: "user-b", FullName: "Bae Jisoo", ProfilePic: "https://cdn.test/b.png"},
		{ID: "user-c", FullName: "Chen Wei"},
	}).Error)
	s.Require().NoError(db.Create(&[]domain.Friendship{
		{UserID: "user-a", FriendID: "user-b"},
		{UserID: "user-b", FriendID: "user-a"},
	}).Error)

	s.jwtManager = jwt.NewManager("test-secret-key-for-integration-tests", 900)
	s.tokens = map[string]string{}
	for _, id := range []string{"user-a", "user-b", "user-c"} {
		token, err := s.jwtManager.GenerateToken(id, "")
		s.Require().NoError(err)
		s.tokens[id] = token
	}

	identity := service.NewIdentityProvider(repository.NewUserRepository(db))
	memorySvc := service.NewMemoryService(repository.NewMemoryRepository(db), identity, service.DefaultOptions())

	s.router = gin.New()
	s.router.Use(middleware.I18n(nil))
	Setup(s.router,
		handler.NewMemoryHandler(memorySvc, identity, domain.FeedPageSize),
		handler.NewHealthHandler(db, nil),
		Options{JWT: s.jwtManager, CookieName: "jwt"},
	)
}

func (s *MemoriesAPISuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Meta    *common.Meta      `json:"meta"`
	Error   *common.ErrorInfo `json:"error"`
}

func (s *MemoriesAPISuite) do(method, path, user string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		// user-a authenticates with the session cookie, everyone else with a bearer token
		if user == "user-a" {
			req.AddCookie(&http.Cookie{Name: "jwt", Value: s.tokens[user]})
		} else {
			req.Header.Set("Authorization", "Bearer "+s.tokens[user])
		}
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *MemoriesAPISuite) memory(env envelope) domain.MemoryResponse {
	var m domain.MemoryResponse
	s.Require().NoError(json.Unmarshal(env.Data, &m))
	return m
}

func (s *MemoriesAPISuite) memories(env envelope) []domain.MemoryResponse {
	var list []domain.MemoryResponse
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	return list
}

func (s *MemoriesAPISuite) create(user, content string) domain.MemoryResponse {
	w, env := s.do(http.MethodPost, "/api/memories", user, map[string]interface{}{"content": content})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.memory(env)
}

func (s *MemoriesAPISuite) TestFeedLifecycle() {
	// A posts
	created := s.create("user-a", "  hi  ")
	s.Equal("hi", created.Content)
	s.Equal("user-a", created.User.ID)
	s.Equal("Ana Souza", created.User.FullName)
	s.Nil(created.Image)
	s.Empty(created.Likes)
	s.Empty(created.Comments)

	// B sees it through the friendship, C does not
	w, env := s.do(http.MethodGet, "/api/memories", "user-b", nil)
	s.Equal(http.StatusOK, w.Code)
	feed := s.memories(env)
	s.Require().Len(feed, 1)
	s.Equal(created.ID, feed[0].ID)
	s.Equal(1, env.Meta.Count)

	w, env = s.do(http.MethodGet, "/api/memories", "user-c", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(s.memories(env))

	likePath := fmt.Sprintf("/api/memories/%d/like", created.ID)

	// B likes, then unlikes
	w, env = s.do(http.MethodPut, likePath, "user-b", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal([]domain.LikerSummary{{ID: "user-b", FullName: "Bae Jisoo"}}, s.memory(env).Likes)

	w, env = s.do(http.MethodPut, likePath, "user-b", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(s.memory(env).Likes)

	// C cannot reach a memory outside its feed
	w, env = s.do(http.MethodPut, likePath, "user-c", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Memory not found", env.Error.Message)

	// B comments
	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/memories/%d/comment", created.ID), "user-b",
		map[string]string{"content": "Que legal!"})
	s.Equal(http.StatusCreated, w.Code)
	withComment := s.memory(env)
	s.Require().Len(withComment.Comments, 1)
	s.Equal("Que legal!", withComment.Comments[0].Content)
	s.Equal("Bae Jisoo", withComment.Comments[0].User.FullName)
	s.Equal("https://cdn.test/b.png", withComment.Comments[0].User.ProfilePic)

	// B cannot delete A's memory
	deletePath := fmt.Sprintf("/api/memories/%d", created.ID)
	w, env = s.do(http.MethodDelete, deletePath, "user-b", nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("You can only delete your own memories", env.Error.Message)

	// A deletes
	w, env = s.do(http.MethodDelete, deletePath, "user-a", nil)
	s.Equal(http.StatusOK, w.Code)
	var msg common.MessageBody
	s.Require().NoError(json.Unmarshal(env.Data, &msg))
	s.Equal("Memory deleted successfully", msg.Message)

	w, env = s.do(http.MethodGet, "/api/memories/user/user-a", "user-b", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(s.memories(env))

	var comments int64
	s.db.Model(&domain.MemoryComment{}).Count(&comments)
	s.Zero(comments)

	// gone for good
	w, _ = s.do(http.MethodDelete, deletePath, "user-a", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *MemoriesAPISuite) TestFeedOrderingAndAuthorListing() {
	first := s.create("user-a", "first")
	second := s.create("user-b", "second")
	third := s.create("user-c", "third")

	_, env := s.do(http.MethodGet, "/api/memories", "user-a", nil)
	feed := s.memories(env)
	s.Require().Len(feed, 2)
	s.Equal(second.ID, feed[0].ID)
	s.Equal(first.ID, feed[1].ID)

	// author listing is not scoped by friendship
	w, env := s.do(http.MethodGet, "/api/memories/user/user-c", "user-a", nil)
	s.Equal(http.StatusOK, w.Code)
	byC := s.memories(env)
	s.Require().Len(byC, 1)
	s.Equal(third.ID, byC[0].ID)
	s.Equal("Chen Wei", byC[0].User.FullName)

	w, env = s.do(http.MethodGet, "/api/memories/user/nobody", "user-a", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(s.memories(env))
}

func (s *MemoriesAPISuite) TestCreateWithImage() {
	w, env := s.do(http.MethodPost, "/api/memories", "user-a", map[string]string{
		"content": "sunset",
		"image":   "https://cdn.test/sunset.jpg",
	})
	s.Equal(http.StatusCreated, w.Code)
	m := s.memory(env)
	s.Require().NotNil(m.Image)
	s.Equal("https://cdn.test/sunset.jpg", *m.Image)
}

func (s *MemoriesAPISuite) TestCreateImageStoredAsSent() {
	padded := "  https://cdn.test/a.png \n"
	w, env := s.do(http.MethodPost, "/api/memories", "user-a", map[string]string{
		"content": "padded",
		"image":   padded,
	})
	s.Equal(http.StatusCreated, w.Code)
	m := s.memory(env)
	s.Require().NotNil(m.Image)
	s.Equal(padded, *m.Image)

	var stored domain.Memory
	s.Require().NoError(s.db.First(&stored, m.ID).Error)
	s.Require().NotNil(stored.Image)
	s.Equal(padded, *stored.Image)

	w, env = s.do(http.MethodPost, "/api/memories", "user-a", map[string]string{
		"content": "blank",
		"image":   " \t ",
	})
	s.Equal(http.StatusCreated, w.Code)
	s.Nil(s.memory(env).Image)
}

func (s *MemoriesAPISuite) TestValidationErrors() {
	w, env := s.do(http.MethodPost, "/api/memories", "user-a", map[string]string{"content": "   "})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Content is required", env.Error.Message)

	w, env = s.do(http.MethodPost, "/api/memories", "user-a", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Content is required", env.Error.Message)

	created := s.create("user-a", "hello")
	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/memories/%d/comment", created.ID), "user-b",
		map[string]string{"content": ""})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Comment content is required", env.Error.Message)

	w, _ = s.do(http.MethodPut, "/api/memories/abc/like", "user-a", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPut, "/api/memories/999/like", "user-a", nil)
	s.Equal(http.StatusNotFound, w.Code)

	var count int64
	s.db.Model(&domain.Memory{}).Count(&count)
	s.Equal(int64(1), count)

	var comments int64
	s.db.Model(&domain.MemoryComment{}).Count(&comments)
	s.Zero(comments)
}

func (s *MemoriesAPISuite) TestRequiresAuthentication() {
	w, env := s.do(http.MethodGet, "/api/memories", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("UNAUTHORIZED", env.Error.Code)
	s.Equal("Unauthorized - No token provided", env.Error.Message)

	w, _ = s.do(http.MethodPost, "/api/memories", "", map[string]string{"content": "x"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *MemoriesAPISuite) TestLocalizedErrors() {
	req := httptest.NewRequest(http.MethodDelete, "/api/memories/12345", nil)
	req.Header.Set("Authorization", "Bearer "+s.tokens["user-b"])
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("es", w.Header().Get("Content-Language"))
	s.Contains(w.Body.String(), "Recuerdo no encontrado")
}

func (s *MemoriesAPISuite) TestHealth() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"database":"ok"`)
	s.Contains(w.Body.String(), `"cache":"disabled"`)
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/artem13815/win/api/http"
	"github.com/artem13815/win/api/http/handlers"
	"github.com/artem13815/win/api/http/middleware"
	"github.com/artem13815/win/pkg/auth"
	"github.com/artem13815/win/pkg/compatibility"
	"github.com/artem13815/win/pkg/discovery"
	"github.com/artem13815/win/pkg/feed"
	"github.com/artem13815/win/pkg/health"
	"github.com/artem13815/win/pkg/imaging"
	"github.com/artem13815/win/pkg/profile"
	"github.com/artem13815/win/pkg/repository/memory"
	"github.com/artem13815/win/pkg/security/jwt"
)

const (
	secret = "test-secret"
	issuer = "win"
)

type stubProvider struct {
	url string
	err error
}

func (p stubProvider) Generate(context.Context, string) (string, error) { return p.url, p.err }
func (p stubProvider) Edit(context.Context, imaging.EditRequest) (string, error) {
	return p.url, p.err
}

type failingChecker struct{}

func (failingChecker) Name() string                { return "postgres" }
func (failingChecker) Check(context.Context) error { return errors.New("connection refused") }

type testAPI struct {
	app   *fiber.App
	token string
}

func newTestAPI(t *testing.T, provider imaging.Provider, checkers ...health.Checker) *testAPI {
	t.Helper()
	ctx := context.Background()

	profileRepo := memory.NewProfileRepository()
	profiles := profile.NewService(profileRepo)
	for _, p := range []profile.Profile{
		{ID: "user", Name: "Алексей", Age: 28, Interests: []string{"Книги", "Музыка"}, ZodiacSign: "Лев", Psychotype: "ENTJ"},
		{ID: "1", Name: "Анна", Age: 25, Interests: []string{"Музыка"}, ZodiacSign: "Близнецы", Psychotype: "ENFP"},
		{ID: "2", Name: "Мария", Age: 27, ZodiacSign: "Рак", Psychotype: "INFJ"},
	} {
		_, err := profiles.Create(ctx, p)
		require.NoError(t, err)
	}

	scorer := compatibility.NewScorer(compatibility.Tables{})
	authUC := auth.NewAuthService(memory.NewAccountRepository(), profiles, jwt.NewGenerator(secret, issuer, time.Hour))
	require.NoError(t, authUC.EnsureAccount(ctx, "alexey@win.local", "win-demo", "user"))
	login, err := authUC.Login(ctx, "alexey@win.local", "win-demo")
	require.NoError(t, err)

	app := fiber.New()
	app.Use(middleware.RequestLogger(zap.NewNop()))
	httpapi.Register(app, httpapi.Handlers{
		Auth:      handlers.NewAuthHandler(authUC),
		Health:    handlers.NewHealthHandler(health.NewService(checkers...)),
		Profile:   handlers.NewProfileHandler(profiles, scorer),
		Discovery: handlers.NewDiscoveryHandler(discovery.NewService(profiles, memory.NewSessionStore(), scorer)),
		Feed:      handlers.NewFeedHandler(feed.NewService(memory.NewPostRepository(), nil), profiles),
		Images:    handlers.NewImageHandler(imaging.NewService(provider, zap.NewNop())),
	}, jwt.NewAuthMiddleware(secret, issuer))

	return &testAPI{app: app, token: login.Token}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errorBody struct {
	Error string `json:"error"`
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, nil)
	var body map[string]string

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/health", nil, &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/ready", nil, &body))

	failing := newTestAPI(t, nil, failingChecker{})
	assert.Equal(t, http.StatusServiceUnavailable, failing.do(t, http.MethodGet, "/api/v1/ready", nil, &body))
	assert.Contains(t, body["details"], "postgres")
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	api := newTestAPI(t, nil)
	api.token = ""
	var e errorBody

	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/v1/discover", nil, &e))
	assert.NotEmpty(t, e.Error)
}

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t, nil)
	api.token = ""

	var reg struct {
		Token   string          `json:"token"`
		Profile profile.Profile `json:"profile"`
	}
	status := api.do(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email": "olga@example.com", "password": "secret1", "name": "Ольга", "age": 26,
	}, &reg)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "Ольга", reg.Profile.Name)

	var e errorBody
	status = api.do(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email": "olga@example.com", "password": "secret1", "name": "Ольга", "age": 26,
	}, &e)
	assert.Equal(t, http.StatusConflict, status)

	status = api.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "olga@example.com", "password": "nope-nope",
	}, &e)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", e.Error)

	api.token = reg.Token
	var me profile.Profile
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/me/profile", nil, &me))
	assert.Equal(t, reg.Profile.ID, me.ID)
}

func TestBrowseFlow(t *testing.T) {
	api := newTestAPI(t, nil)

	var card discovery.Card
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/discover", nil, &card))
	assert.Equal(t, "1", card.Profile.ID)
	assert.Equal(t, 2, card.Total)
	assert.Equal(t, 50, card.Compatibility.Interests)

	var d discovery.Decision
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/discover/like", nil, &d))
	assert.True(t, d.Matched)
	require.NotNil(t, d.Next)
	assert.Equal(t, "2", d.Next.Profile.ID)

	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/discover/dislike", nil, &d))
	assert.False(t, d.Matched)

	var matches []discovery.Match
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/matches", nil, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Анна", matches[0].Profile.Name)

	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/discover/reset", nil, &card))
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/matches", nil, &matches))
	assert.Empty(t, matches)
}

func TestProfileEditing(t *testing.T) {
	api := newTestAPI(t, nil)

	var p profile.Profile
	status := api.do(t, http.MethodPatch, "/api/v1/me/profile", map[string]any{
		"bio": "Люблю книги", "interests": []string{"Книги", " Кино ", "Книги"},
	}, &p)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Люблю книги", p.Bio)
	assert.Equal(t, []string{"Книги", "Кино"}, p.Interests)
	assert.Equal(t, "Алексей", p.Name)

	var e errorBody
	status = api.do(t, http.MethodPatch, "/api/v1/me/profile", map[string]any{"age": 0}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "age must be between 1 and 150", e.Error)

	var view struct {
		Profile       profile.Profile      `json:"profile"`
		Compatibility *compatibility.Score `json:"compatibility"`
	}
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/profiles/2", nil, &view))
	assert.Equal(t, "Мария", view.Profile.Name)
	require.NotNil(t, view.Compatibility)
	assert.Equal(t, 70, view.Compatibility.Zodiac)

	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/v1/profiles/ghost", nil, &e))
}

func TestFeed(t *testing.T) {
	api := newTestAPI(t, nil)

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/v1/posts", map[string]string{"content": " "}, &e))

	var post feed.Post
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/v1/posts", map[string]any{
		"content": "Привет из Москвы",
		"media":   []map[string]string{{"type": "image", "url": "https://example.com/p.jpg"}},
	}, &post))
	assert.Equal(t, "Алексей", post.UserName)

	base := "/api/v1/posts/" + post.ID.String()
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, base+"/like", nil, &post))
	assert.Equal(t, 1, post.Likes)

	var c feed.Comment
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, base+"/comments", map[string]string{"text": "Круто"}, &c))

	var cs []feed.Comment
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, base+"/comments", nil, &cs))
	require.Len(t, cs, 1)
	assert.Equal(t, "Круто", cs[0].Text)

	var posts []feed.Post
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/posts?limit=5", nil, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].Comments)

	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/v1/posts/not-a-uuid/like", nil, &e))
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodPost, "/api/v1/posts/6f1c1a52-0000-4000-8000-000000000009/like", nil, &e))
}

func TestImages(t *testing.T) {
	var out map[string]string

	ok := newTestAPI(t, stubProvider{url: "https://img.example.com/x.png"})
	require.Equal(t, http.StatusOK, ok.do(t, http.MethodPost, "/api/v1/images/generate", map[string]string{"prompt": "кот"}, &out))
	assert.Equal(t, "https://img.example.com/x.png", out["url"])

	assert.Equal(t, http.StatusBadRequest, ok.do(t, http.MethodPost, "/api/v1/images/generate", map[string]string{}, &out))
	assert.Equal(t, "prompt is required", out["error"])

	assert.Equal(t, http.StatusBadRequest, ok.do(t, http.MethodPost, "/api/v1/images/edit", map[string]string{"prompt": "x"}, &out))
	assert.Equal(t, "image and prompt are required", out["error"])

	failing := newTestAPI(t, stubProvider{err: &imaging.ProviderError{Status: 400, Message: "Слишком длинный запрос"}})
	assert.Equal(t, http.StatusBadGateway, failing.do(t, http.MethodPost, "/api/v1/images/generate", map[string]string{"prompt": "x"}, &out))
	assert.Equal(t, "Слишком длинный запрос", out["error"])

	silent := newTestAPI(t, stubProvider{err: errors.New("dial tcp: timeout")})
	assert.Equal(t, http.StatusBadGateway, silent.do(t, http.MethodPost, "/api/v1/images/generate", map[string]string{"prompt": "x"}, &out))
	assert.Equal(t, imaging.GenerateFallback, out["error"])

	disabled := newTestAPI(t, nil)
	assert.Equal(t, http.StatusServiceUnavailable, disabled.do(t, http.MethodPost, "/api/v1/images/generate", map[string]string{"prompt": "x"}, &out))
}

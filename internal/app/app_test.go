package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"skill-exchange/internal/config"
	"skill-exchange/internal/repository/memory"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type signupData struct {
	User struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	AccessToken string `json:"access_token"`
}

type matchesBody struct {
	Matches []struct {
		ID            int64    `json:"id"`
		Name          string   `json:"name"`
		Email         string   `json:"email"`
		SkillsToOffer []string `json:"skills_to_offer"`
		OfferMatches  []string `json:"offer_matches"`
		LearnMatches  []string `json:"learn_matches"`
	} `json:"matches"`
	Count     int  `json:"count"`
	AIEnabled bool `json:"ai_enabled"`
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{AppName: "skill-exchange", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{AccessSecret: "test-access-secret", AccessExpiresIn: time.Hour},
		Matching: config.MatchingConfig{
			Workers:   2,
			CacheSize: 16,
		},
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	a := New(testConfig(), Deps{
		Users:    store.Users(),
		Chats:    store.Chats(),
		Messages: store.Messages(),
		Ratings:  store.Ratings(),
		DB:       okPinger{},
	}, nil)
	return a.Fiber
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func signup(t *testing.T, app *fiber.App, name, email string, offer, learn []string) signupData {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"name":            name,
		"email":           email,
		"password":        "password123",
		"skills_to_offer": offer,
		"skills_to_learn": learn,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	var out signupData
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.AccessToken)
	return out
}

func path(format string, id int64) string {
	return format + strconv.FormatInt(id, 10)
}

func TestApp_MatchesAreReciprocal(t *testing.T) {
	app := newTestApp(t)

	alice := signup(t, app, "Alice", "alice@example.test", []string{"Guitar"}, []string{"Spanish"})
	bob := signup(t, app, "Bob", "bob@example.test", []string{"spanish "}, []string{"guitar"})
	signup(t, app, "Carol", "carol@example.test", []string{"Cooking"}, []string{"Spanish"})

	resp, body := doJSON(t, app, http.MethodGet, path("/api/v1/matches/", alice.User.ID), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var got matchesBody
	require.NoError(t, json.Unmarshal(body, &got))
	assert.False(t, got.AIEnabled)
	require.Equal(t, 1, got.Count)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, bob.User.ID, got.Matches[0].ID)
	assert.Equal(t, "bob@example.test", got.Matches[0].Email)
	assert.Equal(t, []string{"Guitar"}, got.Matches[0].OfferMatches)
	assert.Equal(t, []string{"Spanish"}, got.Matches[0].LearnMatches)
}

func TestApp_MatchesErrors(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/matches/abc", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/matches/999", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, fiber.StatusNotFound, env.Status)
	assert.Equal(t, "User not found", env.Message)
}

func TestApp_AuthFlow(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "Alice", "alice@example.test", nil, nil)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"name": "Other", "email": "ALICE@example.test", "password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"name": "Short", "email": "short@example.test", "password": "123",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "alice@example.test", "password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "alice@example.test", "password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	var login struct {
		UserID      int64  `json:"user_id"`
		Name        string `json:"name"`
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "Alice", login.Name)
	assert.NotEmpty(t, login.AccessToken)
}

func TestApp_ProfileUpdateRequiresOwner(t *testing.T) {
	app := newTestApp(t)
	alice := signup(t, app, "Alice", "alice@example.test", nil, nil)
	bob := signup(t, app, "Bob", "bob@example.test", nil, nil)

	update := map[string]any{"bio": "teaches guitar", "skills_to_offer": []string{"Guitar"}}

	resp, _ := doJSON(t, app, http.MethodPut, path("/api/v1/profile/", alice.User.ID), "", update)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, path("/api/v1/profile/", alice.User.ID), bob.AccessToken, update)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPut, path("/api/v1/profile/", alice.User.ID), alice.AccessToken, update)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	resp, body = doJSON(t, app, http.MethodGet, path("/api/v1/profile/", alice.User.ID), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	var prof struct {
		Bio           *string  `json:"bio"`
		SkillsToOffer []string `json:"skills_to_offer"`
		SkillsToLearn []string `json:"skills_to_learn"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &prof))
	require.NotNil(t, prof.Bio)
	assert.Equal(t, "teaches guitar", *prof.Bio)
	assert.Equal(t, []string{"Guitar"}, prof.SkillsToOffer)
	assert.Equal(t, []string{}, prof.SkillsToLearn)
}

func TestApp_ChatAndRatingFlow(t *testing.T) {
	app := newTestApp(t)
	alice := signup(t, app, "Alice", "alice@example.test", nil, nil)
	bob := signup(t, app, "Bob", "bob@example.test", nil, nil)
	carol := signup(t, app, "Carol", "carol@example.test", nil, nil)

	pair := map[string]any{"user1_id": alice.User.ID, "user2_id": bob.User.ID}

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/chats", alice.AccessToken, pair)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/chats", bob.AccessToken, map[string]any{
		"user1_id": bob.User.ID, "user2_id": alice.User.ID,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/chats", carol.AccessToken, pair)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	msgPath := path("/api/v1/chats/", created.ID) + "/messages"
	resp, body = doJSON(t, app, http.MethodPost, msgPath, alice.AccessToken, map[string]any{
		"sender_id": alice.User.ID, "content": "hola!",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	resp, _ = doJSON(t, app, http.MethodPost, msgPath, carol.AccessToken, map[string]any{
		"sender_id": carol.User.ID, "content": "hi",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, msgPath, carol.AccessToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, msgPath, bob.AccessToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, path("/api/v1/chats/user/", bob.User.ID), bob.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &env))
	var summaries []struct {
		ID          int64 `json:"id"`
		UnreadCount int   `json:"unread_count"`
		IsRated     bool  `json:"is_rated_by_current_user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].UnreadCount)
	assert.False(t, summaries[0].IsRated)

	resp, _ = doJSON(t, app, http.MethodPut, msgPath+"/read", bob.AccessToken, map[string]any{"user_id": bob.User.ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	rate := map[string]any{
		"rater_id": bob.User.ID, "rated_id": alice.User.ID, "chat_id": created.ID, "rating": 5,
	}
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/ratings", bob.AccessToken, rate)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/ratings", bob.AccessToken, rate)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, path("/api/v1/profile/", alice.User.ID), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &env))
	var prof struct {
		AverageRating float64 `json:"average_rating"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &prof))
	assert.InDelta(t, 5.0, prof.AverageRating, 0.001)

	resp, _ = doJSON(t, app, http.MethodDelete, path("/api/v1/chats/", created.ID), carol.AccessToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, path("/api/v1/chats/", created.ID), alice.AccessToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, msgPath, alice.AccessToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestApp_HealthAndUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	var health map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "up", health["database"])
	assert.Equal(t, "disabled", health["cache"])
	assert.Equal(t, false, health["ai_enabled"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, fiber.StatusNotFound, env.Status)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr("  ")
	assert.Error(t, err)
}

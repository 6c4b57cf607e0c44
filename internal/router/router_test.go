package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/style-gallery-api/config"
	"github.com/oksasatya/style-gallery-api/internal/application"
	"github.com/oksasatya/style-gallery-api/internal/container"
	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	"github.com/oksasatya/style-gallery-api/internal/interface/middleware"
	"github.com/oksasatya/style-gallery-api/internal/testutil"
	"github.com/oksasatya/style-gallery-api/pkg/helpers"
	"github.com/oksasatya/style-gallery-api/pkg/validation"
)

func init() { gin.SetMode(gin.TestMode) }

type testAPI struct {
	engine     *gin.Engine
	jwt        *helpers.JWTManager
	users      *testutil.Users
	designs    *testutil.Designs
	dispatcher *application.Dispatcher
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	RequestID string `json:"request_id"`
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	container.SetConfig(&config.Config{CookieDomain: "localhost", MetricsEnabled: true})
	container.SetLogger(logger)
	container.SetJWT(jwt)
	container.SetRedis(nil)

	users, designs, notes := testutil.NewUsers(), testutil.NewDesigns(), testutil.NewNotifications()
	notifSvc := application.NewNotificationService(notes, users, nil, "", false, logger)
	dispatcher := application.NewDispatcher(notifSvc, nil, logger, time.Second)
	svc := Services{
		Auth:          application.NewAuthService(users, jwt, nil, logger),
		Social:        application.NewSocialService(users, designs, dispatcher, nil, nil, logger),
		Designs:       application.NewDesignService(designs, users, nil, nil, logger),
		Notifications: notifSvc,
		Dispatcher:    dispatcher,
	}

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := NewRegistry(r)
	RegisterServices(reg, svc)
	reg.RegisterAll()
	return &testAPI{engine: r, jwt: jwt, users: users, designs: designs, dispatcher: dispatcher}
}

func (a *testAPI) token(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, _, err := a.jwt.GenerateAccessToken(u.ID, "test-session")
	require.NoError(t, err)
	return tok
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.serve(t, req)
}

func (a *testAPI) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type likeData struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}

func TestLikeEndpoints(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.Individual(t, api.users, "owner")
	alice := testutil.Individual(t, api.users, "alice")
	d := testutil.Design(t, api.designs, owner, "Sunset")
	path := "/api/designs/" + d.ID + "/like"

	w, env := api.do(t, http.MethodPost, path, api.token(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Design liked successfully", env.Message)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, likeData{IsLiked: true, LikesCount: 1}, decode[likeData](t, env.Data))

	w, env = api.do(t, http.MethodPost, path, api.token(t, alice), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	assert.Equal(t, "Design already liked", env.Error.Message)

	w, env = api.do(t, http.MethodPost, path, api.token(t, owner), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot like your own design", env.Error.Message)

	w, env = api.do(t, http.MethodDelete, path, api.token(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Design unliked successfully", env.Message)
	assert.Equal(t, likeData{IsLiked: false, LikesCount: 0}, decode[likeData](t, env.Data))

	w, env = api.do(t, http.MethodDelete, path, api.token(t, alice), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Design not liked yet", env.Error.Message)
}

func TestEngagementRequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.Individual(t, api.users, "owner")
	d := testutil.Design(t, api.designs, owner, "Sunset")

	for _, path := range []string{"/like", "/share", "/comment"} {
		w, env := api.do(t, http.MethodPost, "/api/designs/"+d.ID+path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	}
}

func TestUnknownDesignIsNotFound(t *testing.T) {
	api := newTestAPI(t)
	alice := testutil.Individual(t, api.users, "alice")

	for _, id := range []string{testutil.NewID(), "not-an-id"} {
		w, env := api.do(t, http.MethodPost, "/api/designs/"+id+"/like", api.token(t, alice), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
		assert.Equal(t, "Design not found", env.Error.Message)
	}
}

func TestCommentEndpoints(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.Individual(t, api.users, "owner")
	alice := &entity.User{Email: "alice@example.com", Identity: entity.Individual{FirstName: "Alice", LastName: "Smith"}}
	require.NoError(t, api.users.Create(t.Context(), alice))
	d := testutil.Design(t, api.designs, owner, "Sunset")
	path := "/api/designs/" + d.ID + "/comment"

	w, env := api.do(t, http.MethodPost, path, api.token(t, alice), gin.H{"text": strings.Repeat("a", 501)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, env = api.do(t, http.MethodPost, path, api.token(t, alice), gin.H{"text": "  love it  "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Comment added successfully", env.Message)

	w, env = api.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	type listed struct {
		Comments []struct {
			ID     string `json:"_id"`
			Text   string `json:"text"`
			UserID struct {
				DisplayName string `json:"displayName"`
			} `json:"userId"`
		} `json:"comments"`
		CommentsCount int `json:"commentsCount"`
	}
	got := decode[listed](t, env.Data)
	assert.Equal(t, 1, got.CommentsCount)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "love it", got.Comments[0].Text)
	assert.Equal(t, "Alice Smith", got.Comments[0].UserID.DisplayName)
	assert.NotEmpty(t, got.Comments[0].ID)
}

func TestShareEndpoint(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.Individual(t, api.users, "owner")
	d := testutil.Design(t, api.designs, owner, "Sunset")

	var last envelope
	for i := 0; i < 3; i++ {
		w, env := api.do(t, http.MethodPost, "/api/designs/"+d.ID+"/share", api.token(t, owner), nil)
		require.Equal(t, http.StatusOK, w.Code)
		last = env
	}
	assert.Equal(t, "Design shared successfully", last.Message)
	assert.Equal(t, int64(3), decode[struct {
		SharesCount int64 `json:"sharesCount"`
	}](t, last.Data).SharesCount)
}

func TestFollowEndpoints(t *testing.T) {
	api := newTestAPI(t)
	a := testutil.Individual(t, api.users, "a")
	b := testutil.Organization(t, api.users, "B Corp")
	path := "/api/users/" + b.ID + "/follow"
	type followData struct {
		IsFollowing    bool `json:"isFollowing"`
		FollowersCount int  `json:"followersCount"`
		FollowingCount int  `json:"followingCount"`
	}

	w, env := api.do(t, http.MethodPost, path, api.token(t, a), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User followed successfully", env.Message)
	assert.Equal(t, followData{true, 1, 1}, decode[followData](t, env.Data))

	w, env = api.do(t, http.MethodPost, path, api.token(t, a), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already following this user", env.Error.Message)

	w, env = api.do(t, http.MethodPost, "/api/users/"+a.ID+"/follow", api.token(t, a), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot follow yourself", env.Error.Message)

	w, env = api.do(t, http.MethodDelete, path, api.token(t, a), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User unfollowed successfully", env.Message)
	assert.Equal(t, followData{false, 0, 0}, decode[followData](t, env.Data))

	w, env = api.do(t, http.MethodDelete, path, api.token(t, a), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Not following this user", env.Error.Message)

	w, env = api.do(t, http.MethodGet, "/api/users/"+b.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[map[string]any](t, env.Data)
	assert.Equal(t, "B Corp", profile["displayName"])
	assert.NotContains(t, profile, "email")
}

func TestDeleteDesignEndpoint(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.Individual(t, api.users, "owner")
	alice := testutil.Individual(t, api.users, "alice")
	d := testutil.Design(t, api.designs, owner, "Sunset")
	path := "/api/designs/" + d.ID

	w, env := api.do(t, http.MethodDelete, path, api.token(t, alice), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
	assert.Equal(t, "You can only delete your own designs", env.Error.Message)

	w, env = api.do(t, http.MethodDelete, path, api.token(t, owner), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Design deleted successfully", env.Message)

	w, _ = api.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndListDesigns(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.Individual(t, api.users, "owner")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Sunset"))
	require.NoError(t, mw.WriteField("category", "fashion"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/designs", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+api.token(t, owner))

	w, env := api.serve(t, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, env.Data)
	assert.Equal(t, "Sunset", created["title"])
	assert.Equal(t, owner.ID, created["userId"])
	assert.Equal(t, float64(0), created["likesCount"])

	w, env = api.do(t, http.MethodGet, "/api/designs?limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Designs []map[string]any `json:"designs"`
	}](t, env.Data)
	require.Len(t, list.Designs, 1)

	w, env = api.do(t, http.MethodGet, "/api/designs?limit=1000", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "limit")
}

func TestNotificationInboxEndpoints(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.Individual(t, api.users, "owner")
	alice := testutil.Individual(t, api.users, "alice")
	d := testutil.Design(t, api.designs, owner, "Sunset")

	w, _ := api.do(t, http.MethodPost, "/api/designs/"+d.ID+"/like", api.token(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	api.dispatcher.Wait()

	w, env := api.do(t, http.MethodGet, "/api/notifications", api.token(t, owner), nil)
	require.Equal(t, http.StatusOK, w.Code)
	inbox := decode[struct {
		Notifications []struct {
			ID      string `json:"_id"`
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"notifications"`
		UnreadCount int64 `json:"unreadCount"`
	}](t, env.Data)
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, "design_liked", inbox.Notifications[0].Type)
	assert.Equal(t, `alice liked your design "Sunset"`, inbox.Notifications[0].Message)
	assert.Equal(t, int64(1), inbox.UnreadCount)

	w, _ = api.do(t, http.MethodPatch, "/api/notifications/"+inbox.Notifications[0].ID+"/read", api.token(t, alice), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(t, http.MethodPatch, "/api/notifications/"+inbox.Notifications[0].ID+"/read", api.token(t, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = api.do(t, http.MethodPatch, "/api/notifications/read-all", api.token(t, owner), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decode[struct {
		Updated int64 `json:"updated"`
	}](t, env.Data).Updated)
}

func TestRegisterLoginMe(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":       "acme@example.com",
		"password":    "password123",
		"userType":    "organization",
		"companyName": "Acme",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Result().Cookies())

	w, env = api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"email": "bad", "password": "short", "userType": "robot"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "password")
	assert.Contains(t, env.Error.Details, "userType")

	w, env = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "acme@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decode[struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
		} `json:"user"`
	}](t, env.Data)
	assert.Equal(t, "acme@example.com", tokens.User.Email)
	assert.Equal(t, "Acme", tokens.User.DisplayName)

	w, env = api.do(t, http.MethodGet, "/api/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "acme@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", env.Error.Message)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, env = api.do(t, http.MethodPut, "/api/designs/abc/like", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", env.Error.Code)
}

func TestMetricsExposeEngagementCounters(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.Individual(t, api.users, "owner")
	alice := testutil.Individual(t, api.users, "alice")
	d := testutil.Design(t, api.designs, owner, "Sunset")
	w, _ := api.do(t, http.MethodPost, "/api/designs/"+d.ID+"/like", api.token(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	api.dispatcher.Wait()

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	w = httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `gallery_engagement_actions_total{action="design_like"}`)
	assert.Contains(t, body, `gallery_dispatch_total{channel="notification",result="ok"}`)
}

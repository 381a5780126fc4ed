package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testutil.Config()
	db := testutil.NewDB(t, cfg)
	return &testServer{t: t, app: Build(cfg, db), db: db, cfg: cfg}
}

type result struct {
	status  int
	body    map[string]interface{}
	raw     string
	cookies []*http.Cookie
	header  http.Header
}

func (s *testServer) do(method, path string, body interface{}, cookies ...*http.Cookie) result {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)

	res := result{status: resp.StatusCode, raw: string(raw), cookies: resp.Cookies(), header: resp.Header}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(raw, &res.body))
	}
	return res
}

func sessionCookie(t *testing.T, res result) *http.Cookie {
	t.Helper()
	for _, c := range res.cookies {
		if c.Name == "auth-token" {
			return c
		}
	}
	t.Fatalf("no auth-token cookie in response")
	return nil
}

// signUp registers username and returns its id and session cookie.
func (s *testServer) signUp(username, email string) (string, *http.Cookie) {
	s.t.Helper()
	res := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "User " + username, "email": email, "username": username, "password": "longenough",
	})
	require.Equal(s.t, fiber.StatusCreated, res.status, res.raw)
	user := res.body["user"].(map[string]interface{})
	return user["id"].(string), sessionCookie(s.t, res)
}

func TestRegister_ThenDuplicate(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"name": "A", "email": "a@b.com", "username": "abc", "password": "longenough"}

	res := s.do(http.MethodPost, "/api/auth/register", body)
	require.Equal(t, fiber.StatusCreated, res.status, res.raw)
	user := res.body["user"].(map[string]interface{})
	assert.Equal(t, "abc", user["username"])
	assert.NotContains(t, res.raw, "password")
	assert.True(t, sessionCookie(t, res).HttpOnly)

	res = s.do(http.MethodPost, "/api/auth/register", body)
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "Email already exists", res.body["error"])

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginLogoutSession(t *testing.T) {
	s := newTestServer(t)
	s.signUp("abc", "a@b.com")

	res := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com", "password": "wrongpass"})
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, "Invalid email or password", res.body["error"])

	res = s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@b.com", "password": "longenough"})
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, "Invalid email or password", res.body["error"])

	res = s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com"})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "Email and password are required", res.body["error"])

	res = s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com", "password": "longenough"})
	require.Equal(t, fiber.StatusOK, res.status, res.raw)
	assert.NotEmpty(t, res.body["token"])
	assert.NotContains(t, res.raw, "password")
	cookie := sessionCookie(t, res)

	res = s.do(http.MethodGet, "/api/auth/session", nil, cookie)
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, true, res.body["authenticated"])

	res = s.do(http.MethodGet, "/api/auth/session", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, false, res.body["authenticated"])

	res = s.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, fiber.StatusOK, res.status)
	cleared := sessionCookie(t, res)
	assert.Empty(t, cleared.Value)
}

func TestBearerHeaderAccepted(t *testing.T) {
	s := newTestServer(t)
	s.signUp("abc", "a@b.com")

	res := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com", "password": "longenough"})
	require.Equal(t, fiber.StatusOK, res.status)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+res.body["token"].(string))
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	res := s.do(http.MethodGet, "/api/projects", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, "Unauthorized: invalid or expired token", res.body["error"])

	res = s.do(http.MethodPost, "/api/users/update-projects", map[string]interface{}{"userId": "x"})
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
}

func TestCheckAvailability(t *testing.T) {
	s := newTestServer(t)
	s.signUp("abc", "a@b.com")

	res := s.do(http.MethodPost, "/api/auth/check-username", map[string]string{"username": "abc"})
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, false, res.body["available"])

	res = s.do(http.MethodPost, "/api/auth/check-username", map[string]string{"username": "a-b"})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "Username can only contain letters, numbers, underscores, and dots", res.body["error"])

	res = s.do(http.MethodPost, "/api/auth/check-email", map[string]string{"email": "new@b.com"})
	assert.Equal(t, true, res.body["available"])

	res = s.do(http.MethodPost, "/api/auth/check-email", map[string]string{"email": "bad"})
	assert.Equal(t, "Invalid email format", res.body["error"])
}

func TestOwnershipCheck(t *testing.T) {
	s := newTestServer(t)
	userID, cookie := s.signUp("abc", "a@b.com")
	otherID, _ := s.signUp("other", "o@b.com")

	project := map[string]interface{}{"title": "T", "description": "D"}

	res := s.do(http.MethodPost, "/api/users/update-projects", map[string]interface{}{"project": project}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "User ID is required", res.body["error"])

	res = s.do(http.MethodPost, "/api/users/update-projects", map[string]interface{}{"userId": otherID, "project": project}, cookie)
	assert.Equal(t, fiber.StatusForbidden, res.status)
	assert.Equal(t, "Forbidden", res.body["error"])

	res = s.do(http.MethodPost, "/api/users/update-projects", map[string]interface{}{"userId": "not-a-uuid", "project": project}, cookie)
	assert.Equal(t, fiber.StatusNotFound, res.status)
	assert.Equal(t, "User not found", res.body["error"])

	res = s.do(http.MethodPost, "/api/users/update-projects", map[string]interface{}{"userId": userID, "project": project}, cookie)
	assert.Equal(t, fiber.StatusCreated, res.status, res.raw)
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestServer(t)
	userID, cookie := s.signUp("abc", "a@b.com")

	res := s.do(http.MethodPost, "/api/projects", map[string]interface{}{
		"userId":  userID,
		"project": map[string]interface{}{"id": "site", "title": "Site", "description": "D", "tech": "Go, Fiber"},
	}, cookie)
	require.Equal(t, fiber.StatusCreated, res.status, res.raw)
	project := res.body["project"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Go", "Fiber"}, project["tech"])
	assert.Equal(t, "Draft", project["status"])

	res = s.do(http.MethodPost, "/api/projects", map[string]interface{}{
		"userId":  userID,
		"project": map[string]interface{}{"id": "site", "title": "Again", "description": "D"},
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "Project ID already exists", res.body["error"])

	res = s.do(http.MethodPost, "/api/users/update-projects", map[string]interface{}{
		"userId":  userID,
		"isEdit":  true,
		"project": map[string]interface{}{"id": "site", "title": "Site v2", "description": "D", "status": "Published"},
	}, cookie)
	require.Equal(t, fiber.StatusOK, res.status, res.raw)

	res = s.do(http.MethodPost, "/api/users/update-projects", map[string]interface{}{
		"userId":  userID,
		"isEdit":  true,
		"project": map[string]interface{}{"id": "missing", "title": "T", "description": "D"},
	}, cookie)
	assert.Equal(t, fiber.StatusNotFound, res.status)
	assert.Equal(t, "Project not found", res.body["error"])

	res = s.do(http.MethodGet, "/api/projects", nil, cookie)
	require.Equal(t, fiber.StatusOK, res.status)
	projects := res.body["projects"].([]interface{})
	require.Len(t, projects, 1)
	assert.Equal(t, "Site v2", projects[0].(map[string]interface{})["title"])

	res = s.do(http.MethodGet, "/api/projects/published?username=abc", nil)
	assert.Len(t, res.body["projects"], 1)

	res = s.do(http.MethodGet, "/api/projects/published?username=nobody", nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)

	res = s.do(http.MethodPost, "/api/users/delete-project", map[string]interface{}{"userId": userID, "projectId": "site"}, cookie)
	assert.Equal(t, fiber.StatusOK, res.status)
	res = s.do(http.MethodPost, "/api/users/delete-project", map[string]interface{}{"userId": userID, "projectId": "site"}, cookie)
	assert.Equal(t, fiber.StatusNotFound, res.status)
}

func TestSkillRoutes(t *testing.T) {
	s := newTestServer(t)
	userID, cookie := s.signUp("abc", "a@b.com")

	res := s.do(http.MethodPut, "/api/users/update-skills", map[string]interface{}{
		"userId": userID,
		"skill":  map[string]interface{}{"name": "Go", "category": "Backend", "proficiency": 150},
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "Proficiency must be between 0 and 100", res.body["error"])

	res = s.do(http.MethodPost, "/api/skills", map[string]interface{}{
		"userId": userID,
		"skill":  map[string]interface{}{"name": "Go", "category": "Backend", "proficiency": 90},
	}, cookie)
	require.Equal(t, fiber.StatusCreated, res.status, res.raw)
	skillID := res.body["skill"].(map[string]interface{})["id"].(string)

	res = s.do(http.MethodGet, "/api/skills", nil, cookie)
	assert.Len(t, res.body["skills"], 1)

	res = s.do(http.MethodPost, "/api/users/delete-skill", map[string]interface{}{"userId": userID, "skillId": skillID}, cookie)
	assert.Equal(t, fiber.StatusOK, res.status)
}

func TestAccountAndAbout(t *testing.T) {
	s := newTestServer(t)
	userID, cookie := s.signUp("abc", "a@b.com")
	s.signUp("other", "o@b.com")

	res := s.do(http.MethodPost, "/api/users/update-account", map[string]interface{}{
		"userId":  userID,
		"updates": map[string]interface{}{"username": "other"},
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "Username already exists", res.body["error"])

	res = s.do(http.MethodPost, "/api/users/update-account", map[string]interface{}{
		"userId":  userID,
		"updates": map[string]interface{}{"name": "Renamed", "password": "ignored1"},
	}, cookie)
	require.Equal(t, fiber.StatusOK, res.status, res.raw)
	assert.Equal(t, "Renamed", res.body["user"].(map[string]interface{})["name"])
	assert.NotContains(t, res.raw, "password")

	res = s.do(http.MethodPost, "/api/users/update-about", map[string]interface{}{
		"userId": userID,
		"about":  map[string]interface{}{"title": "Engineer", "unknown": "x"},
	}, cookie)
	require.Equal(t, fiber.StatusOK, res.status, res.raw)
	assert.Equal(t, "Engineer", res.body["about"].(map[string]interface{})["title"])

	res = s.do(http.MethodPost, "/api/users/update-password", map[string]interface{}{
		"userId": userID, "currentPassword": "wrongpass", "newPassword": "newpassword",
	}, cookie)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, "Current password is incorrect", res.body["error"])

	res = s.do(http.MethodGet, "/api/users/me", nil, cookie)
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.EqualValues(t, 0, res.body["unreadCount"])
}

func TestPublicPortfolio(t *testing.T) {
	s := newTestServer(t)
	userID, cookie := s.signUp("abc", "a@b.com")

	for _, p := range []map[string]interface{}{
		{"title": "Hidden", "description": "D"},
		{"title": "Shown", "description": "D", "status": "Published"},
	} {
		res := s.do(http.MethodPost, "/api/projects", map[string]interface{}{"userId": userID, "project": p}, cookie)
		require.Equal(t, fiber.StatusCreated, res.status, res.raw)
	}

	res := s.do(http.MethodGet, "/api/users/abc", nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Len(t, res.body["projects"], 1)
	assert.NotContains(t, res.raw, "password")

	page := s.do(http.MethodGet, "/abc", nil)
	assert.Equal(t, fiber.StatusOK, page.status)
	assert.Contains(t, page.raw, "Shown")
	assert.NotContains(t, page.raw, "Hidden")

	res = s.do(http.MethodPost, "/api/users/update-status", map[string]interface{}{"userId": userID, "isActive": false}, cookie)
	require.Equal(t, fiber.StatusOK, res.status, res.raw)

	res = s.do(http.MethodGet, "/api/users/abc", nil)
	assert.Equal(t, false, res.body["user"].(map[string]interface{})["isActive"])
	assert.Empty(t, res.body["projects"])

	page = s.do(http.MethodGet, "/abc", nil)
	assert.Equal(t, fiber.StatusOK, page.status)
	assert.Contains(t, page.raw, "offline")

	assert.Equal(t, fiber.StatusNotFound, s.do(http.MethodGet, "/nobody", nil).status)
	assert.Equal(t, fiber.StatusNotFound, s.do(http.MethodGet, "/api/users/nobody", nil).status)
	assert.Equal(t, fiber.StatusNotFound, s.do(http.MethodGet, "/favicon.ico", nil).status)
}

func TestMessageRoutes(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.signUp("abc", "a@b.com")
	_, otherCookie := s.signUp("other", "o@b.com")

	msg := map[string]string{
		"toUsername": "nobody", "fromName": "V", "fromEmail": "v@example.com", "subject": "Hi", "body": "Hello",
	}
	res := s.do(http.MethodPost, "/api/messages", msg)
	assert.Equal(t, fiber.StatusNotFound, res.status)
	assert.Equal(t, "User not found", res.body["error"])

	var count int64
	require.NoError(t, s.db.Model(&models.Message{}).Count(&count).Error)
	assert.Zero(t, count)

	msg["toUsername"] = "abc"
	res = s.do(http.MethodPost, "/api/messages", msg)
	require.Equal(t, fiber.StatusCreated, res.status, res.raw)
	id := res.body["data"].(map[string]interface{})["id"].(string)

	res = s.do(http.MethodGet, "/api/messages", nil, cookie)
	assert.EqualValues(t, 1, res.body["unreadCount"])

	res = s.do(http.MethodPut, "/api/messages/"+id, nil, otherCookie)
	assert.Equal(t, fiber.StatusNotFound, res.status)

	res = s.do(http.MethodPut, "/api/messages/"+id, nil, cookie)
	require.Equal(t, fiber.StatusOK, res.status, res.raw)
	assert.Equal(t, true, res.body["data"].(map[string]interface{})["isRead"])

	res = s.do(http.MethodPut, "/api/messages/"+id, map[string]bool{"isRead": false}, cookie)
	assert.Equal(t, false, res.body["data"].(map[string]interface{})["isRead"])

	assert.Equal(t, fiber.StatusNotFound, s.do(http.MethodDelete, "/api/messages/"+id, nil, otherCookie).status)
	assert.Equal(t, fiber.StatusOK, s.do(http.MethodDelete, "/api/messages/"+id, nil, cookie).status)
}

func TestPageGuards(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.signUp("abc", "a@b.com")

	res := s.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, fiber.StatusFound, res.status)
	assert.Equal(t, "/login?next=%2Fdashboard", res.header.Get("Location"))

	res = s.do(http.MethodGet, "/dashboard", nil, cookie)
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.Contains(t, res.raw, "/abc")
	for _, endpoint := range []string{"/api/users/update-about", "/api/projects", "/api/skills", "/api/users/delete-project", "/api/users/delete-skill", "/api/messages"} {
		assert.Contains(t, res.raw, endpoint)
	}

	res = s.do(http.MethodGet, "/login", nil, cookie)
	assert.Equal(t, fiber.StatusFound, res.status)
	assert.Equal(t, "/dashboard", res.header.Get("Location"))

	assert.Equal(t, fiber.StatusOK, s.do(http.MethodGet, "/register", nil).status)
}

func TestRateLimitOnMessages(t *testing.T) {
	cfg := testutil.Config()
	cfg.RateLimitMessages = 2
	db := testutil.NewDB(t, cfg)
	s := &testServer{t: t, app: Build(cfg, db), db: db, cfg: cfg}

	body := map[string]string{"toUsername": "nobody", "fromName": "V", "fromEmail": "v@example.com", "subject": "S", "body": "B"}
	assert.Equal(t, fiber.StatusNotFound, s.do(http.MethodPost, "/api/messages", body).status)
	assert.Equal(t, fiber.StatusNotFound, s.do(http.MethodPost, "/api/messages", body).status)

	res := s.do(http.MethodPost, "/api/messages", body)
	assert.Equal(t, fiber.StatusTooManyRequests, res.status)
	assert.Equal(t, "Too many requests, please try again later", res.body["error"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	res := s.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "ok", res.body["db"])

	res = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.Contains(t, res.raw, "http_requests_total")
}

func TestReservedUsernamesRejected(t *testing.T) {
	s := newTestServer(t)

	for _, name := range []string{"dashboard", "Login", "api", "metrics", "favicon.ico"} {
		res := s.do(http.MethodPost, "/api/auth/register", map[string]string{
			"name": "A", "email": strings.ToLower(name) + "@b.com", "username": name, "password": "longenough",
		})
		assert.Equal(t, fiber.StatusBadRequest, res.status, name)
		assert.Equal(t, "Username is not available", res.body["error"], name)
	}

	res := s.do(http.MethodPost, "/api/auth/check-username", map[string]string{"username": "metrics"})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "Username is not available", res.body["error"])

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOverlongPasswordIsValidationError(t *testing.T) {
	s := newTestServer(t)
	tooLong := strings.Repeat("p", 73)

	res := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "A", "email": "a@b.com", "username": "abc", "password": tooLong,
	})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "Password must be at most 72 bytes", res.body["error"])

	userID, cookie := s.signUp("abc", "a@b.com")
	res = s.do(http.MethodPost, "/api/users/update-password", map[string]interface{}{
		"userId": userID, "currentPassword": "longenough", "newPassword": tooLong,
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "Password must be at most 72 bytes", res.body["error"])
}

func TestPublicResponsesHideOwnerID(t *testing.T) {
	s := newTestServer(t)
	userID, cookie := s.signUp("abc", "a@b.com")

	res := s.do(http.MethodPost, "/api/projects", map[string]interface{}{
		"userId":  userID,
		"project": map[string]interface{}{"title": "Shown", "description": "D", "status": "Published"},
	}, cookie)
	require.Equal(t, fiber.StatusCreated, res.status, res.raw)
	res = s.do(http.MethodPost, "/api/skills", map[string]interface{}{
		"userId": userID,
		"skill":  map[string]interface{}{"name": "Go", "category": "Backend", "proficiency": 80},
	}, cookie)
	require.Equal(t, fiber.StatusCreated, res.status, res.raw)

	for _, path := range []string{"/api/projects/published?username=abc", "/api/users/abc"} {
		res = s.do(http.MethodGet, path, nil)
		require.Equal(t, fiber.StatusOK, res.status, path)
		assert.NotContains(t, res.raw, userID, path)
		assert.NotContains(t, res.raw, "userId", path)
	}

	res = s.do(http.MethodPost, "/api/messages", map[string]string{
		"toUsername": "abc", "fromName": "V", "fromEmail": "v@example.com", "subject": "Hi", "body": "Hello",
	})
	require.Equal(t, fiber.StatusCreated, res.status, res.raw)
	assert.NotContains(t, res.raw, userID)
	data := res.body["data"].(map[string]interface{})
	assert.Equal(t, "abc", data["toUsername"])
	assert.NotEmpty(t, data["id"])
}

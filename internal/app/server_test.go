// File: internal/app/server_test.go
package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"profolio_backend/internal/auth"
	"profolio_backend/internal/config"
	"profolio_backend/internal/profile"
	"profolio_backend/internal/shared"
	"profolio_backend/internal/store"
	"profolio_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		GinMode:            gin.TestMode,
		ServerHost:         "127.0.0.1",
		ServerPort:         "0",
		DatabasePath:       filepath.Join(t.TempDir(), "database.json"),
		StoreLockTimeout:   2 * time.Second,
		JWTSecretKey:       "test-secret-key-very-long-and-secure",
		JWTTokenExpiry:     7 * 24 * time.Hour,
		BcryptCost:         bcrypt.MinCost,
		CORSAllowedOrigins: []string{"*"},
	}
	logger := zap.NewNop()

	documentStore, err := store.New(cfg.DatabasePath, cfg.StoreLockTimeout, logger)
	require.NoError(t, err)

	tokenService := auth.NewJWTService(cfg, logger)
	accountService := user.NewService(user.NewStoreRepository(documentStore), tokenService, cfg, logger)
	profileService := profile.NewService(profile.NewStoreRepository(documentStore), logger)

	server, err := NewServer(cfg, logger, tokenService,
		user.NewHandler(accountService, logger),
		auth.NewHandler(logger),
		profile.NewHandler(profileService, logger),
	)
	require.NoError(t, err)
	return server
}

func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "ok", body["status"])
}

// TestAccountAndProfileFlow walks the full lifecycle: register, update the
// profile with a bearer token, then fail a login with a wrong password.
func TestAccountAndProfileFlow(t *testing.T) {
	s := newTestServer(t)

	// Register
	w := doJSON(t, s, http.MethodPost, "/api/register", "", gin.H{
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg user.AuthResponse
	decode(t, w, &reg)
	require.NotEmpty(t, reg.Token)
	assert.Equal(t, "a@x.com", reg.User.Email)
	assert.Equal(t, "a", reg.User.Name, "name defaults to the email local part")
	assert.NotEmpty(t, reg.User.ID)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	// Registration creates the companion profile.
	w = doJSON(t, s, http.MethodGet, "/api/profile", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var p shared.Profile
	decode(t, w, &p)
	assert.Equal(t, reg.User.ID, p.UserID)
	assert.Equal(t, "a@x.com", p.Email)
	assert.Equal(t, "a", p.Name)
	require.NotNil(t, p.Achievements)
	assert.Empty(t, p.Achievements)
	assert.Nil(t, p.UpdatedAt)

	// Partial update: only the title changes.
	w = doJSON(t, s, http.MethodPut, "/api/profile", reg.Token, gin.H{"title": "Engineer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &p)
	assert.Equal(t, "Engineer", p.Title)
	assert.Equal(t, "a", p.Name)
	assert.Equal(t, "a@x.com", p.Email)
	assert.Equal(t, "", p.Company)
	require.NotNil(t, p.UpdatedAt)

	// Wrong password fails with 401.
	w = doJSON(t, s, http.MethodPost, "/api/login", "", gin.H{
		"email":    "a@x.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct password succeeds and returns a fresh token.
	w = doJSON(t, s, http.MethodPost, "/api/login", "", gin.H{
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login user.AuthResponse
	decode(t, w, &login)
	assert.Equal(t, reg.User, login.User)
	assert.NotEmpty(t, login.Token)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)

	for name, body := range map[string]gin.H{
		"missing email":    {"password": "secret123"},
		"missing password": {"email": "a@x.com"},
		"malformed email":  {"email": "not-an-email", "password": "secret123"},
	} {
		w := doJSON(t, s, http.MethodPost, "/api/register", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s should be rejected", name)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/register", "", gin.H{
		"email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/register", "", gin.H{
		"email": "a@x.com", "password": "other456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, "USER_EXISTS", body["code"])
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/register", "", gin.H{
		"email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	wrong := doJSON(t, s, http.MethodPost, "/api/login", "", gin.H{
		"email": "a@x.com", "password": "nope",
	})
	unknown := doJSON(t, s, http.MethodPost, "/api/login", "", gin.H{
		"email": "b@x.com", "password": "secret123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String(),
		"responses must not reveal whether the email is registered")
}

func TestAuthGate(t *testing.T) {
	s := newTestServer(t)

	// No header at all.
	w := doJSON(t, s, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Header present but not bearer-shaped.
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Bearer-shaped but unverifiable token.
	w = doJSON(t, s, http.MethodGet, "/api/profile", "garbage.token.here", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerify(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/register", "", gin.H{
		"email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var reg user.AuthResponse
	decode(t, w, &reg)

	w = doJSON(t, s, http.MethodGet, "/api/verify", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Valid bool `json:"valid"`
		User  struct {
			UserID string `json:"user_id"`
			Email  string `json:"email"`
		} `json:"user"`
	}
	decode(t, w, &body)
	assert.True(t, body.Valid)
	assert.Equal(t, reg.User.ID, body.User.UserID)
	assert.Equal(t, "a@x.com", body.User.Email)

	w = doJSON(t, s, http.MethodGet, "/api/verify", "bogus", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProfile_AchievementsRoundTrip(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/register", "", gin.H{
		"email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var reg user.AuthResponse
	decode(t, w, &reg)

	w = doJSON(t, s, http.MethodPut, "/api/profile", reg.Token, gin.H{
		"achievements": []gin.H{
			{"id": "a1", "title": "Shipped v1", "verificationStatus": "verified"},
			{"title": "Spoke at a conference", "date": "2026-05-01"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var p shared.Profile
	decode(t, w, &p)
	require.Len(t, p.Achievements, 2)
	assert.Equal(t, "a1", p.Achievements[0].ID)
	assert.Equal(t, "verified", p.Achievements[0].VerificationStatus)
	assert.NotEmpty(t, p.Achievements[1].ID)
	assert.Equal(t, "pending", p.Achievements[1].VerificationStatus)
	assert.Equal(t, "2026-05-01", p.Achievements[1].Date)
}

func TestUnknownRouteIsAStandardError(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-review-backend/internal/shared/response"
	"restaurant-review-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(dev DevIdentity) (*gin.Engine, *jwt.Manager) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/me", AuthMiddleware(manager, dev), func(c *gin.Context) {
		identity, err := CurrentUser(c)
		if err != nil {
			response.FromError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID.String(), "name": identity.Name})
	})
	return r, manager
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, manager := newAuthRouter(DevIdentity{})
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID.String(), "alice")
	require.NoError(t, err)

	w := doGet(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user_id"])
	assert.Equal(t, "alice", body["name"])
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	r, _ := newAuthRouter(DevIdentity{})
	other := jwt.NewManager("other-secret", time.Hour)
	foreign, err := other.GenerateAccessToken(uuid.NewString(), "mallory")
	require.NoError(t, err)

	badSubject := jwt.NewManager("test-secret", time.Hour)
	notUUID, err := badSubject.GenerateAccessToken("not-a-uuid", "bob")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "MISSING_TOKEN"},
		{"wrong scheme", "Basic abc", "MISSING_TOKEN"},
		{"garbage token", "Bearer abc.def.ghi", "INVALID_TOKEN"},
		{"wrong secret", "Bearer " + foreign, "INVALID_TOKEN"},
		{"non uuid user", "Bearer " + notUUID, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestAuthMiddleware_DevIdentity(t *testing.T) {
	devID := uuid.New()
	r, _ := newAuthRouter(DevIdentity{
		Token:    "local-dev",
		Identity: Identity{UserID: devID, Name: "testUser"},
	})

	w := doGet(r, "Bearer local-dev")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), devID.String())

	// Without a configured dev token the same string is just an invalid JWT.
	plain, _ := newAuthRouter(DevIdentity{})
	w = doGet(plain, "Bearer local-dev")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUser_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := CurrentUser(c)
	assert.Error(t, err)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestSecureHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecureHeaders())
	r.GET("/", func(c *gin.Context) {
		c.Header("X-Powered-By", "gin")
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "0", w.Header().Get("X-XSS-Protection"))
	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age=15552000")
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")

	// Unmatched routes still carry the headers.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/config"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/notify"
	"github.com/romacabello/salon-scheduler/internal/testutil"
)

func newAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		TokenTTLMinutes:    10,
		Timezone:           "America/Argentina/Cordoba",
		BookingAutoConfirm: true,
	}
	notifier := notify.NewDispatcher(
		notify.NewWhatsAppBridge(""),
		notify.NewTelegram("", ""),
		zap.NewNop(),
	)

	r := gin.New()
	RegisterRoutes(r, db, cfg, zap.NewNop(), nil, notifier)
	return r, db
}

func adminToken(t *testing.T, r *gin.Engine, db *gorm.DB) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AdminUser{
		Email:        "admin@romacabello.com",
		PasswordHash: string(hashed),
	}).Error)

	form := url.Values{}
	form.Set("username", "admin@romacabello.com")
	form.Set("password", "secreto123")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func do(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicReadSurface(t *testing.T) {
	r, _ := newAPI(t)

	// The booking page reads these without a token.
	for _, path := range []string{
		"/api/services",
		"/api/blocks",
		"/api/availability",
	} {
		w := do(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestServiceUpdateAcceptsPutAndPatch(t *testing.T) {
	r, db := newAPI(t)
	token := adminToken(t, r, db)

	svc := models.Service{Name: "Corte Hombre", DurationMin: 30, Price: 10000, Active: true}
	require.NoError(t, db.Create(&svc).Error)

	w := do(r, http.MethodPut, "/api/services/1", token, gin.H{"price": 12000})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodPatch, "/api/services/1", token, gin.H{"price": 13000})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Service
	require.NoError(t, db.First(&got, svc.ID).Error)
	assert.Equal(t, float64(13000), got.Price)
}

func TestAuthMeRoute(t *testing.T) {
	r, db := newAPI(t)
	token := adminToken(t, r, db)

	w := do(r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "admin@romacabello.com")
}

func TestWriteSurfaceRequiresToken(t *testing.T) {
	r, _ := newAPI(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/services"},
		{http.MethodPut, "/api/services/1"},
		{http.MethodPost, "/api/blocks"},
		{http.MethodPut, "/api/availability/2030-06-10"},
		{http.MethodGet, "/api/appointments"},
		{http.MethodGet, "/api/auth/me"},
	}
	for _, tc := range cases {
		w := do(r, tc.method, tc.path, "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

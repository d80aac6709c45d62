package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/config"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/middleware"
	"github.com/romacabello/salon-scheduler/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// --------- Handlers ---------

// Login accepts the form-encoded credentials the admin frontend sends
// (username/password fields) and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("username")))
	password := c.PostForm("password")

	if email == "" || password == "" {
		httperr.BadRequest(c, "invalid_request", "Usuario y contraseña son obligatorios.")
		return
	}

	var user models.AdminUser
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.BadRequest(c, "invalid_credentials", "Email o contraseña incorrectos.")
			return
		}
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		httperr.BadRequest(c, "invalid_credentials", "Email o contraseña incorrectos.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Error interno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var user models.AdminUser
	if err := h.db.First(&user, adminID).Error; err != nil {
		httperr.Unauthorized(c, "invalid_token_payload", "Sesión inválida.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.BadRequest(c, "invalid_credentials", "La contraseña actual no coincide.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error interno.")
		return
	}

	user.PasswordHash = string(hashed)
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_password", "Error interno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	var user models.AdminUser
	if err := h.db.First(&user, adminID).Error; err != nil {
		httperr.Unauthorized(c, "invalid_token_payload", "Sesión inválida.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"email": user.Email,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.AdminUser) (string, error) {
	ttl := time.Duration(h.config.TokenTTLMinutes) * time.Minute

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

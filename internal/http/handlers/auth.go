package handlers

import (
	"net/http"
	"strings"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/http/middleware"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		RespondError(c, http.StatusBadRequest, "a valid email is required", nil)
		return
	}
	if len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "password must be at least 6 characters", nil)
		return
	}

	ctx := c.Request.Context()
	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondError(c, http.StatusBadRequest, "email already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", nil)
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.Users.Insert(ctx, user); err != nil {
		RespondDomainError(c, err)
		return
	}

	// profile row shares the auth user id, role defaults to "user"
	profile := models.Profile{
		ID:                user.ID,
		Username:          strings.TrimSpace(req.Username),
		PreferredLanguage: "fr",
		Role:              models.RoleUser,
	}
	if err := h.Profiles.Insert(ctx, profile); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "user_id="+user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": profile.Username,
			"role":     profile.Role,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	profile, err := h.Profiles.GetByID(ctx, user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    profile.Role,
		"exp":     time.Now().Add(h.Env.JWTExpiry).Unix(),
	})
	signed, err := token.SignedString([]byte(h.Env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", nil)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "user_id="+user.ID)
	c.JSON(http.StatusOK, gin.H{
		"token":   signed,
		"user":    gin.H{"id": user.ID, "email": user.Email},
		"profile": profile,
	})
}

// GET /api/auth/session
func (h *Handler) Session(c *gin.Context) {
	userID := middleware.UserID(c)
	profile, err := h.Profiles.GetByID(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"role":    profile.Role,
		"profile": profile,
	})
}

// POST /api/auth/logout. Stateless; tokens simply expire. Kept so the
// routing surface matches the client.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

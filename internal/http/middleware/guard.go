package middleware

import (
	"context"
	"net/http"
	"strings"

	"busbooking/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "user_id"
	userRoleKey = "user_role"
)

// Verdict is the guard's decision for a protected page.
type Verdict int

const (
	Allow Verdict = iota
	// RedirectToAuth: no valid session; the client should navigate to /auth.
	RedirectToAuth
	// RedirectToHome: a session without the required role; navigate to /.
	RedirectToHome
)

// Session identifies the authenticated caller once the guard allows.
type Session struct {
	UserID string
	Role   string
}

// RoleChecker answers the admin re-check against the profiles table.
type RoleChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Guard wraps protected routes. It validates the bearer token and, for admin
// pages, re-checks the role in the database rather than trusting the token
// claim, so a demoted admin loses access as soon as the row changes.
type Guard struct {
	Secret []byte
	Roles  RoleChecker
}

// Evaluate decides whether the holder of token may see the page.
func (g Guard) Evaluate(ctx context.Context, token string, requireAdmin bool) (Verdict, Session) {
	sess, ok := g.parseToken(token)
	if !ok {
		return RedirectToAuth, Session{}
	}
	if requireAdmin {
		isAdmin, err := g.Roles.IsAdmin(ctx, sess.UserID)
		if err != nil || !isAdmin {
			// a failing role lookup denies rather than grants
			return RedirectToHome, sess
		}
		sess.Role = models.RoleAdmin
	}
	return Allow, sess
}

func (g Guard) parseToken(raw string) (Session, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Session{}, false
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.Secret, nil
	})
	if err != nil || !tok.Valid {
		return Session{}, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, false
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return Session{}, false
	}
	return Session{UserID: userID, Role: role}, true
}

// Middleware enforces the guard on a route group, mapping verdicts to
// responses that carry the redirect target for the SPA.
func (g Guard) Middleware(requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		verdict, sess := g.Evaluate(c.Request.Context(), bearerToken(c), requireAdmin)
		switch verdict {
		case RedirectToAuth:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": "/auth",
			})
			return
		case RedirectToHome:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "admin role required",
				"redirect": "/",
			})
			return
		}
		c.Set(userIDKey, sess.UserID)
		c.Set(userRoleKey, sess.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	// SSE via EventSource cannot set headers; allow the token as a query param
	return c.Query("token")
}

// UserID returns the authenticated user id set by the guard.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// UserRole returns the authenticated role set by the guard.
func UserRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}

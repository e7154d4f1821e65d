package auth

import (
	"net/http"
	"time"

	"art-progression/config"
	"art-progression/internal/app/http/middleware"
	"art-progression/internal/domain/access"
	"art-progression/internal/infra/sessions"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

// Identity is what the identity provider tells us about the signed-in person.
type Identity struct {
	Email    string
	Name     string
	Picture  string
	Provider string
}

type Handler struct {
	Tokens sessions.TokenStore
}

// signIn applies the allow-list and issues a session token. Unauthorized
// identities get a denial and no session; the response has already been
// written when ok is false.
func (h *Handler) signIn(c *gin.Context, id Identity) (token, sid string, ok bool) {
	decision := access.AuthorizeAdmin(id.Email, config.ADMIN_EMAILS)
	switch decision {
	case access.DecisionDenied:
		zap.L().Warn("sign-in denied", zap.String("email", id.Email), zap.String("provider", id.Provider))
		c.JSON(http.StatusForbidden, gin.H{
			"error":     access.DenialMessage(id.Email),
			"signedOut": true,
		})
		return "", "", false
	case access.DecisionOpen:
		zap.L().Warn("ADMIN_EMAILS is empty: any signed-in account can administer the gallery",
			zap.String("email", id.Email))
	}

	sid = uuid.NewString()
	token, err := IssueSessionJWT(id, sid, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return "", "", false
	}

	zap.L().Info("admin signed in", zap.String("email", id.Email), zap.String("provider", id.Provider))
	return token, sid, true
}

func IssueSessionJWT(id Identity, sid string, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":   id.Email,
		"name":    id.Name,
		"picture": id.Picture,
		"auth":    id.Provider,
		"sid":     sid,
		"iat":     now.Unix(),
		"exp":     now.Add(sessionTTL).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}

// POST /auth/login
//
// Password sign-in for deployments without Google credentials.
func (h *Handler) PasswordLogin(c *gin.Context) {
	if !config.PasswordLoginConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Password sign-in is not configured", "kind": "configuration"})
		return
	}

	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(config.ADMIN_PASSWORD_HASH), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
		return
	}

	token, _, ok := h.signIn(c, Identity{Email: config.ADMIN_PASSWORD_EMAIL, Provider: "password"})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// POST /auth/signout
func (h *Handler) SignOut(c *gin.Context) {
	if sid := c.GetString(middleware.CtxSessionID); sid != "" && h.Tokens != nil {
		if err := h.Tokens.Delete(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

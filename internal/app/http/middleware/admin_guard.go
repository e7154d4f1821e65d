package middleware

import (
	"net/http"

	"art-progression/config"
	"art-progression/internal/domain/access"
	"art-progression/internal/infra/sessions"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAdmin re-checks the allow-list on every request. An identity that
// is no longer allowed is signed out: its cached photo-library token is
// dropped and the client is told to discard its session.
func RequireAdmin(tokens sessions.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(CtxEmail)
		decision := access.AuthorizeAdmin(email, config.ADMIN_EMAILS)

		if !decision.Authorized() {
			if sid := c.GetString(CtxSessionID); sid != "" && tokens != nil {
				if err := tokens.Delete(c.Request.Context(), sid); err != nil {
					zap.L().Warn("could not revoke session token", zap.String("email", email), zap.Error(err))
				}
			}
			zap.L().Warn("admin access denied", zap.String("email", email))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     access.DenialMessage(email),
				"signedOut": true,
			})
			return
		}

		c.Set(CtxAdminDecision, string(decision))
		c.Next()
	}
}

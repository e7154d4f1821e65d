package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"art-progression/config"
	"art-progression/internal/infra/photos"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const stateCookie = "oauth_state"

func googleOAuthConfig() *oauth2.Config {
	scopes := []string{"openid", "email", "profile"}
	if config.GOOGLE_PHOTOS_ENABLED {
		scopes = append(scopes, photos.Scope)
	}
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func (h *Handler) GoogleStart(c *gin.Context) {
	if !config.GoogleConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured", "kind": "configuration"})
		return
	}

	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	c.SetCookie(stateCookie, state, 300, "/", "", false, true)

	url := googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	// one-shot state
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	tok, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id := Identity{
		Email:    claims.Email,
		Name:     claims.Name,
		Picture:  claims.Picture,
		Provider: "google",
	}
	tokenString, sid, ok := h.signIn(c, id)
	if !ok {
		return
	}

	if ttl, ok := photoTokenTTL(tok, time.Now()); ok && config.GOOGLE_PHOTOS_ENABLED && h.Tokens != nil {
		if err := h.Tokens.Put(c.Request.Context(), sid, tok.AccessToken, ttl); err != nil {
			zap.L().Warn("could not cache photo library token", zap.String("email", id.Email), zap.Error(err))
		}
	}

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

// photoTokenTTL is how long an access token stays cached. Tokens without an
// expiry get an hour; expired or empty tokens are not cached at all.
func photoTokenTTL(tok *oauth2.Token, now time.Time) (time.Duration, bool) {
	if tok == nil || tok.AccessToken == "" {
		return 0, false
	}
	if tok.Expiry.IsZero() {
		return time.Hour, true
	}
	ttl := tok.Expiry.Sub(now)
	if ttl <= 0 {
		return 0, false
	}
	return ttl, true
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.GOOGLE_CLIENT_ID,
	})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}

	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	if !claims.EmailVerified {
		return nil, errors.New("google account email is not verified")
	}

	return &claims, nil
}

package routes

import (
	adminapi "art-progression/internal/api/admin"
	authapi "art-progression/internal/api/auth"
	galleryapi "art-progression/internal/api/gallery"
	"art-progression/internal/app/http/middleware"
	"art-progression/internal/infra/sessions"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router dispatches to.
type Handlers struct {
	Admin   *adminapi.Handler
	Auth    *authapi.Handler
	Gallery *galleryapi.Handler
	Tokens  sessions.TokenStore
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public gallery, read-only
	r.GET("/artworks", h.Gallery.GetDocument)
	r.GET("/gallery/grid", h.Gallery.GetGrid)
	r.GET("/gallery/timeline", h.Gallery.GetTimeline)
	r.GET("/gallery/compare", h.Gallery.GetCompare)
	r.GET("/gallery/stats", h.Gallery.GetStats)
	r.GET("/gallery/:view/:index", h.Gallery.GetLightbox)

	// Passwords are compared verbatim, so /auth bodies are not sanitized.
	public := r.Group("/auth")
	public.GET("/google", h.Auth.GoogleStart)
	public.GET("/google/callback", h.Auth.GoogleCallback)
	public.POST("/login", h.Auth.PasswordLogin)

	signedIn := r.Group("/auth")
	signedIn.Use(middleware.AuthMiddleware())
	signedIn.POST("/signout", h.Auth.SignOut)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin(h.Tokens))
	admin.GET("/session", h.Admin.GetSession)
	admin.GET("/artworks", h.Admin.ListArtworks)
	admin.GET("/artworks/:id", h.Admin.GetArtwork)
	admin.GET("/photos/albums", h.Admin.ListAlbums)
	admin.GET("/photos/albums/:id/items", h.Admin.ListAlbumItems)
	admin.POST("/uploads/inspect", h.Admin.InspectUpload)

	// One mutation in flight per admin
	busy := middleware.NewBusyGuard()
	mutate := admin.Group("/")
	mutate.Use(busy.Middleware(), middleware.SanitizeAndCleanInputMiddleware())
	mutate.POST("/artworks", h.Admin.UploadArtworks)
	mutate.POST("/artworks/photos", h.Admin.ImportPhotos)
	mutate.PUT("/artworks/:id", h.Admin.UpdateArtwork)
	mutate.DELETE("/artworks/:id", h.Admin.DeleteArtwork)
}

package cmd

import (
	"context"
	"strings"
	"time"

	"art-progression/config"
	"art-progression/database"
	adminapi "art-progression/internal/api/admin"
	authapi "art-progression/internal/api/auth"
	galleryapi "art-progression/internal/api/gallery"
	routes "art-progression/internal/app/http"
	"art-progression/internal/domain/progress"
	"art-progression/internal/infra/cloudinary"
	"art-progression/internal/infra/photos"
	"art-progression/internal/infra/sessions"
	"art-progression/internal/infra/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if len(config.ADMIN_EMAILS) == 0 {
		zap.L().Warn("ADMIN_EMAILS is empty: any signed-in account can administer the gallery")
	}

	database.InitDB()
	artworkStore := store.NewGormStore(database.DB, config.FALLBACK_DOCUMENT)
	numbering := progress.NumberingFor(config.DAY_MODE)

	tokens := tokenStore(cmd.Context())

	flow := &adminapi.Workflow{Store: artworkStore, Numbering: numbering}
	if config.MediaConfigured() {
		media, err := cloudinary.NewClient(config.CLOUDINARY_CLOUD_NAME, config.CLOUDINARY_UPLOAD_PRESET, config.CLOUDINARY_FOLDER)
		if err != nil {
			zap.L().Error("Cloudinary client unavailable, uploads are disabled", zap.Error(err))
		} else {
			flow.Media = media
		}
	} else {
		zap.L().Warn("Cloudinary is not configured, uploads are disabled")
	}

	admin := &adminapi.Handler{Flow: flow, Tokens: tokens}
	if config.PhotosConfigured() {
		admin.PhotoLibrary = func(ctx context.Context, accessToken string) adminapi.PhotoLibrary {
			return photos.NewClient(ctx, accessToken)
		}
	}

	if !config.GoogleConfigured() && !config.PasswordLoginConfigured() {
		zap.L().Warn("no sign-in method is configured, the admin API is unreachable")
	}

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	routes.RegisterRoutes(r, routes.Handlers{
		Admin:   admin,
		Auth:    &authapi.Handler{Tokens: tokens},
		Gallery: &galleryapi.Handler{Store: artworkStore, Numbering: numbering},
		Tokens:  tokens,
	})

	zap.L().Info("listening", zap.String("port", config.PORT), zap.String("dayMode", numbering.Mode()))
	return r.Run(":" + config.PORT)
}

func tokenStore(ctx context.Context) sessions.TokenStore {
	if config.REDIS_URL == "" {
		return sessions.NewMemoryStore()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rdb, err := sessions.Connect(ctx, config.REDIS_URL)
	if err != nil {
		zap.L().Error("redis unavailable, keeping photo library tokens in memory", zap.Error(err))
		return sessions.NewMemoryStore()
	}
	return sessions.NewRedisStore(rdb)
}

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if strings.TrimSpace(config.CORS_ORIGIN) == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range strings.Split(config.CORS_ORIGIN, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}
	cfg.AllowCredentials = true
	return cfg
}

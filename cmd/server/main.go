package main

import (
	"time"
	"yuepai/internal/config"
	"yuepai/internal/db"
	"yuepai/internal/handlers"
	"yuepai/internal/logger"
	"yuepai/internal/middleware"
	"yuepai/internal/postedit"
	"yuepai/internal/router"
	"yuepai/internal/services"
	"yuepai/internal/utils"
	"yuepai/internal/validator"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, foundEnv := config.Load()

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithWriter(logger.NewWriter(cfg.LogFile)),
		logger.WithEncoder(encoderFor(cfg.LogFile)),
	)
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if !foundEnv {
		log.Info("No .env file found, finding env vars from system")
	}
	if cfg.DefaultSecret() {
		log.Warn("SESSION_SECRET not set, using the default secret")
	}

	// Initialize Database
	if err := db.Init(cfg.DatabaseURL, log); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// 表单绑定使用中文校验信息
	binding.Validator = validator.MustNew()

	// Services
	catalogService := services.NewCatalogService(db.DB, utils.GetCache())
	mailService := services.NewMailService(cfg.SMTP, cfg.TemplatesDir, log)
	postService := services.NewPostService(db.DB, catalogService, mailService, cfg.SiteURL)
	userService := services.NewUserService(db.DB)
	notificationService := services.NewNotificationService(db.DB)
	drafts := postedit.NewDrafts(1000, 2*time.Hour)

	// Initialize Gin
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	// Setup Sessions
	authKey, encKey, err := cfg.SessionKeys()
	if err != nil {
		log.Fatal("Failed to derive session keys", zap.Error(err))
	}
	store := cookie.NewStore(authKey, encKey)
	store.Options(sessions.Options{Path: "/", MaxAge: 86400 * 30, HttpOnly: true})
	r.Use(sessions.Sessions("yuepai_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	renderer, err := router.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		log.Fatal("Failed to load templates", zap.Error(err))
	}
	r.HTMLRender = renderer

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser(userService, notificationService))

	router.RegisterRoutes(r, router.Handlers{
		Filter:       handlers.NewFilterHandler(catalogService),
		Post:         handlers.NewPostHandler(postService, catalogService),
		Edit:         handlers.NewEditHandler(postService, catalogService, drafts),
		User:         handlers.NewUserHandler(userService, catalogService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Image:        handlers.NewImageHandler(services.NewImageUploader(cfg.ImgurClientID)),
		SEO:          handlers.NewSEOHandler(postService, cfg.SiteURL),
	})

	log.Info("Yuepai server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

// 写文件时用 JSON，便于收集；只输出到控制台时用可读格式
func encoderFor(logFile string) func(zapcore.EncoderConfig) zapcore.Encoder {
	if logFile != "" {
		return zapcore.NewJSONEncoder
	}
	return zapcore.NewConsoleEncoder
}

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eureka/internal/auth"
	"eureka/internal/config"
	"eureka/internal/database"
	"eureka/internal/handler"
	"eureka/internal/mail"
	"eureka/internal/middleware"
	"eureka/internal/repository"
	"eureka/internal/service"
	"eureka/internal/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

type handlers struct {
	auth        *handler.AuthHandler
	users       *handler.UserHandler
	tasks       *handler.TaskHandler
	attachments *handler.AttachmentHandler
}

func Init(cfg *config.Config) (*Server, error) {
	if cfg.AutoMigrate {
		if err := database.MigrateUp(cfg); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
		}
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("❌ %w", err)
	}

	blobs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to prepare upload dir: %w", err)
	}

	store := repository.NewStore(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
	if cfg.GoogleClientID == "" {
		log.Println("⚠️  GOOGLE_CLIENT_ID is empty, Google sign-in will reject every token")
	}

	// Initialize services
	authService := service.NewAuthService(store, tokens, mailer, auth.NewGoogleVerifier(cfg.GoogleClientID), service.AuthConfig{
		OTPLength:       cfg.OTPLength,
		OTPTTL:          cfg.OTPTTL,
		ResetTokenTTL:   cfg.ResetTokenTTL,
		ResetLinkFormat: cfg.ResetLinkFormat,
	})
	taskService := service.NewTaskService(store, service.NewSubTaskReconciler())

	// Initialize handlers
	h := handlers{
		auth:        handler.NewAuthHandler(authService),
		users:       handler.NewUserHandler(service.NewProfileService(store)),
		tasks:       handler.NewTaskHandler(service.NewDraftResolver(store), service.NewPublisher(store), taskService),
		attachments: handler.NewAttachmentHandler(service.NewAttachmentManager(store, blobs), cfg.MaxUploadBytes),
	}

	return &Server{
		Engine: newEngine(tokens, h),
		DB:     db,
		Config: cfg,
	}, nil
}

func newEngine(tokens middleware.TokenParser, h handlers) *gin.Engine {
	r := gin.Default()
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Public routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/sign-up-email", h.auth.SignUpWithEmail)
		authGroup.POST("/otp-confirmation", h.auth.ConfirmOTP)
		authGroup.POST("/complete-profile", h.auth.CompleteProfile)
		authGroup.POST("/sign-in-email", h.auth.SignIn)
		authGroup.POST("/sign-in-google", h.auth.SignInWithGoogle)
		authGroup.POST("/request-reset-password", h.auth.RequestPasswordReset)
		authGroup.POST("/reset-password/confirm", h.auth.ConfirmResetLink)
		authGroup.POST("/reset-password/:token", h.auth.SetNewPassword)
	}

	// Protected routes - require authentication
	authorized := api.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	{
		authorized.GET("/user/profile", h.users.Profile)
		authorized.PUT("/user/profile", h.users.UpdateProfile)

		// Task routes
		authorized.POST("/task/create-temporary-task", h.tasks.CreateTemporary)
		authorized.POST("/task/publish", h.tasks.Publish)
		authorized.PUT("/task/edit", h.tasks.Edit)
		authorized.GET("/task/detail/:taskId", h.tasks.Detail)
		authorized.DELETE("/task/delete-task/:taskId", h.tasks.Delete)
		authorized.GET("/task/list-task", h.tasks.List)
		authorized.GET("/task/get-list-by-date", h.tasks.ListByDate)
		authorized.GET("/task/list-by-status", h.tasks.ListByStatus)
		authorized.GET("/task/list-by-status/:statusId", h.tasks.ListByStatus)
		authorized.GET("/task/search", h.tasks.Search)
		authorized.GET("/task/priority-list", h.tasks.ListPriorities)
		authorized.GET("/task/status-list", h.tasks.ListStatuses)

		// Star routes
		authorized.GET("/task/starred", h.tasks.ListStarred)
		authorized.POST("/task/:taskId/star", h.tasks.Star)
		authorized.DELETE("/task/:taskId/star", h.tasks.Unstar)

		// Attachment routes
		authorized.POST("/task/upload-attachment", h.attachments.Upload)
		authorized.DELETE("/task/delete-attachment/:attachmentId", h.attachments.Delete)
		authorized.GET("/task/attachment/:attachmentId", h.attachments.Download)
	}
	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("✅ Server exited properly")
}

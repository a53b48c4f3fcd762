package app

import (
	"fmt"

	"resolvenow_backend/database"
	"resolvenow_backend/internal/auth"
	"resolvenow_backend/internal/config"
	"resolvenow_backend/internal/email"
	"resolvenow_backend/internal/handlers"
	"resolvenow_backend/internal/logger"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/routes"
	"resolvenow_backend/internal/services"
	"resolvenow_backend/internal/storage"
	"resolvenow_backend/internal/validator"
	"resolvenow_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the whole application: config, database, migrations, the
// first admin account and finally the HTTP server.
func Run() {
	// Missing .env is fine, the config loader falls back to yaml.
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("failed to seed first admin", "error", err)
	}

	router, _ := SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)

	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

// SetupRouter assembles the engine with all dependencies wired. Split
// from Run so tests can build an engine against their own database.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, *ws.Manager) {
	store, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	var provider email.Provider
	if cfg.Email.SMTPHost != "" {
		provider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			UseTLS:   cfg.Email.UseTLS,
		})
	} else {
		logger.Warn("SMTP not configured, outbound email disabled")
		provider = email.NewNoopProvider()
	}
	mailer := email.NewMailer(provider, cfg.Email.FromName, cfg.Email.FromEmail)

	manager := ws.NewManager()
	go manager.Run()

	container := services.NewServiceContainer(db, cfg, mailer, store, manager)
	manager.SetServices(container.Message, container.Complaint)

	appHandlers := handlers.NewAppHandlers(container, validator.New())

	router := gin.New()
	router.Use(gin.Recovery())

	routes.Register(router, appHandlers, manager, cfg)

	return router, manager
}

// seedFirstAdmin creates the bootstrap admin account when configured
// and not present yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	userRepo := repositories.NewUserRepository(db)
	if _, err := userRepo.FindByEmail(cfg.FirstAdminEmail); err == nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	name := cfg.FirstAdminName
	if name == "" {
		name = "Administrator"
	}

	admin := &models.User{
		FullName:     name,
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		IsApproved:   true,
		IsVerified:   true,
	}

	if err := userRepo.Create(admin); err != nil {
		if err == repositories.ErrUserAlreadyExists {
			return nil
		}
		return err
	}

	logger.Info("first admin account created", "email", admin.Email)
	return nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitfantasy/cuti/internal/config"
	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"github.com/bitfantasy/cuti/internal/cuti/handler"
	"github.com/bitfantasy/cuti/internal/cuti/repository"
	"github.com/bitfantasy/cuti/internal/cuti/service"
	"github.com/bitfantasy/cuti/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting cuti service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.AdminUser{},
		&entity.Personnel{},
		&entity.LeaveRequest{},
		&entity.AuditLog{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	rdb := initRedis(cfg.Redis, zapLogger)

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, rdb, cfg)
	handlers := handler.NewHandlers(services)

	if err := seedDefaultAdmin(repos, zapLogger); err != nil {
		zapLogger.Warn("Failed to seed default admin", zap.Error(err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/sse"})))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: 0, // Disable for SSE long-lived connections
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// initRedis connects to Redis. The service degrades to uncached operation
// when Redis is unreachable, so a failed ping is not fatal.
func initRedis(cfg config.RedisConfig, zapLogger *zap.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zapLogger.Warn("Redis unreachable, caching and refresh tokens disabled", zap.Error(err))
		return nil
	}

	zapLogger.Info("Redis connected", zap.String("addr", rdb.Options().Addr))
	return rdb
}

// seedDefaultAdmin creates the initial admin account on an empty admin table.
func seedDefaultAdmin(repos *repository.Repositories, zapLogger *zap.Logger) error {
	ctx := context.Background()

	count, err := repos.AdminUser.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := config.GetEnvOrDefault("ADMIN_EMAIL", "admin@cuti.mil.my")
	password := config.GetEnvOrDefault("ADMIN_PASSWORD", "admin123")

	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entity.AdminUser{
		ID:           uuid.New().String()[:32],
		Name:         "Pentadbir Sistem",
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := repos.AdminUser.Create(ctx, admin); err != nil {
		return err
	}

	zapLogger.Info("Default admin account created", zap.String("email", email))
	return nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{"version": Version, "build_time": BuildTime})
	})

	v1 := r.Group("/api/v1")

	// Public auth endpoints
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}

	// SSE uses query-param token auth for EventSource compatibility
	sseGroup := v1.Group("/sse", middleware.JWTAuth(cfg.JWT.Secret))
	{
		sseGroup.GET("/events", h.SSE.Stream)
	}

	// Authenticated API
	authorized := v1.Group("", middleware.JWTAuth(cfg.JWT.Secret))
	{
		authorized.GET("/auth/me", h.Auth.GetCurrentUser)
		authorized.POST("/auth/logout", h.Auth.Logout)

		requests := authorized.Group("/requests")
		{
			requests.GET("", h.Request.List)
			requests.POST("", h.Request.Create)
			requests.GET("/counts", h.Request.Counts)
			requests.GET("/calendar", h.Request.Calendar)
			requests.GET("/:id", h.Request.Get)
			requests.POST("/:id/approve", h.Request.Approve)
			requests.POST("/:id/reject", h.Request.Reject)
			requests.POST("/:id/cancel", h.Request.Cancel)
			requests.POST("/:id/attachment", h.Request.UploadAttachment)
			requests.GET("/:id/attachment", h.Request.DownloadAttachment)
		}

		personnel := authorized.Group("/personnel")
		{
			personnel.GET("", h.Personnel.List)
			personnel.POST("", h.Personnel.Create)
			personnel.GET("/:id", h.Personnel.Get)
			personnel.PUT("/:id", h.Personnel.Update)
			personnel.DELETE("/:id", middleware.RequireRole("admin"), h.Personnel.Delete)
			personnel.GET("/:id/leave-report", h.Personnel.Report)
		}

		dashboard := authorized.Group("/dashboard")
		{
			dashboard.GET("/metrics", h.Dashboard.Metrics)
			dashboard.GET("/quarterly", h.Dashboard.Quarterly)
		}

		reports := authorized.Group("/reports")
		{
			reports.GET("/statistics", h.Report.Statistics)
			reports.GET("/statistics/export", h.Report.Export)
		}

		audit := authorized.Group("/audit-logs")
		{
			audit.GET("", h.Audit.List)
			audit.GET("/export", h.Audit.Export)
		}
	}
}

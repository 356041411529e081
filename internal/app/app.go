package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"study_diagnostic_backend/internal/config"
	"study_diagnostic_backend/internal/controller"
	"study_diagnostic_backend/internal/repository"
	"study_diagnostic_backend/internal/service"
	"study_diagnostic_backend/pkg/configwatcher"
	"study_diagnostic_backend/pkg/database"
	"study_diagnostic_backend/pkg/logger"
	"study_diagnostic_backend/pkg/monitoring"
	"study_diagnostic_backend/pkg/security"
	"study_diagnostic_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config     *config.Config
	ConfigPath string
	Router     *gin.Engine
	DB         *gorm.DB
	Redis      *redis.Client
	services   *services
}

type repositories struct {
	user    *repository.UserRepository
	attempt *repository.AttemptRepository
}

type services struct {
	auth       *service.AuthService
	catalog    *service.CatalogService
	diagnostic *service.DiagnosticService
	storage    *service.StorageService
	export     *service.ExportService
}

type controllers struct {
	auth       *controller.AuthController
	diagnostic *controller.DiagnosticController
	history    *controller.HistoryController
	export     *controller.ExportController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		attempt: repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	catalog, err := service.NewCatalogService(&cfg.Data)
	if err != nil {
		return nil, err
	}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	return &services{
		auth:       service.NewAuthService(repos.user, cfg),
		catalog:    catalog,
		diagnostic: service.NewDiagnosticService(catalog, repos.attempt, rdb, cfg),
		storage:    storage,
		export:     service.NewExportService(catalog, storage),
	}, nil
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, repos.user),
		diagnostic: controller.NewDiagnosticController(s.catalog, s.diagnostic),
		history:    controller.NewHistoryController(s.diagnostic),
		export:     controller.NewExportController(s.diagnostic, s.export),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig hot-reloads the diagnostic rule section when the config file
// changes on disk. Server and database settings still require a restart.
func (a *App) watchConfig() {
	go configwatcher.WatchConfig(filepath.Join(a.ConfigPath, "config.yaml"), func(cfg *config.Config) {
		a.services.diagnostic.ReloadConfig(cfg)
	})
}

func NewApp(cfg *config.Config, configPath string) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:     cfg,
		ConfigPath: configPath,
		DB:         db,
		Redis:      rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("study-diagnostic", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/reports", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/config"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/handler"
	"github.com/draftforge/draftforge-backend/internal/middleware"
	"github.com/draftforge/draftforge-backend/internal/repository"
	"github.com/draftforge/draftforge-backend/internal/routes"
	"github.com/draftforge/draftforge-backend/internal/service"
	pkgcache "github.com/draftforge/draftforge-backend/pkg/cache"
	"github.com/draftforge/draftforge-backend/pkg/jwt"
	"github.com/draftforge/draftforge-backend/pkg/logger"
	pkgredis "github.com/draftforge/draftforge-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	logger.Init(env)
	log := logger.Get()
	log.Info().Str("env", env).Strs("env_files", dotenvFiles).Msg("starting draftforge-backend")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Str("host", cfg.Database.Host).Msg("connected to MySQL")

	if err := autoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional: the cache layer degrades to pass-through
	// when no client is available.
	var cacheService pkgcache.Service
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
			cacheService = pkgcache.NewService(nil)
		} else {
			log.Info().Msg("connected to Redis")
			cacheService = pkgcache.NewService(redisClient)
		}
	} else {
		cacheService = pkgcache.NewService(nil)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	writerRepo := repository.NewWriterProfileRepository(db)
	blogRepo := repository.NewBlogPostRepository(db)
	socialRepo := repository.NewSocialPostRepository(db)
	snippetRepo := repository.NewSnippetRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	revisionRepo := repository.NewRevisionRepository(db)

	// One per-entity lock set shared by version tracking and restore
	locks := common.NewKeyedMutex()

	// Services
	versionSvc := service.NewVersionService(versionRepo, revisionRepo, locks, cacheService)
	historySvc := service.NewHistoryService(versionRepo, revisionRepo, cacheService)
	comparisonSvc := service.NewComparisonService(versionRepo)
	restoreSvc := service.NewRestoreService(db, versionRepo, revisionRepo, blogRepo, socialRepo, snippetRepo, locks, cacheService)
	generationSvc := service.NewGenerationService(cfg.Generation.Model)
	complianceSvc := service.NewComplianceService(cfg.Compliance.BannedPhrases)
	companySvc := service.NewCompanyService(companyRepo)
	writerSvc := service.NewWriterProfileService(writerRepo)
	blogSvc := service.NewBlogPostService(blogRepo, companyRepo, writerRepo, versionSvc, generationSvc)
	socialSvc := service.NewSocialPostService(socialRepo, companyRepo, writerRepo, versionSvc, generationSvc)
	snippetSvc := service.NewSnippetService(snippetRepo, versionSvc)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "draftforge-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(router, &routes.Handlers{
		Company:    handler.NewCompanyHandler(companySvc),
		Writer:     handler.NewWriterProfileHandler(writerSvc),
		Blog:       handler.NewBlogPostHandler(blogSvc),
		Social:     handler.NewSocialPostHandler(socialSvc),
		Snippet:    handler.NewSnippetHandler(snippetSvc),
		History:    handler.NewHistoryHandler(historySvc, versionSvc, comparisonSvc, restoreSvc),
		Compliance: handler.NewComplianceHandler(complianceSvc),
	}, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// initDB opens the MySQL connection. TranslateError is required so
// duplicate-key failures surface as gorm.ErrDuplicatedKey, which the
// version tracker relies on for conflict retries.
func initDB(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
	db, err := gorm.Open(mysql.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Company{},
		&domain.WriterProfile{},
		&domain.BlogPost{},
		&domain.SocialPost{},
		&domain.Snippet{},
		&domain.ContentVersion{},
		&domain.ContentRevision{},
	)
}

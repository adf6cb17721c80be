package app

import (
	"database/sql"
	"fmt"

	"hris-core/internal/bootstrap"
	"hris-core/internal/calendar"
	"hris-core/internal/config"
	"hris-core/internal/middleware"
	"hris-core/internal/shared/connection"
	"hris-core/internal/shared/database"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const redisRetries = 5

// Infra bundles the connections shared by the api, worker and consumer
// processes.
type Infra struct {
	Config   *config.Config
	Logger   *zap.Logger
	GormDB   *gorm.DB
	DB       *sql.DB
	Redis    *redis.Client
	Calendar calendar.Calendar
	Audit    bootstrap.AuditLogger
}

// Connect opens postgres and redis, retrying each until it answers or the
// configured attempts run out.
func Connect(cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	cal, err := calendar.New(cfg.Calendar.TimeZone, cfg.Calendar.WeekendDays)
	if err != nil {
		return nil, fmt.Errorf("calendar: %w", err)
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, redisRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &Infra{
		Config:   cfg,
		Logger:   logger,
		GormDB:   gormDB,
		DB:       sqlDB,
		Redis:    rdb,
		Calendar: cal,
		Audit:    bootstrap.NewStdoutAuditLogger(logger),
	}, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.Logger.Warn("close redis", zap.Error(err))
		}
	}
	if i.DB != nil {
		if err := i.DB.Close(); err != nil {
			i.Logger.Warn("close database", zap.Error(err))
		}
	}
}

// BuildApp applies migrations when enabled, loads the RBAC policy and
// registers every HTTP module on router.
func BuildApp(router *gin.Engine, infra *Infra) error {
	if infra.Config.Database.Migrate {
		if err := database.RunMigrations(infra.DB, infra.Logger); err != nil {
			return err
		}
	}

	middleware.ConfigureAuth(infra.Config.Auth.JWTSecret)
	router.Use(middleware.RequestID())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return registerModules(router, infra)
}

package config

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"

	"task-api/configs"
	"task-api/internal/api/v1/handlers"
	"task-api/internal/auth"
	"task-api/internal/cache"
	"task-api/internal/repository"
	"task-api/pkg/logger"
)

// Dependencies dibuat sekali saat start lalu diteruskan ke semua komponen.
type Dependencies struct {
	Config   configs.Config
	Log      *logger.Loggers
	Validate *validator.Validate
	Tokens   *auth.TokenService
	Users    handlers.UserFinder
	Tasks    repository.TaskStore
	// Redis is nil when caching is disabled.
	Redis *redis.Client
}

// NewDependencies wires the repositories over db. With a Redis client the
// task repository is wrapped in the read-through cache.
func NewDependencies(cfg configs.Config, db *sql.DB, rdb *redis.Client, log *logger.Loggers) *Dependencies {
	var tasks repository.TaskStore = repository.NewTaskRepository(db)
	if rdb != nil {
		tasks = cache.NewCachedTaskStore(tasks, rdb, log)
	}

	return &Dependencies{
		Config:   cfg,
		Log:      log,
		Validate: validator.New(),
		Tokens:   auth.NewTokenService(cfg.JWTSecret),
		Users:    repository.NewUserRepository(db),
		Tasks:    tasks,
		Redis:    rdb,
	}
}

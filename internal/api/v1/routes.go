package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"task-api/internal/api/v1/handlers"
	"task-api/internal/cache"
	"task-api/internal/config"
	"task-api/internal/middleware"
)

// NewApp builds the Fiber app with middleware and all routes registered.
func NewApp(deps *config.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "task-api"})

	app.Use(middleware.ErrorHandler(deps.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if deps.Config.RateLimitMax > 0 {
		limiterCfg := limiter.Config{
			Max:        deps.Config.RateLimitMax,
			Expiration: 1 * time.Minute,
		}
		if deps.Redis != nil {
			limiterCfg.Storage = cache.NewLimiterStorage(deps.Redis, "limiter:")
		}
		app.Use(limiter.New(limiterCfg))
	}

	RegisterRoutes(app, deps)
	return app
}

func RegisterRoutes(app *fiber.App, deps *config.Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens, deps.Validate, deps.Log)
	taskHandler := handlers.NewTaskHandler(deps.Tasks, deps.Validate, deps.Log)

	// Auth
	app.Post("/auth/login", authHandler.Login)

	// Task
	taskRoutes := app.Group("/tasks", middleware.RequireToken(deps.Tokens, deps.Log))
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Get("/:id", taskHandler.GetTask)
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Put("/:id", taskHandler.UpdateTask)
	taskRoutes.Delete("/:id", taskHandler.DeleteTask)
}

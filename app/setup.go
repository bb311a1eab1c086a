package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/taskward/taskward/auth"
	"github.com/taskward/taskward/config"
	"github.com/taskward/taskward/database"
	"github.com/taskward/taskward/events"
	"github.com/taskward/taskward/handlers"
	"github.com/taskward/taskward/middleware"
	"github.com/taskward/taskward/router"
	"github.com/taskward/taskward/tasks"
)

// SetupAndRunApp builds everything in a fixed order: configuration,
// database, stores, services, then the Fiber app. Nothing is
// re-initialized after request handling begins.
func SetupAndRunApp() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.PostgresURI)
	if err != nil {
		return err
	}
	defer database.Close(db)

	users := database.NewUserStore(db)
	taskStore := database.NewTaskStore(db)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenLifetime)
	authSvc := auth.NewService(users, auth.NewHasher(), tokens)
	taskSvc := tasks.NewService(taskStore)
	broker := events.NewBroker()

	h := handlers.New(authSvc, taskSvc, broker)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	router.SetupRoutes(app, h, middleware.Auth(tokens, users))

	config.AddSwaggerRoutes(app)

	return app.Listen(":" + cfg.Port)
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/lexivault/lexivault/internal/config"
	"github.com/lexivault/lexivault/internal/database"
	"github.com/lexivault/lexivault/internal/handlers"
	"github.com/lexivault/lexivault/internal/middleware"
	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/services"

	_ "github.com/lexivault/lexivault/docs/api" // Swagger docs
)

// @title LexiVault API
// @version 1.0.0
// @description Vocabulary-management backend: users, languages, words and dictlists
// @contact.name API Support
// @contact.url https://github.com/lexivault/lexivault

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load .env in development; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	creds := services.NewCredentials(cfg)
	mailer := services.NewMailer(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("lexivault")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.APIVersion())

	authRequired := middleware.RequireUser(db, creds)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Create handlers
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}
	authHandler := &handlers.AuthHandler{DB: db, Creds: creds}
	usersHandler := &handlers.UsersHandler{DB: db, Creds: creds, Mailer: mailer, Cfg: cfg}
	languagesHandler := &handlers.LanguagesHandler{DB: db}
	wordsHandler := &handlers.WordsHandler{DB: db}
	dictListsHandler := &handlers.DictListsHandler{DB: db}

	api.Get("/health", healthHandler.Get)

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/email_verify", authHandler.EmailVerify)
	auth.Get("/email_change_verify", authHandler.EmailChangeVerify)

	// User routes
	users := api.Group("/users")
	users.Post("/", usersHandler.Register)
	users.Get("/", authRequired, adminOnly, usersHandler.List)
	users.Get("/me", authRequired, usersHandler.Me)
	users.Patch("/me/username", authRequired, usersHandler.UpdateUsername)
	users.Patch("/me/email", authRequired, usersHandler.RequestEmailChange)
	users.Patch("/me/password", authRequired, usersHandler.UpdatePassword)
	users.Delete("/me", authRequired, usersHandler.Delete)

	// Language routes (public reads, admin writes)
	languages := api.Group("/languages")
	languages.Get("/all", languagesHandler.List)
	languages.Get("/:code", languagesHandler.Get)
	languages.Post("/", authRequired, adminOnly, languagesHandler.Create)
	languages.Patch("/:code", authRequired, adminOnly, languagesHandler.UpdateName)
	languages.Delete("/:code", authRequired, adminOnly, languagesHandler.Delete)

	// Word routes (owner-scoped)
	words := api.Group("/words", authRequired)
	words.Post("/", wordsHandler.Create)
	words.Get("/", wordsHandler.List)
	words.Get("/:id", wordsHandler.Get)
	words.Patch("/:id", wordsHandler.Update)
	words.Delete("/:id", wordsHandler.Delete)

	// DictList routes (owner-scoped)
	dictlists := api.Group("/dictlists", authRequired)
	dictlists.Post("/", dictListsHandler.Create)
	dictlists.Get("/", dictListsHandler.List)
	dictlists.Get("/:id", dictListsHandler.Get)
	dictlists.Patch("/:id", dictListsHandler.Update)
	dictlists.Delete("/:id", dictListsHandler.Delete)
	dictlists.Post("/:id/words", dictListsHandler.AssignWords)
	dictlists.Delete("/:id/words", dictListsHandler.UnassignWords)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

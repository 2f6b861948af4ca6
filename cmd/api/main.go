package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"kabar/internal/config"
	"kabar/internal/domain"
	"kabar/internal/handler"
	"kabar/internal/middleware"
	"kabar/internal/repository"
	"kabar/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, cfg)
	defer services.Throttle.Stop()
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// Extract real IP (for Cloudflare) and User-Agent for the write paths.
	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authSvc := services.Auth
	gate := services.Authz

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)

	v1.Get("/captcha", h.Captcha.Challenge)
	v1.Post("/captcha/verify", h.Captcha.Verify)

	posts := v1.Group("/posts")
	posts.Get("/", h.Post.List)
	posts.Get("/:postId", middleware.AuthOptional(authSvc), h.Post.Get)
	posts.Post("/", middleware.AuthRequired(authSvc), middleware.RequirePrivilege(gate, domain.PrivilegePublish), h.Post.Create)
	posts.Put("/:postId", middleware.AuthRequired(authSvc), middleware.RequirePrivilege(gate, domain.PrivilegePublish), h.Post.Update)
	posts.Delete("/:postId", middleware.AuthRequired(authSvc), middleware.RequirePrivilege(gate, domain.PrivilegePublish), h.Post.Delete)

	comments := v1.Group("/comments")
	comments.Get("/post/:postId", middleware.AuthOptional(authSvc), h.Comment.ListByPost)
	comments.Post("/", middleware.AuthOptional(authSvc), h.Comment.Create)
	comments.Post("/reply/:commentId", middleware.AuthRequired(authSvc), middleware.RequirePrivilege(gate, domain.PrivilegeReply), h.Comment.Reply)

	commentsAdmin := comments.Group("/admin", middleware.AuthRequired(authSvc), middleware.RequirePrivilege(gate, domain.PrivilegeModerate))
	commentsAdmin.Get("/all", h.Comment.AdminList)
	commentsAdmin.Patch("/bulk-action", h.Comment.BulkAction)
	commentsAdmin.Get("/stats", h.Comment.Stats)

	comments.Patch("/:id/status", middleware.AuthRequired(authSvc), middleware.RequirePrivilege(gate, domain.PrivilegeModerate), h.Comment.UpdateStatus)
	comments.Delete("/:id", middleware.AuthRequired(authSvc), middleware.RequirePrivilege(gate, domain.PrivilegeModerate), h.Comment.Delete)

	users := v1.Group("/users", middleware.AuthRequired(authSvc))
	users.Get("/me", h.User.GetProfile)
	users.Get("/", middleware.RequirePrivilege(gate, domain.PrivilegeManageUsers), h.User.List)
	users.Post("/assign-role", middleware.RequirePrivilege(gate, domain.PrivilegeManageUsers), h.User.AssignRole)

	roles := v1.Group("/roles", middleware.AuthRequired(authSvc), middleware.RequirePrivilege(gate, domain.PrivilegeManageRoles))
	roles.Get("/", h.Role.List)
	roles.Post("/", h.Role.Create)
	roles.Get("/:roleId", h.Role.Get)
	roles.Put("/:roleId", h.Role.Update)
	roles.Delete("/:roleId", h.Role.Delete)
}

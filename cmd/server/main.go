package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/nexusboard/nexusboard-api/internal/config"
	"github.com/nexusboard/nexusboard-api/internal/constants"
	"github.com/nexusboard/nexusboard-api/internal/database"
	"github.com/nexusboard/nexusboard-api/internal/handlers"
	"github.com/nexusboard/nexusboard-api/internal/logging"
	"github.com/nexusboard/nexusboard-api/internal/middleware"
	"github.com/nexusboard/nexusboard-api/internal/repository"
	"github.com/nexusboard/nexusboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Configure logging
	logging.Init(cfg.LogFile)
	log := logging.Logger

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	chatRepo := repository.NewChatRepository(db)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, activityRepo)
	chatService := services.NewChatService(chatRepo)

	// Provision the admin account only when explicitly requested via
	// the environment. There is no login-path fallback credential.
	if cfg.AdminBootstrapPassword != "" {
		if _, err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminBootstrapPassword); err != nil {
			log.Fatalf("Failed to provision admin account: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Dynamic responses must never be served from the browser cache.
	r.Use(middleware.NoCache())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, authService)
	chatHandler := handlers.NewChatHandler(chatService, authService)
	adminHandler := handlers.NewAdminHandler(authService, taskService)

	// Landing and health endpoints
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "NexusBoard",
			"message": "Team task tracking and chat",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Public auth routes
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Page routes: failing the auth check redirects to /login
	pages := r.Group("/")
	pages.Use(middleware.RequirePageAuth())
	{
		pages.GET("/dashboard", taskHandler.Dashboard)
		pages.GET("/task_management", taskHandler.TaskManagement)
		pages.POST("/add_task", taskHandler.AddTask)
		pages.GET("/edit_task/:id", taskHandler.EditTaskForm)
		pages.POST("/edit_task/:id", taskHandler.EditTask)
		pages.GET("/delete_task/:id", taskHandler.DeleteTask)
		pages.POST("/change_password", authHandler.ChangePassword)
		pages.GET("/team_chat", chatHandler.TeamChat)
		pages.GET("/admin_dashboard", middleware.RequireAdmin(), adminHandler.Dashboard)
	}

	// JSON chat routes: failing the auth check answers 401
	api := r.Group("/")
	api.Use(middleware.RequireAuth())
	{
		api.POST("/send_message", chatHandler.SendMessage)
		api.PUT("/edit_message/:id", chatHandler.EditMessage)
		api.DELETE("/delete_message/:id", chatHandler.DeleteMessage)
	}

	// Start server
	log.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

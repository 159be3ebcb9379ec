package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/traduflow-api/internal/config"
	"github.com/yukikurage/traduflow-api/internal/database"
	"github.com/yukikurage/traduflow-api/internal/handlers"
	"github.com/yukikurage/traduflow-api/internal/middleware"
	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/repository"
	"github.com/yukikurage/traduflow-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Wire repositories -> services -> handlers
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	instructionRepo := repository.NewInstructionRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenLifetime)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)
	instructionService := services.NewInstructionService(instructionRepo, projectRepo)
	userService := services.NewUserService(userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	instructionHandler := handlers.NewInstructionHandler(instructionService)
	userHandler := handlers.NewUserHandler(userService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":      true,
			"message": "Traduflow API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Project routes (PM only)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireRole(models.RolePM))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("", projectHandler.CreateProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		// Task routes (role-gated per route)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			pm := middleware.RequireRole(models.RolePM)
			translator := middleware.RequireRole(models.RoleTranslator)

			tasks.GET("/project/:projectId", pm, taskHandler.ListByProject)
			tasks.POST("/project/:projectId", pm, taskHandler.CreateTask)
			tasks.PUT("/:taskId", pm, taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", pm, taskHandler.DeleteTask)
			tasks.PATCH("/:taskId/reassign", pm, taskHandler.ReassignTask)
			tasks.GET("/translator/me", translator, taskHandler.ListForTranslator)
			tasks.PATCH("/translator/:taskId", translator, taskHandler.TranslatorAction)
		}

		// Instruction routes (PM only)
		instructions := api.Group("/instructions")
		instructions.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireRole(models.RolePM))
		{
			instructions.GET("/project/:projectId", instructionHandler.ListByProject)
			instructions.POST("/project/:projectId", instructionHandler.CreateInstruction)
			instructions.PUT("/:id", instructionHandler.UpdateInstruction)
			instructions.DELETE("/:id", instructionHandler.DeleteInstruction)
		}

		// User routes (PM only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireRole(models.RolePM))
		{
			users.GET("/translators", userHandler.ListTranslators)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Shut down cleanly on SIGINT/SIGTERM, closing the DB handle last
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Forced shutdown")
	}

	if err := database.Close(db); err != nil {
		logrus.WithError(err).Error("Failed to close database")
	}

	logrus.Info("Server stopped")
}

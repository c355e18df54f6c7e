package main

import (
	"strconv"
	"time"

	"github.com/coderhafiz/Murajiah-sub001/internal/config"
	"github.com/coderhafiz/Murajiah-sub001/internal/database"
	"github.com/coderhafiz/Murajiah-sub001/internal/handlers"
	"github.com/coderhafiz/Murajiah-sub001/internal/middleware"
	"github.com/coderhafiz/Murajiah-sub001/internal/outbox"
	"github.com/coderhafiz/Murajiah-sub001/internal/services"
	"github.com/coderhafiz/Murajiah-sub001/internal/ws"

	_ "github.com/coderhafiz/Murajiah-sub001/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Murajiah API
// @version         1.0
// @description     Quiz platform backend: quiz library, live game hosting, moderation and notifications
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	database.SeedOwner(db, cfg.OwnerUsername)

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	roleService := services.NewRoleService(db)
	notificationService := services.NewNotificationService(db)
	gameService := services.NewGameService(db, roleService, notificationService)
	quizService := services.NewQuizService(db)
	commentService := services.NewCommentService(db)
	moderationService := services.NewModerationService(db, roleService, notificationService)

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService, commentService)
	sessionHandler := handlers.NewSessionHandler(gameService, hub)
	playHandler := handlers.NewPlayHandler(gameService, hub)
	adminHandler := handlers.NewAdminHandler(moderationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	wsHandler := handlers.NewWSHandler(hub)

	outboxSec, _ := strconv.Atoi(cfg.OutboxInterval)
	if outboxSec <= 0 {
		outboxSec = 2
	}
	outboxBatch, _ := strconv.Atoi(cfg.OutboxBatchSize)
	worker := outbox.NewWorker(notificationService, hub, time.Duration(outboxSec)*time.Second, outboxBatch)
	worker.Start()
	defer worker.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/:channel", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.JWTAuth(authService), authHandler.Me)
		}

		library := api.Group("/library")
		{
			library.GET("", quizHandler.Browse)
			library.GET("/:id", quizHandler.GetPublicQuiz)
			library.GET("/:id/comments", quizHandler.ListComments)
			library.POST("/:id/comments", middleware.JWTAuth(authService), quizHandler.AddComment)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.JWTAuth(authService))
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.PUT("/:id", quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
			quizzes.POST("/:id/questions", quizHandler.AddQuestion)
		}

		questions := api.Group("/questions")
		questions.Use(middleware.JWTAuth(authService))
		{
			questions.DELETE("/:id", quizHandler.DeleteQuestion)
		}

		games := api.Group("/games")
		games.Use(middleware.JWTAuth(authService))
		{
			games.GET("", sessionHandler.ListActiveGames)
			games.POST("", sessionHandler.CreateGame)
			games.GET("/active-count", sessionHandler.ActiveGameCount)
			games.GET("/:id", sessionHandler.GetGame)
			games.POST("/:id/start", sessionHandler.StartGame)
			games.POST("/:id/end", sessionHandler.EndGame)
		}

		play := api.Group("/play")
		{
			play.POST("/join", playHandler.Join)
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.JWTAuth(authService))
		{
			notifications.GET("", notificationHandler.ListNotifications)
		}

		api.GET("/announcements", adminHandler.ListAnnouncements)

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(authService))
		{
			admin.GET("/users", middleware.RequireAdmin(roleService), adminHandler.ListUsers)
			admin.PUT("/users/:id/role", middleware.RequireOwner(roleService), adminHandler.UpdateUserRole)

			moderation := admin.Group("")
			moderation.Use(middleware.RequireModeration(roleService))
			{
				moderation.GET("/comments/hidden", adminHandler.ListHiddenComments)
				moderation.POST("/comments/:id/hide", adminHandler.HideComment)
				moderation.DELETE("/comments/:id", adminHandler.DeleteComment)
				moderation.DELETE("/quizzes/:id", adminHandler.RemoveQuiz)
				moderation.POST("/announcements", adminHandler.CreateAnnouncement)
				moderation.PUT("/announcements/:id/publish", adminHandler.PublishAnnouncement)
				moderation.DELETE("/announcements/:id", adminHandler.DeleteAnnouncement)
			}
		}
	}

	logrus.Infof("server listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}

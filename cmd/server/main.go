package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/config"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/handlers"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"github.com/yukikurage/kanban-board-api/internal/storage"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Initialize structured logger
	var logger *zap.Logger
	var err error
	if cfg.GinMode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Object storage for attachments
	store, err := storage.NewMinioStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	cardRepo := repository.NewCardRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	activityService := services.NewActivityService(activityRepo, logger)
	accessService := services.NewAccessService(boardRepo)
	sequencer := services.NewPositionSequencer(listRepo, cardRepo)
	authService := services.NewAuthService(userRepo)
	boardService := services.NewBoardService(boardRepo, listRepo, cardRepo, labelRepo, userRepo, activityService)
	listService := services.NewListService(listRepo, sequencer, activityService)
	cardService := services.NewCardService(cardRepo, listRepo, labelRepo, boardRepo, checklistRepo, commentRepo, attachmentRepo, sequencer, activityService)
	checklistService := services.NewChecklistService(checklistRepo, cardRepo, listRepo)
	commentService := services.NewCommentService(commentRepo, cardRepo, listRepo, activityService)
	labelService := services.NewLabelService(labelRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, cardRepo, listRepo, store, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	boardHandler := handlers.NewBoardHandler(boardService, activityService)
	listHandler := handlers.NewListHandler(listService)
	cardHandler := handlers.NewCardHandler(cardService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	commentHandler := handlers.NewCommentHandler(commentService)
	labelHandler := handlers.NewLabelHandler(labelService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	sessionStore, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		logger.Fatal("Failed to create Redis store", zap.Error(err))
	}
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, sessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Kanban Board API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth())
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("", boardHandler.ListBoards)

			// Delete is owner-checked against the stored row, not the
			// access gate, so an owner can delete a closed board.
			boards.DELETE("/:boardId", boardHandler.DeleteBoard)

			// Everything below passes the board access gate.
			board := boards.Group("/:boardId")
			board.Use(middleware.RequireBoardAccess(accessService))
			{
				board.GET("", boardHandler.GetBoard)
				board.PATCH("", middleware.RequireBoardRole(models.RoleAdmin), boardHandler.UpdateBoard)

				board.GET("/members", boardHandler.ListMembers)
				board.POST("/members", middleware.RequireBoardRole(models.RoleAdmin), boardHandler.AddMember)
				board.DELETE("/members/:userId", middleware.RequireBoardRole(models.RoleAdmin), boardHandler.RemoveMember)

				board.GET("/activity", boardHandler.ListActivity)

				// Any member, viewers included, may create and move.
				board.POST("/lists", listHandler.CreateList)
				board.PUT("/lists/reorder", listHandler.ReorderLists)
				board.PATCH("/lists/:listId", listHandler.UpdateList)
				board.DELETE("/lists/:listId", listHandler.DeleteList)

				board.POST("/cards", cardHandler.CreateCard)
				board.PUT("/cards/move", cardHandler.MoveCards)
				board.GET("/cards/:cardId", cardHandler.GetCard)
				board.PATCH("/cards/:cardId", cardHandler.UpdateCard)
				board.DELETE("/cards/:cardId", cardHandler.DeleteCard)

				board.POST("/cards/:cardId/labels", cardHandler.AddLabel)
				board.DELETE("/cards/:cardId/labels/:labelId", cardHandler.RemoveLabel)
				board.POST("/cards/:cardId/members", cardHandler.AssignMember)
				board.DELETE("/cards/:cardId/members/:userId", cardHandler.UnassignMember)

				board.POST("/cards/:cardId/checklists", checklistHandler.CreateChecklist)
				board.PATCH("/checklists/:checklistId", checklistHandler.RenameChecklist)
				board.DELETE("/checklists/:checklistId", checklistHandler.DeleteChecklist)
				board.POST("/checklists/:checklistId/items", checklistHandler.CreateItem)
				board.PATCH("/checklists/:checklistId/items/:itemId", checklistHandler.UpdateItem)
				board.DELETE("/checklists/:checklistId/items/:itemId", checklistHandler.DeleteItem)

				board.GET("/cards/:cardId/comments", commentHandler.ListComments)
				board.POST("/cards/:cardId/comments", commentHandler.CreateComment)
				board.PATCH("/comments/:commentId", commentHandler.UpdateComment)
				board.DELETE("/comments/:commentId", commentHandler.DeleteComment)

				board.GET("/labels", labelHandler.ListLabels)
				board.POST("/labels", labelHandler.CreateLabel)
				board.PATCH("/labels/:labelId", labelHandler.UpdateLabel)
				board.DELETE("/labels/:labelId", labelHandler.DeleteLabel)

				board.POST("/uploads/presign", attachmentHandler.PresignUpload)
				board.GET("/cards/:cardId/attachments", attachmentHandler.ListAttachments)
				board.POST("/cards/:cardId/attachments", attachmentHandler.CreateAttachment)
				board.DELETE("/attachments/:attachmentId", attachmentHandler.DeleteAttachment)
			}
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		logger.Error("Failed to close database", zap.Error(err))
	}
}

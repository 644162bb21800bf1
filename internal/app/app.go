package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	marketHTTP "campus-market/internal/controller/http"
	"campus-market/internal/repo/persistent"
	"campus-market/internal/usecase"
	"campus-market/pkg/config"
	"campus-market/pkg/jwt"
	"campus-market/pkg/logger"
	"campus-market/pkg/mailer"
	"campus-market/pkg/middleware"
	"campus-market/pkg/queue"
	"campus-market/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "campus-market/docs" // Swagger docs
)

func Run(
	cfg *config.Config,
	log *logger.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	queueClient *queue.Client,
	s3Client *s3.Client,
	emailSender mailer.Sender,
) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	itemRepo := persistent.NewItemRepository(db)
	clubRepo := persistent.NewClubRepository(db)
	messageRepo := persistent.NewMessageRepository(db)
	transactionRepo := persistent.NewTransactionRepository(db)
	balanceRepo := persistent.NewBalanceRepository(db)
	notificationRepo := persistent.NewNotificationRepository(db)

	// Initialize usecases
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, log)
	itemUseCase := usecase.NewItemUseCase(itemRepo, clubRepo, s3Client, log)
	clubUseCase := usecase.NewClubUseCase(clubRepo, log)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, itemRepo, redisClient, queueClient, log)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, redisClient, log)
	transactionUseCase := usecase.NewTransactionUseCase(transactionRepo, itemRepo, balanceRepo, queueClient, log, cfg.PlatformFeeRate)
	balanceUseCase := usecase.NewBalanceUseCase(balanceRepo, log)
	settlementUseCase := usecase.NewSettlementUseCase(
		transactionRepo, balanceRepo, notificationUseCase, redisClient, log,
		time.Duration(cfg.BalanceHoldDays)*24*time.Hour, cfg.PlatformFeeRate, cfg.SweepBatchSize,
	)
	unreadNotifierUseCase := usecase.NewUnreadNotifierUseCase(
		messageRepo, userRepo, emailSender, redisClient, log,
		time.Duration(cfg.UnreadGraceSeconds)*time.Second, cfg.SweepBatchSize, cfg.AppBaseURL,
	)

	// Initialize HTTP handlers
	authHandler := marketHTTP.NewAuthHandler(authUseCase, log)
	itemHandler := marketHTTP.NewItemHandler(itemUseCase, log)
	clubHandler := marketHTTP.NewClubHandler(clubUseCase, log)
	messageHandler := marketHTTP.NewMessageHandler(messageUseCase, log)
	transactionHandler := marketHTTP.NewTransactionHandler(transactionUseCase, log)
	balanceHandler := marketHTTP.NewBalanceHandler(balanceUseCase, settlementUseCase, log)
	notificationHandler := marketHTTP.NewNotificationHandler(notificationUseCase, log)
	cronHandler := marketHTTP.NewCronHandler(unreadNotifierUseCase, log)

	// Queue consumer: persisted notifications for events published by other
	// usecases (new messages, sold items).
	if queueClient != nil {
		if err := queueClient.ConsumeNotificationTasks(func(task *queue.Task) error {
			return notificationUseCase.HandleNotificationTask(task)
		}); err != nil {
			log.Error("Failed to start notification consumer: %v", err)
		}
	}

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/items", itemHandler.ListItems)
	api.GET("/items/:id", itemHandler.GetItem)
	api.GET("/clubs", clubHandler.ListClubs)
	api.GET("/clubs/:id", clubHandler.GetClub)
	api.GET("/clubs/:id/members", clubHandler.GetMembers)

	// Machine-triggered routes - shared secret, not a user token
	api.GET("/cron/notify-unread-messages", middleware.CronAuthMiddleware(cfg.CronSecret), cronHandler.NotifyUnreadMessages)

	// Protected routes - require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	{
		protected.GET("/profile", authHandler.GetProfile)
		protected.PUT("/profile", authHandler.UpdateProfile)

		protected.POST("/items", itemHandler.CreateItem)
		protected.PUT("/items/:id", itemHandler.UpdateItem)
		protected.DELETE("/items/:id", itemHandler.RemoveItem)
		protected.POST("/items/:id/image", itemHandler.UploadImage)

		protected.POST("/clubs", clubHandler.CreateClub)
		protected.PUT("/clubs/:id", clubHandler.UpdateClub)
		protected.DELETE("/clubs/:id", clubHandler.DeleteClub)
		protected.POST("/clubs/:id/join", clubHandler.JoinClub)
		protected.POST("/clubs/:id/leave", clubHandler.LeaveClub)

		protected.POST("/conversations", messageHandler.StartConversation)
		protected.GET("/conversations", messageHandler.ListConversations)
		protected.POST("/conversations/:id/messages", messageHandler.SendMessage)
		protected.GET("/conversations/:id/messages", messageHandler.GetMessages)
		protected.POST("/conversations/:id/read", messageHandler.MarkConversationRead)

		protected.POST("/transactions", transactionHandler.Purchase)
		protected.GET("/transactions", transactionHandler.ListTransactions)
		protected.POST("/transactions/:id/confirm", transactionHandler.Confirm)
		protected.POST("/transactions/:id/cancel", transactionHandler.Cancel)

		protected.GET("/balance", balanceHandler.GetBalance)
		protected.POST("/balance/withdraw", balanceHandler.Withdraw)
		protected.POST("/balance/auto-release", balanceHandler.AutoRelease)

		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.GET("/notifications/unread-count", notificationHandler.CountUnread)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Campus market starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down campus market...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Close queue connection
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Campus market exited")
}

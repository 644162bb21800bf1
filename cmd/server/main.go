package main

import (
	"campus-market/internal/app"
	"campus-market/pkg/cache"
	"campus-market/pkg/config"
	"campus-market/pkg/database"
	"campus-market/pkg/logger"
	"campus-market/pkg/mailer"
	"campus-market/pkg/models"
	"campus-market/pkg/queue"
	"campus-market/pkg/s3"
)

// @title           Campus Market API
// @version         1.0
// @description     University marketplace with escrowed balances and messaging.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Club{},
		&models.ClubMember{},
		&models.Conversation{},
		&models.Message{},
		&models.Transaction{},
		&models.UserStats{},
		&models.Notification{},
	); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	emailSender, err := mailer.NewSESClient(cfg, log)
	if err != nil {
		log.Error("Failed to create SES client: %v", err)
		panic(err)
	}

	app.Run(cfg, log, db, redisClient, queueClient, s3Client, emailSender)
}

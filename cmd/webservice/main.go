package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ohmfruit/fruitstore-service/config"
	"github.com/ohmfruit/fruitstore-service/internal/app"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/cache/redis"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/database/mongodb"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/message-queue/kafka"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/storage/s3"
	"github.com/rs/zerolog/log"
)

func main() {
	conf := config.CreateNewConfig()
	app.ConfigureLogger(conf)

	if conf.AuthConfig.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	if len(conf.AuthConfig.AdminUsers) == 0 {
		log.Warn().Msg("ADMIN_USERS is empty, nobody can log in")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mongodb.ConnectToMongoDB(ctx, conf.MongoDBConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Client().Disconnect(context.Background())

	storage, err := s3.CreateS3Storage(conf.StorageConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create object storage client")
	}

	cache, err := redis.CreateCache(ctx, conf.RedisConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer cache.Close()

	publisher := kafka.CreateKafkaPublisher(conf.KafkaConfig)
	defer publisher.Close()

	server := app.App{
		DB:        db,
		Config:    conf,
		Storage:   storage,
		Cache:     cache,
		Publisher: publisher,
	}

	if err := server.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up server")
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		log.Info().Msg("Shutting down")
		if err := server.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to stop server cleanly")
		}
	}()

	server.Start()
	<-stopped
}

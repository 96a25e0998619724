package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emr-gateway-service/internal/app/config"
	"emr-gateway-service/internal/app/delivery/http/middlewares"
	"emr-gateway-service/internal/app/delivery/http/routers"
	"emr-gateway-service/internal/app/drivers/database"
	"emr-gateway-service/internal/app/drivers/logger"
	"emr-gateway-service/internal/app/drivers/messaging"
	"emr-gateway-service/internal/app/drivers/storage"
	"emr-gateway-service/internal/app/services/emr"
	"emr-gateway-service/internal/app/services/gateway"
	"emr-gateway-service/internal/app/services/hospitals"
	"emr-gateway-service/internal/app/services/shared/auditqueue"
	"emr-gateway-service/internal/app/services/shared/redis"
	"emr-gateway-service/internal/app/services/shared/secrets"
	"emr-gateway-service/internal/app/services/shared/session"
	sharedstorage "emr-gateway-service/internal/app/services/shared/storage"
	"emr-gateway-service/internal/app/services/tokens"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	// Redis
	redisRepository := redis.NewRedisRepository(redisClient)

	// Sessions
	sessionService := session.NewSessionService(redisRepository)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(zapLogger, redisRepository, internalConfig)

	// Hospital credentials
	credentialRepository := hospitals.NewHospitalCredentialMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	secretDecryptor := secrets.NewAesGcmDecryptor(internalConfig.Secrets.MasterKey, internalConfig.Secrets.Salt)
	credentialResolver := hospitals.NewCredentialResolver(credentialRepository, secretDecryptor, zapLogger)

	// EMR access
	tokenAcquirer := tokens.NewTokenAcquirer(zapLogger, internalConfig.EMR.AssertionLifetimeInSeconds)
	dispatcher := emr.NewEMRDispatcher(zapLogger, internalConfig.EMR.RequestTimeoutInSeconds)

	// Audit
	auditRecorder, err := auditqueue.NewService(rabbitMQ, zapLogger)
	if err != nil {
		log.Fatalf("Failed to initialize audit queue: %v", err)
	}

	// Document storage
	documentStorage := sharedstorage.NewMinioStorage(minioClient)

	// Gateway
	gatewayUsecase := gateway.NewGatewayUsecase(
		zapLogger,
		credentialResolver,
		credentialRepository,
		tokenAcquirer,
		dispatcher,
		auditRecorder,
		documentStorage,
		internalConfig,
	)
	gatewayController := gateway.NewGatewayController(zapLogger, gatewayUsecase, sessionService, internalConfig)

	routers.SetupRoutes(chiRouter, internalConfig, middlewares, gatewayController)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error closing connections: %v", err)
	}

	log.Println("Server exiting")
}

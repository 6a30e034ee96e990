package main

import (
	"context"
	"fmt"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/delivery/http/controllers"
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/delivery/http/routers"
	"intake-service/internal/app/drivers/database"
	"intake-service/internal/app/drivers/logger"
	smtpDriver "intake-service/internal/app/drivers/mailer"
	"intake-service/internal/app/drivers/messaging"
	storageDriver "intake-service/internal/app/drivers/storage"
	"intake-service/internal/app/services/core/auth"
	"intake-service/internal/app/services/core/patients"
	"intake-service/internal/app/services/core/session"
	"intake-service/internal/app/services/core/users"
	"intake-service/internal/app/services/shared/mailer"
	"intake-service/internal/app/services/shared/printing"
	"intake-service/internal/app/services/shared/redis"
	"intake-service/internal/app/services/shared/storage"
	"intake-service/internal/pkg/constvars"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	err := internalConfig.Backend.Validate()
	if err != nil {
		log.Fatalf("Invalid backend configuration: %v", err)
	}

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		zapLogger.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig, zapLogger),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig, zapLogger),
		Minio:          storageDriver.NewMinio(driverConfig, internalConfig.Backend.StorageBucket),
		MongoDB:        database.NewMongoDB(driverConfig),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		zapLogger.Fatal("Error while bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while shutting down dependencies: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig
	dbName := internalConfig.Backend.ProjectID

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Session
	sessionService := session.NewSessionService(redisRepository)
	sessionHub := session.NewHub(log, bootstrap.Redis)
	sessionHub.Start(context.Background())

	// Mailer
	mailerService, err := mailer.NewMailerService(bootstrap.RabbitMQ, internalConfig.RabbitMQ.MailerQueue)
	if err != nil {
		return fmt.Errorf("mailer service: %w", err)
	}
	smtpClient := smtpDriver.NewSMTPClient(bootstrap.DriverConfig)
	mailerWorker, err := mailer.NewWorker(log, bootstrap.RabbitMQ, mailer.NewSMTPDeliverer(smtpClient), internalConfig.RabbitMQ.MailerQueue)
	if err != nil {
		return fmt.Errorf("mailer worker: %w", err)
	}
	err = mailerWorker.Start(context.Background())
	if err != nil {
		return fmt.Errorf("mailer worker: %w", err)
	}

	bootstrap.WorkerStop = func() {
		mailerWorker.Stop()
		sessionHub.Stop()
	}

	// User
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	err = userMongoRepository.EnsureIndexes(ctx)
	if err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	// Patient
	var patientRepository contracts.PatientRepository
	switch internalConfig.Store.Driver {
	case constvars.StoreDriverMemory:
		log.Warn("Patient records are kept in memory and are lost on restart")
		patientRepository = patients.NewPatientMemoryRepository()
	default:
		patientMongoRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, dbName)
		err = patientMongoRepository.EnsureIndexes(ctx)
		if err != nil {
			return fmt.Errorf("patient indexes: %w", err)
		}
		patientRepository = patientMongoRepository
	}
	patientUsecase := patients.NewPatientUsecase(log, patientRepository)

	// Printing
	slipStorage := storage.NewMinioStorage(bootstrap.Minio)
	archivePrinter := printing.NewArchivePrinter(slipStorage, internalConfig.Backend.StorageBucket)

	// Auth
	authUsecase := auth.NewAuthUsecase(log, userMongoRepository, sessionService, redisRepository, mailerService, internalConfig)

	// Middlewares
	httpMiddlewares := middlewares.NewMiddlewares(log, authUsecase, internalConfig)
	credentialLimiter := middlewares.NewRateLimiter(
		log,
		internalConfig.App.LoginMaxAttempts,
		time.Minute,
		time.Duration(internalConfig.App.LoginBlockTimeInMinutes)*time.Minute,
	)

	// Controllers
	authController := controllers.NewAuthController(log, authUsecase)
	sessionController := controllers.NewSessionController(log, sessionHub)
	sessionController.KeepAlive = internalConfig.App.SessionStreamKeepAlive
	patientController := controllers.NewPatientController(log, patientUsecase, archivePrinter, internalConfig.Backend.StorageBucket)
	healthController := controllers.NewHealthController(internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		httpMiddlewares,
		credentialLimiter,
		authController,
		sessionController,
		patientController,
		healthController,
	)
	return nil
}

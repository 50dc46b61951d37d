//go:build wireinject
// +build wireinject

package di

import (
	"context"
	"fmt"

	"github.com/google/wire"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/application/usecase"
	"github.com/fidc/receivables-core/internal/config"
	"github.com/fidc/receivables-core/internal/infrastructure/database/postgres"
	"github.com/fidc/receivables-core/internal/infrastructure/http/handler"
	"github.com/fidc/receivables-core/internal/infrastructure/http/server"
	"github.com/fidc/receivables-core/internal/infrastructure/messaging/rabbitmq"
	"github.com/fidc/receivables-core/internal/infrastructure/storage"
	"github.com/fidc/receivables-core/internal/infrastructure/worker"
	"github.com/fidc/receivables-core/pkg/database"
	"github.com/fidc/receivables-core/pkg/logger"
	"gorm.io/gorm"
)

// InitializeAPI initializes the entire API application with dependency injection
func InitializeAPI(ctx context.Context, cfg *config.AppConfig, l logger.Logger) (*server.Server, error) {
	wire.Build(
		// Infrastructure
		provideDatabase,
		postgres.NewTenantRepository,
		postgres.NewBankProfileRepository,
		postgres.NewInvoiceRepository,
		postgres.NewBoletoRepository,
		postgres.NewRemittanceRepository,
		postgres.NewEventRepository,
		postgres.NewUnitOfWork,
		providePublisher,
		providePort,
		server.NewServer,

		// Application
		usecase.NewTenantUseCase,
		usecase.NewInvoiceUseCase,
		usecase.NewBoletoUseCase,
		usecase.NewRemittanceUseCase,

		// HTTP
		handler.NewTenantHandler,
		handler.NewInvoiceHandler,
		handler.NewBoletoHandler,
		handler.NewRemittanceHandler,
	)
	return &server.Server{}, nil
}

// InitializeWorker initializes the worker with dependency injection
func InitializeWorker(ctx context.Context, cfg *config.AppConfig, l logger.Logger) (*worker.Worker, error) {
	wire.Build(
		// Infrastructure
		provideDatabase,
		postgres.NewBoletoRepository,
		postgres.NewBankProfileRepository,
		postgres.NewRemittanceRepository,
		postgres.NewTenantRepository,
		postgres.NewEventRepository,
		provideConsumer,
		provideStorage,
		worker.NewWorker,
		provideMaxRetries,
	)
	return &worker.Worker{}, nil
}

// provideDatabase provides database instance
func provideDatabase(cfg *config.AppConfig) (*gorm.DB, error) {
	// Initialize database if not already initialized
	if database.GetDB() == nil {
		ctx := context.Background()
		if err := database.InitDatabase(ctx, cfg.GetDatabaseDSN(), cfg.Env); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	return database.GetDB(), nil
}

// providePublisher provides RabbitMQ publisher
func providePublisher(cfg *config.AppConfig) (dto.Publisher, error) {
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}
	return dto.Publisher(publisher), nil
}

// providePort provides the server port
func providePort(cfg *config.AppConfig) string {
	return cfg.Port
}

// provideConsumer provides RabbitMQ consumer
func provideConsumer(cfg *config.AppConfig) (dto.Consumer, error) {
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}
	return dto.Consumer(consumer), nil
}

// provideMaxRetries provides max retry count
func provideMaxRetries() int {
	return 5
}

// provideStorage provides storage service
func provideStorage(cfg *config.AppConfig) (storage.StorageService, error) {
	switch cfg.StorageType {
	case "minio":
		return storage.NewMinIOStorage(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StorageUseSSL,
		)
	default:
		return storage.NewLocalStorage(
			cfg.StorageBasePath,
			cfg.StoragePublicURL,
			cfg.StorageBucket,
		)
	}
}

package di

import (
	"context"

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
)

// InitializeAPIManual initializes the entire API application manually
// (alternative to wire).
func InitializeAPIManual(ctx context.Context, cfg *config.AppConfig, l logger.Logger) (*server.Server, error) {
	// Initialize database
	err := database.InitDatabase(ctx, cfg.GetDatabaseDSN(), cfg.Env)
	if err != nil {
		return nil, err
	}
	db := database.GetDB()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepository(db)
	bankProfileRepo := postgres.NewBankProfileRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	boletoRepo := postgres.NewBoletoRepository(db)
	remittanceRepo := postgres.NewRemittanceRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Initialize publisher
	rabbitmqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}
	publisher := dto.Publisher(rabbitmqPublisher)

	// Initialize use cases
	tenantUseCase := usecase.NewTenantUseCase(tenantRepo, bankProfileRepo)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, eventRepo)
	boletoUseCase := usecase.NewBoletoUseCase(uow, invoiceRepo, bankProfileRepo, boletoRepo, eventRepo, publisher, l)
	remittanceUseCase := usecase.NewRemittanceUseCase(uow, tenantRepo, bankProfileRepo, boletoRepo, remittanceRepo, eventRepo, publisher, l)

	// Initialize handlers
	tenantHandler := handler.NewTenantHandler(tenantUseCase)
	invoiceHandler := handler.NewInvoiceHandler(invoiceUseCase)
	boletoHandler := handler.NewBoletoHandler(boletoUseCase)
	remittanceHandler := handler.NewRemittanceHandler(remittanceUseCase)

	// Initialize server
	srv := server.NewServer(
		tenantHandler,
		invoiceHandler,
		boletoHandler,
		remittanceHandler,
		l,
		cfg.Port,
	)

	return srv, nil
}

// InitializeWorkerManual initializes the worker manually
func InitializeWorkerManual(ctx context.Context, cfg *config.AppConfig, l logger.Logger) (*worker.Worker, error) {
	// Initialize database
	err := database.InitDatabase(ctx, cfg.GetDatabaseDSN(), cfg.Env)
	if err != nil {
		return nil, err
	}
	db := database.GetDB()

	// Initialize repositories
	boletoRepo := postgres.NewBoletoRepository(db)
	bankProfileRepo := postgres.NewBankProfileRepository(db)
	remittanceRepo := postgres.NewRemittanceRepository(db)
	tenantRepo := postgres.NewTenantRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	// Initialize messaging
	rabbitmqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}
	consumer := dto.Consumer(rabbitmqConsumer)

	// Initialize blob storage, the worker's target for rendered PDFs and
	// CNAB files
	storageService, err := newStorageService(cfg)
	if err != nil {
		return nil, err
	}

	// Initialize worker
	w := worker.NewWorker(
		boletoRepo,
		bankProfileRepo,
		remittanceRepo,
		tenantRepo,
		eventRepo,
		consumer,
		storageService,
		l,
		5, // max retries
	)

	return w, nil
}

func newStorageService(cfg *config.AppConfig) (storage.StorageService, error) {
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

package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"statement-ocr/application/parsers"
	"statement-ocr/application/services"
	"statement-ocr/application/usecases"
	"statement-ocr/domain/interfaces"
	"statement-ocr/infrastructure/logger"
	"statement-ocr/infrastructure/modelstore"
	"statement-ocr/infrastructure/repository"
	"statement-ocr/infrastructure/tesseract"
)

// Container represents the dependency injection container
type Container struct {
	Config *Config

	// Infrastructure
	Logger interfaces.Logger
	DB     *gorm.DB

	// Repositories
	StatementRepository interfaces.StatementRepository

	// Services
	ModelCatalog      interfaces.ModelCatalog
	ArtifactFetcher   interfaces.ArtifactFetcher
	BackupEngineProbe interfaces.BackupEngineProbe
	ParserRegistry    *parsers.Registry
	BalanceValidator  interfaces.BalanceValidator

	// Use Cases
	SetupModelsUseCase    interfaces.SetupModelsUseCase
	VerifyInstallUseCase  interfaces.VerifyInstallUseCase
	ParseStatementUseCase interfaces.ParseStatementUseCase
}

// NewContainer creates a new dependency injection container
func NewContainer(config *Config) (*Container, error) {
	container := &Container{
		Config: config,
	}

	// Initialize logger
	container.Logger = logger.NewLogrusLogger(config.LogLevel)

	// Initialize database (optional)
	if config.Database.Host != "" {
		if err := container.initDatabase(); err != nil {
			container.Logger.Warn("Failed to initialize database", "error", err)
			// Database is optional, so we continue
		}
	}

	// Initialize services
	container.initServices()

	// Initialize use cases
	container.initUseCases()

	return container, nil
}

// initDatabase initializes the database connection
func (c *Container) initDatabase() error {
	dsn := c.Config.Database.GetDatabaseDSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)

	c.DB = db

	// Initialize repositories
	c.StatementRepository = repository.NewStatementRepository(db)

	return nil
}

// initServices initializes domain services
func (c *Container) initServices() {
	c.ModelCatalog = modelstore.NewRegistry()
	c.ArtifactFetcher = modelstore.NewDownloader(c.Config.DownloadTimeout, c.Logger)
	c.BackupEngineProbe = tesseract.NewProbe(c.Logger)
	c.ParserRegistry = parsers.NewRegistry()
	c.BalanceValidator = services.NewBalanceValidator()
}

// initUseCases initializes use cases
func (c *Container) initUseCases() {
	c.SetupModelsUseCase = usecases.NewSetupModelsUseCase(
		c.ModelCatalog,
		c.ArtifactFetcher,
		c.Logger,
	)

	c.VerifyInstallUseCase = usecases.NewVerifyInstallUseCase(
		c.ModelCatalog,
		c.BackupEngineProbe,
		c.Logger,
	)

	c.ParseStatementUseCase = usecases.NewParseStatementUseCase(
		c.ParserRegistry,
		c.BalanceValidator,
		c.StatementRepository,
		c.Logger,
	)
}

// Close closes all resources
func (c *Container) Close() error {
	// Close database
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				c.Logger.Error("Failed to close database", "error", err)
			}
		}
	}

	return nil
}

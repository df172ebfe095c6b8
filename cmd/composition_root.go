package cmd

import (
	"context"
	"fmt"
	"log/slog"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpadapter "repairshop/internal/adapters/in/http"
	"repairshop/internal/adapters/out/inmemory"
	"repairshop/internal/adapters/out/postgres/orderrepo"
	"repairshop/internal/core/application/usecases/commands"
	"repairshop/internal/core/ports"
	"repairshop/internal/jobs"
)

// resettableOrderRepository is the repository port plus the Clear operation
// the reset endpoint needs. Both storage adapters satisfy it.
type resettableOrderRepository interface {
	ports.OrderRepository
	Clear(ctx context.Context) error
}

// CompositionRoot wires the storage adapter into the application's handlers,
// HTTP server, and background jobs.
type CompositionRoot struct {
	repository resettableOrderRepository
}

// NewCompositionRoot selects the storage backend from the config: Postgres
// when DB_HOST is set, the in-memory store otherwise.
func NewCompositionRoot(config Config) (CompositionRoot, error) {
	if config.DBHost == "" {
		return CompositionRoot{repository: inmemory.NewOrderRepository()}, nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to migrate schema: %w", err)
	}

	repository, err := orderrepo.NewGormOrderRepository(db)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{repository: repository}, nil
}

func (c *CompositionRoot) CreateBatchCommandHandler() (*commands.BatchCommandHandler, error) {
	return commands.NewBatchCommandHandler(c.repository)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	batchHandler, err := c.CreateBatchCommandHandler()
	if err != nil {
		return nil, err
	}
	return httpadapter.NewServer(batchHandler, c.repository), nil
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.repository, logger)
}

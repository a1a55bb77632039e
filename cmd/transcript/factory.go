package transcript

import (
	"context"
	"fmt"

	"github.com/etrmlabs/scriba/internal/config"
	transcriptRepo "github.com/etrmlabs/scriba/internal/repository/transcript"
	"github.com/etrmlabs/scriba/internal/service/export"
	"github.com/etrmlabs/scriba/internal/service/refine"
	"github.com/etrmlabs/scriba/internal/service/storage"
)

// Services bundles the dependencies the transcript commands operate on
type Services struct {
	Config   *config.Config
	Store    transcriptRepo.Store
	Refiner  refine.Refiner
	Exporter export.Exporter
	Files    storage.FileStore
}

// ServiceFactory creates transcript service instances
type ServiceFactory struct{}

// NewServiceFactory creates a new service factory
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// CreateServices creates the transcript services with all dependencies
func (f *ServiceFactory) CreateServices(ctx context.Context) (*Services, func(), error) {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database connection
	dbPool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	services := &Services{
		Config:   cfg,
		Store:    transcriptRepo.NewStore(dbPool),
		Refiner:  refine.NewGeminiRefiner(cfg.GeminiAPIKey),
		Exporter: export.NewWordExporter(),
	}

	// Object storage is optional; without it imports keep audio local only
	if cfg.StorageURL != "" && cfg.StorageKey != "" {
		services.Files = storage.NewSupabaseStore(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket)
	}

	// Cleanup function
	cleanup := func() {
		dbPool.Close()
	}

	return services, cleanup, nil
}

// resolveServices returns the provided services (for testing) or builds real
// ones through the factory
func resolveServices(ctx context.Context, services *Services) (*Services, func(), error) {
	if services != nil {
		return services, func() {}, nil
	}
	return NewServiceFactory().CreateServices(ctx)
}

package app

import (
	"fmt"

	datashareHTTP "github.com/allisson/datashare/internal/datashare/http"
	datashareRepository "github.com/allisson/datashare/internal/datashare/repository"
	datashareUseCase "github.com/allisson/datashare/internal/datashare/usecase"
	"github.com/allisson/datashare/internal/kvstore"
	"github.com/allisson/datashare/internal/metrics"
)

// RegistryRepository returns the registry repository.
func (c *Container) RegistryRepository() (datashareUseCase.RegistryRepository, error) {
	return resolve(c, &c.registryRepositoryInit, "registryRepository", &c.registryRepository,
		func() (datashareUseCase.RegistryRepository, error) {
			store, err := c.storeFor("registry repository")
			if err != nil {
				return nil, err
			}
			return datashareRepository.NewKVRegistryRepository(store), nil
		})
}

// DataRepository returns the data tier repository.
func (c *Container) DataRepository() (datashareUseCase.DataRepository, error) {
	return resolve(c, &c.dataRepositoryInit, "dataRepository", &c.dataRepository,
		func() (datashareUseCase.DataRepository, error) {
			store, err := c.storeFor("data repository")
			if err != nil {
				return nil, err
			}
			return datashareRepository.NewKVDataRepository(store), nil
		})
}

// AccessRepository returns the grant and access request repository.
func (c *Container) AccessRepository() (datashareUseCase.AccessRepository, error) {
	return resolve(c, &c.accessRepositoryInit, "accessRepository", &c.accessRepository,
		func() (datashareUseCase.AccessRepository, error) {
			store, err := c.storeFor("access repository")
			if err != nil {
				return nil, err
			}
			return datashareRepository.NewKVAccessRepository(store), nil
		})
}

// AnalyticsRepository returns the access counter repository.
func (c *Container) AnalyticsRepository() (datashareUseCase.AnalyticsRepository, error) {
	return resolve(c, &c.analyticsRepositoryInit, "analyticsRepository", &c.analyticsRepository,
		func() (datashareUseCase.AnalyticsRepository, error) {
			store, err := c.storeFor("analytics repository")
			if err != nil {
				return nil, err
			}
			return datashareRepository.NewKVAnalyticsRepository(store), nil
		})
}

// RegistryUseCase returns the registry use case. It also serves as the admin
// guard of the HTTP layer.
func (c *Container) RegistryUseCase() (datashareUseCase.RegistryUseCase, error) {
	return resolve(c, &c.registryUseCaseInit, "registryUseCase", &c.registryUseCase, c.initRegistryUseCase)
}

// DataUseCase returns the data tier use case.
func (c *Container) DataUseCase() (datashareUseCase.DataUseCase, error) {
	return resolve(c, &c.dataUseCaseInit, "dataUseCase", &c.dataUseCase, c.initDataUseCase)
}

// AccessUseCase returns the access controller use case.
func (c *Container) AccessUseCase() (datashareUseCase.AccessUseCase, error) {
	return resolve(c, &c.accessUseCaseInit, "accessUseCase", &c.accessUseCase, c.initAccessUseCase)
}

// AnalyticsUseCase returns the analytics use case.
func (c *Container) AnalyticsUseCase() (datashareUseCase.AnalyticsUseCase, error) {
	return resolve(c, &c.analyticsUseCaseInit, "analyticsUseCase", &c.analyticsUseCase, c.initAnalyticsUseCase)
}

// RegistryHandler returns the HTTP handler for token registration.
func (c *Container) RegistryHandler() (*datashareHTTP.RegistryHandler, error) {
	return resolve(c, &c.registryHandlerInit, "registryHandler", &c.registryHandler,
		func() (*datashareHTTP.RegistryHandler, error) {
			useCase, err := c.RegistryUseCase()
			if err != nil {
				return nil, fmt.Errorf("failed to get registry use case for registry handler: %w", err)
			}
			return datashareHTTP.NewRegistryHandler(useCase, c.Logger()), nil
		})
}

// DataHandler returns the HTTP handler for the data tiers.
func (c *Container) DataHandler() (*datashareHTTP.DataHandler, error) {
	return resolve(c, &c.dataHandlerInit, "dataHandler", &c.dataHandler, func() (*datashareHTTP.DataHandler, error) {
		useCase, err := c.DataUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get data use case for data handler: %w", err)
		}
		return datashareHTTP.NewDataHandler(useCase, c.Logger()), nil
	})
}

// AccessHandler returns the HTTP handler for grants and access requests.
func (c *Container) AccessHandler() (*datashareHTTP.AccessHandler, error) {
	return resolve(c, &c.accessHandlerInit, "accessHandler", &c.accessHandler, func() (*datashareHTTP.AccessHandler, error) {
		useCase, err := c.AccessUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get access use case for access handler: %w", err)
		}
		return datashareHTTP.NewAccessHandler(useCase, c.Logger()), nil
	})
}

// AnalyticsHandler returns the HTTP handler for analytics and integrity checks.
func (c *Container) AnalyticsHandler() (*datashareHTTP.AnalyticsHandler, error) {
	return resolve(c, &c.analyticsHandlerInit, "analyticsHandler", &c.analyticsHandler,
		func() (*datashareHTTP.AnalyticsHandler, error) {
			useCase, err := c.AnalyticsUseCase()
			if err != nil {
				return nil, fmt.Errorf("failed to get analytics use case for analytics handler: %w", err)
			}
			return datashareHTTP.NewAnalyticsHandler(useCase, c.Logger()), nil
		})
}

func (c *Container) storeFor(component string) (kvstore.Store, error) {
	store, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for %s: %w", component, err)
	}
	return store, nil
}

// datashareDeps gathers what every datashare use case is built from.
type datashareDeps struct {
	txManager     kvstore.TxManager
	registryRepo  datashareUseCase.RegistryRepository
	dataRepo      datashareUseCase.DataRepository
	accessRepo    datashareUseCase.AccessRepository
	analyticsRepo datashareUseCase.AnalyticsRepository
	audit         datashareUseCase.AuditRecorder
	metrics       metrics.BusinessMetrics
}

func (c *Container) datashareDeps(component string) (*datashareDeps, error) {
	var (
		deps datashareDeps
		err  error
	)
	if deps.txManager, err = c.TxManager(); err != nil {
		return nil, fmt.Errorf("failed to get tx manager for %s: %w", component, err)
	}
	if deps.registryRepo, err = c.RegistryRepository(); err != nil {
		return nil, fmt.Errorf("failed to get registry repository for %s: %w", component, err)
	}
	if deps.dataRepo, err = c.DataRepository(); err != nil {
		return nil, fmt.Errorf("failed to get data repository for %s: %w", component, err)
	}
	if deps.accessRepo, err = c.AccessRepository(); err != nil {
		return nil, fmt.Errorf("failed to get access repository for %s: %w", component, err)
	}
	if deps.analyticsRepo, err = c.AnalyticsRepository(); err != nil {
		return nil, fmt.Errorf("failed to get analytics repository for %s: %w", component, err)
	}
	if deps.audit, err = c.AuditLogUseCase(); err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for %s: %w", component, err)
	}
	if c.config.MetricsEnabled {
		if deps.metrics, err = c.BusinessMetrics(); err != nil {
			return nil, fmt.Errorf("failed to get business metrics for %s: %w", component, err)
		}
	}
	return &deps, nil
}

func (c *Container) initRegistryUseCase() (datashareUseCase.RegistryUseCase, error) {
	deps, err := c.datashareDeps("registry use case")
	if err != nil {
		return nil, err
	}

	useCase := datashareUseCase.NewRegistryUseCase(deps.txManager, deps.registryRepo, c.Authorizer(), deps.audit)
	if deps.metrics != nil {
		return datashareUseCase.NewRegistryUseCaseWithMetrics(useCase, deps.metrics), nil
	}
	return useCase, nil
}

func (c *Container) initDataUseCase() (datashareUseCase.DataUseCase, error) {
	deps, err := c.datashareDeps("data use case")
	if err != nil {
		return nil, err
	}

	useCase := datashareUseCase.NewDataUseCase(
		deps.txManager,
		deps.registryRepo,
		deps.dataRepo,
		deps.accessRepo,
		deps.analyticsRepo,
		c.Authorizer(),
		deps.audit,
	)
	if deps.metrics != nil {
		return datashareUseCase.NewDataUseCaseWithMetrics(useCase, deps.metrics), nil
	}
	return useCase, nil
}

func (c *Container) initAccessUseCase() (datashareUseCase.AccessUseCase, error) {
	deps, err := c.datashareDeps("access use case")
	if err != nil {
		return nil, err
	}

	useCase := datashareUseCase.NewAccessUseCase(
		deps.txManager,
		deps.registryRepo,
		deps.dataRepo,
		deps.accessRepo,
		deps.analyticsRepo,
		c.Authorizer(),
		deps.audit,
	)
	if deps.metrics != nil {
		return datashareUseCase.NewAccessUseCaseWithMetrics(useCase, deps.metrics), nil
	}
	return useCase, nil
}

func (c *Container) initAnalyticsUseCase() (datashareUseCase.AnalyticsUseCase, error) {
	deps, err := c.datashareDeps("analytics use case")
	if err != nil {
		return nil, err
	}

	useCase := datashareUseCase.NewAnalyticsUseCase(deps.txManager, deps.registryRepo, deps.dataRepo, deps.analyticsRepo)
	if deps.metrics != nil {
		return datashareUseCase.NewAnalyticsUseCaseWithMetrics(useCase, deps.metrics), nil
	}
	return useCase, nil
}

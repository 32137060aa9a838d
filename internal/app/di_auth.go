package app

import (
	"fmt"

	authHTTP "github.com/allisson/datashare/internal/auth/http"
	authRepository "github.com/allisson/datashare/internal/auth/repository"
	authService "github.com/allisson/datashare/internal/auth/service"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
)

// SecretService returns the service that generates and verifies client secrets.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// TokenService returns the service that generates and hashes bearer tokens.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// Authorizer returns the caller identity checker.
func (c *Container) Authorizer() authService.Authorizer {
	c.authorizerInit.Do(func() {
		c.authorizer = authService.NewAuthorizer()
	})
	return c.authorizer
}

// AuditSigner returns the signer keyed from AUDIT_SIGNING_KEY.
func (c *Container) AuditSigner() (authService.AuditSigner, error) {
	return resolve(c, &c.auditSignerInit, "auditSigner", &c.auditSigner, func() (authService.AuditSigner, error) {
		signer, err := authService.NewAuditSigner([]byte(c.config.AuditSigningKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create audit signer: %w", err)
		}
		return signer, nil
	})
}

// ClientRepository returns the client repository.
func (c *Container) ClientRepository() (authUseCase.ClientRepository, error) {
	return resolve(c, &c.clientRepositoryInit, "clientRepository", &c.clientRepository,
		func() (authUseCase.ClientRepository, error) {
			store, err := c.Store()
			if err != nil {
				return nil, fmt.Errorf("failed to get store for client repository: %w", err)
			}
			return authRepository.NewKVClientRepository(store), nil
		})
}

// TokenRepository returns the bearer token repository.
func (c *Container) TokenRepository() (authUseCase.TokenRepository, error) {
	return resolve(c, &c.tokenRepositoryInit, "tokenRepository", &c.tokenRepository,
		func() (authUseCase.TokenRepository, error) {
			store, err := c.Store()
			if err != nil {
				return nil, fmt.Errorf("failed to get store for token repository: %w", err)
			}
			return authRepository.NewKVTokenRepository(store), nil
		})
}

// AuditLogRepository returns the audit log repository.
func (c *Container) AuditLogRepository() (authUseCase.AuditLogRepository, error) {
	return resolve(c, &c.auditLogRepositoryInit, "auditLogRepository", &c.auditLogRepository,
		func() (authUseCase.AuditLogRepository, error) {
			store, err := c.Store()
			if err != nil {
				return nil, fmt.Errorf("failed to get store for audit log repository: %w", err)
			}
			return authRepository.NewKVAuditLogRepository(store), nil
		})
}

// AuditLogUseCase returns the audit log use case.
func (c *Container) AuditLogUseCase() (authUseCase.AuditLogUseCase, error) {
	return resolve(c, &c.auditLogUseCaseInit, "auditLogUseCase", &c.auditLogUseCase, c.initAuditLogUseCase)
}

// ClientUseCase returns the client use case.
func (c *Container) ClientUseCase() (authUseCase.ClientUseCase, error) {
	return resolve(c, &c.clientUseCaseInit, "clientUseCase", &c.clientUseCase, c.initClientUseCase)
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	return resolve(c, &c.tokenUseCaseInit, "tokenUseCase", &c.tokenUseCase, c.initTokenUseCase)
}

// ClientHandler returns the HTTP handler for client management operations.
func (c *Container) ClientHandler() (*authHTTP.ClientHandler, error) {
	return resolve(c, &c.clientHandlerInit, "clientHandler", &c.clientHandler, func() (*authHTTP.ClientHandler, error) {
		clientUseCase, err := c.ClientUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get client use case for client handler: %w", err)
		}
		return authHTTP.NewClientHandler(clientUseCase, c.Logger()), nil
	})
}

// TokenHandler returns the HTTP handler for token operations.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	return resolve(c, &c.tokenHandlerInit, "tokenHandler", &c.tokenHandler, func() (*authHTTP.TokenHandler, error) {
		tokenUseCase, err := c.TokenUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
		}
		return authHTTP.NewTokenHandler(tokenUseCase, c.TokenService(), c.Logger()), nil
	})
}

// AuditLogHandler returns the HTTP handler for audit log operations.
func (c *Container) AuditLogHandler() (*authHTTP.AuditLogHandler, error) {
	return resolve(c, &c.auditLogHandlerInit, "auditLogHandler", &c.auditLogHandler,
		func() (*authHTTP.AuditLogHandler, error) {
			auditLogUseCase, err := c.AuditLogUseCase()
			if err != nil {
				return nil, fmt.Errorf("failed to get audit log use case for audit log handler: %w", err)
			}
			return authHTTP.NewAuditLogHandler(auditLogUseCase, c.Logger()), nil
		})
}

func (c *Container) initAuditLogUseCase() (authUseCase.AuditLogUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for audit log use case: %w", err)
	}

	auditLogRepository, err := c.AuditLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log repository for audit log use case: %w", err)
	}

	signer, err := c.AuditSigner()
	if err != nil {
		return nil, err
	}

	baseUseCase := authUseCase.NewAuditLogUseCase(txManager, auditLogRepository, signer)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for audit log use case: %w", err)
		}
		return authUseCase.NewAuditLogUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initClientUseCase() (authUseCase.ClientUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for client use case: %w", err)
	}

	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for client use case: %w", err)
	}

	baseUseCase := authUseCase.NewClientUseCase(txManager, clientRepository, c.SecretService(), auditLogUseCase)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for client use case: %w", err)
		}
		return authUseCase.NewClientUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for token use case: %w", err)
	}

	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for token use case: %w", err)
	}

	tokenRepository, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	baseUseCase := authUseCase.NewTokenUseCase(
		c.config,
		txManager,
		clientRepository,
		tokenRepository,
		c.SecretService(),
		c.TokenService(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

package cli

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/automation-practice/sessionboot/internal/config"
	"github.com/automation-practice/sessionboot/internal/handlers"
	"github.com/automation-practice/sessionboot/internal/repository"
	"github.com/automation-practice/sessionboot/internal/services"
)

// BuildServerDependencies wires repositories, the account service and the page handlers on db
func BuildServerDependencies(db *sqlx.DB, cfg config.ServerConfig, version string) (ServerDependencies, error) {
	deps := ServerDependencies{ServerConfig: cfg, Version: version}

	accounts := services.NewAccountService(
		repository.NewAccountRepository(db),
		repository.NewSessionRepository(db),
		cfg.SessionTTL,
	)

	signupHandler, err := handlers.NewSignupHandler(accounts)
	if err != nil {
		return deps, fmt.Errorf("failed to create signup handler: %w", err)
	}
	deps.SignupHandler = signupHandler

	loginHandler, err := handlers.NewLoginHandler(accounts, cfg.SecureCookies)
	if err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	deps.LoginHandler = loginHandler

	homeHandler, err := handlers.NewHomeHandler(cfg.HomeTitle)
	if err != nil {
		return deps, fmt.Errorf("failed to create home handler: %w", err)
	}
	deps.HomeHandler = homeHandler

	deps.LogoutHandler = handlers.NewLogoutHandler(accounts, cfg.SecureCookies)
	deps.RequireSession = handlers.RequireSession(accounts, cfg.SecureCookies)
	return deps, nil
}

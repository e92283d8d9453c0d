package account

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/account/application"
	"github.com/soundstage/soundstage/internal/modules/account/domain"
	"github.com/soundstage/soundstage/internal/modules/account/infrastructure/persistence/postgres"
	account_http "github.com/soundstage/soundstage/internal/modules/account/interfaces/http"
)

// Module represents the Account module
type Module struct {
	service    *application.AccountService
	repository *postgres.PgUserRepository
	handler    *account_http.AccountHandler
}

// NewModule creates and initializes the Account module
func NewModule(db *sqlx.DB, jwtSecret string, jwtExpiry time.Duration, fileService account_http.FileService, googleClientID string) *Module {
	repository := postgres.NewUserRepository(db)
	service := application.NewAccountService(repository, jwtSecret, jwtExpiry)
	handler := account_http.NewAccountHandler(service, fileService, googleClientID)

	return &Module{
		service:    service,
		repository: repository,
		handler:    handler,
	}
}

// Service returns the account service for use by the gateway layer
func (m *Module) Service() *application.AccountService {
	return m.service
}

// UserFinder returns the user finder interface for use by other modules
func (m *Module) UserFinder() domain.UserFinder {
	return m.repository
}

// UserRepository exposes the full repository for modules that update
// profile state, like subscription activation.
func (m *Module) UserRepository() domain.UserRepository {
	return m.repository
}

// HTTPHandler returns the HTTP handler for the account module
func (m *Module) HTTPHandler() *account_http.AccountHandler {
	return m.handler
}

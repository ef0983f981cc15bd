// Package wire builds the services for one CLI invocation.
package wire

import (
	"database/sql"
	"errors"

	"github.com/example/scriptembed/internal/adapters/sqlite"
	"github.com/example/scriptembed/internal/app"
	"github.com/example/scriptembed/internal/db"
	"github.com/example/scriptembed/internal/ports/primary"
)

// ErrLedgerDisabled is returned by History when no ledger path is configured.
var ErrLedgerDisabled = errors.New("run ledger is disabled (set 'ledger' in .scriptembed.yaml or pass --ledger)")

// Services holds the services of one CLI invocation.
type Services struct {
	Generate primary.GenerateService
	history  primary.HistoryService
	database *sql.DB
}

// New builds the services. An empty ledgerPath disables the run ledger.
func New(ledgerPath string) (*Services, error) {
	if ledgerPath == "" {
		return &Services{Generate: app.NewGenerateService(nil)}, nil
	}

	database, err := db.Open(ledgerPath)
	if err != nil {
		return nil, err
	}

	runRepo := sqlite.NewRunRepository(database)
	return &Services{
		Generate: app.NewGenerateService(runRepo),
		history:  app.NewHistoryService(runRepo),
		database: database,
	}, nil
}

// History returns the ledger reader, or ErrLedgerDisabled.
func (s *Services) History() (primary.HistoryService, error) {
	if s.history == nil {
		return nil, ErrLedgerDisabled
	}
	return s.history, nil
}

// Close releases the ledger connection, if any.
func (s *Services) Close() error {
	if s.database != nil {
		return s.database.Close()
	}
	return nil
}

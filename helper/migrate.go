package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotel/config"
	"slices"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

const (
	ActionUp     = "up"
	ActionStepUp = "step-up"
	ActionDown   = "down"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

// actions maps a CLI verb to the migrate call that performs it.
var actions = map[string]func(*migrate.Migrate) error{
	ActionUp:     (*migrate.Migrate).Up,
	ActionStepUp: func(mig *migrate.Migrate) error { return mig.Steps(1) },
	ActionDown:   func(mig *migrate.Migrate) error { return mig.Steps(-1) },
	ActionDrop:   (*migrate.Migrate).Down,
}

// Actions lists the supported verbs in a stable order for usage messages.
func Actions() []string {
	return []string{ActionUp, ActionStepUp, ActionDown, ActionDrop}
}

// DatabaseURL builds the migrate DSN for the write pool.
func DatabaseURL(cfg *config.Config) string {
	dsn := cfg.DB.Postgres.Write.URL(cfg.DB.Postgres.Prefix)

	if cfg.DB.Postgres.MigrationTable != "" {
		query := dsn.Query()
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
		dsn.RawQuery = query.Encode()
	}

	return dsn.String()
}

// Run applies action against the configured database. An already current
// schema is not an error.
func Run(cfg *config.Config, action string) error {
	apply, ok := actions[action]
	if !ok {
		return fmt.Errorf("%w %q, expected one of %v", ErrUnknownAction, action, Actions())
	}

	mig, err := migrate.New(migrationSource, DatabaseURL(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err = apply(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func IsAction(action string) bool {
	return slices.Contains(Actions(), action)
}

func Up(cfg *config.Config) error {
	return Run(cfg, ActionUp)
}

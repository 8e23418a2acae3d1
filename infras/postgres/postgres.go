package postgres

import (
	"errors"
	"hotel/config"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 20
	connMaxLifetime    = 30 * time.Minute
)

// Connection holds the replica pool for reads and the primary pool for writes.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres
	retry := retryPolicy{attempts: max(pg.MaxRetry, 1), wait: time.Duration(pg.RetryWaitTime) * time.Second}

	return &Connection{
		Read:  connect("read", pg.Read, pg.Prefix, retry),
		Write: connect("write", pg.Write, pg.Prefix, retry),
	}
}

func (c *Connection) Close() error {
	var errs []error

	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ErrorCode returns the SQLSTATE of a driver error, or "" for anything else.
func ErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// Constraint names the constraint a pq error violated, if any.
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}

type retryPolicy struct {
	attempts int
	wait     time.Duration
}

// connect dials until the node answers or the policy runs out, then exits.
// The server cannot do anything useful without its database.
func connect(name string, node config.PostgresNode, prefix string, retry retryPolicy) *sqlx.DB {
	dsn := node.URL(prefix).String()
	logger := log.With().Str("name", name).Str("host", node.Host).Str("port", node.Port).Str("db", prefix+node.Name).Logger()

	for attempt := 1; attempt <= retry.attempts; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		if attempt < retry.attempts {
			time.Sleep(retry.wait)
		}
	}

	logger.Fatal().Msg("Giving up connecting to database")

	return nil
}

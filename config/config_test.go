package config

import (
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.DB.Postgres.Write.Host = "primary"
	cfg.DB.Postgres.Read.Host = "replica"
	cfg.App.Reservation.RescheduleBoundary = "half_open"
	cfg.App.Reservation.LockBackend = LockBackendRedis
	cfg.App.Reservation.LockTTLMillis = 5000
	cfg.App.Reservation.LockWaitMillis = 3000

	return cfg
}

func TestDefaults(t *testing.T) {
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "half_open", cfg.App.Reservation.RescheduleBoundary)
	assert.Equal(t, 5000, cfg.App.Reservation.LockTTLMillis)
	assert.Equal(t, "primary", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "hotel.reservation", cfg.Kafka.Topics.Reservation)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing secrets", mutate: func(c *Config) { c.JWT.RefreshSecret = "" }},
		{name: "missing read host", mutate: func(c *Config) { c.DB.Postgres.Read.Host = "" }},
		{name: "unknown boundary", mutate: func(c *Config) { c.App.Reservation.RescheduleBoundary = "sideways" }},
		{name: "unknown lock backend", mutate: func(c *Config) { c.App.Reservation.LockBackend = "etcd" }},
		{name: "zero lock ttl", mutate: func(c *Config) { c.App.Reservation.LockTTLMillis = 0 }},
		{name: "kafka without brokers", mutate: func(c *Config) { c.Kafka.Enable = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPostgresNode_URL(t *testing.T) {
	node := PostgresNode{
		Host:     "db",
		Port:     "5432",
		Username: "hotel",
		Password: "p@ss:word/",
		Name:     "bookings",
		SSLMode:  "require",
		Timezone: "UTC",
	}

	dsn := node.URL("test_")

	password, _ := dsn.User.Password()

	assert.Equal(t, "db:5432", dsn.Host)
	assert.Equal(t, "/test_bookings", dsn.Path)
	assert.Equal(t, "p@ss:word/", password)
	assert.Equal(t, "require", dsn.Query().Get("sslmode"))
	assert.Equal(t, "UTC", dsn.Query().Get("timezone"))
}

package di

import (
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/lock"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func provideRoomLocker(cfg *config.Config, client *goRedis.Client, ot otel.Otel) lock.Locker {
	reservation := cfg.App.Reservation

	if reservation.LockBackend == config.LockBackendLocal {
		log.Warn().Msg("room locks are process-local, run a single instance")

		return lock.NewLocalLocker(time.Duration(reservation.LockWaitMillis) * time.Millisecond)
	}

	return lock.NewRedisLocker(
		client,
		ot,
		time.Duration(reservation.LockTTLMillis)*time.Millisecond,
		time.Duration(reservation.LockWaitMillis)*time.Millisecond,
	)
}

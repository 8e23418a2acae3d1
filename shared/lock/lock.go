package lock

//go:generate go run go.uber.org/mock/mockgen -source=./lock.go -destination=./mocks/lock_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelLockKeyAttribute = "lock.key"
	retryInterval        = 25 * time.Millisecond
)

var (
	ErrNotAcquired = errors.New("lock not acquired")
	ErrNotHeld     = errors.New("lock no longer held")
)

// releaseScript deletes the key only when it still carries our token, so an
// expired holder never removes a lock taken over by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Unlock releases a held lock.
type Unlock func(ctx context.Context) error

// Locker hands out exclusive, expiring tokens keyed by name.
type Locker interface {
	Acquire(ctx context.Context, key string) (Unlock, error)
}

type redisLocker struct {
	client *redis.Client
	otel   otel.Otel
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client *redis.Client, ot otel.Otel, ttl, wait time.Duration) Locker {
	return &redisLocker{
		client: client,
		otel:   ot,
		ttl:    ttl,
		wait:   wait,
	}
}

// Acquire implements Locker.
func (l *redisLocker) Acquire(ctx context.Context, key string) (unlock Unlock, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".Acquire")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelLockKeyAttribute, key)

	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to acquire lock")

			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		if ok {
			return l.unlocker(key, token), nil
		}

		if time.Now().After(deadline) {
			return nil, ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}
}

func (l *redisLocker) unlocker(key, token string) Unlock {
	return func(ctx context.Context) error {
		deleted, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to release lock")

			return fmt.Errorf("failed to release lock: %w", err)
		}

		if deleted == 0 {
			log.Warn().Str("key", key).Msg("lock expired before release")

			return ErrNotHeld
		}

		return nil
	}
}

type localSlot struct {
	ch   chan struct{}
	refs int
}

type localLocker struct {
	mu    sync.Mutex
	slots map[string]*localSlot
	wait  time.Duration
}

// NewLocalLocker returns an in-process Locker. It only excludes callers within
// the same process.
func NewLocalLocker(wait time.Duration) Locker {
	return &localLocker{
		slots: map[string]*localSlot{},
		wait:  wait,
	}
}

// hold registers the caller on key's slot. Every hold is paired with a drop,
// and a slot is removed once nobody holds or waits on it.
func (l *localLocker) hold(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[key]
	if !ok {
		slot = &localSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}

	slot.refs++

	return slot.ch
}

func (l *localLocker) drop(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot := l.slots[key]

	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}

// Acquire implements Locker.
func (l *localLocker) Acquire(ctx context.Context, key string) (Unlock, error) {
	ch := l.hold(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		l.drop(key)

		return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
	case <-timer.C:
		l.drop(key)

		return nil, ErrNotAcquired
	}

	var once sync.Once

	return func(context.Context) error {
		once.Do(func() {
			<-ch
			l.drop(key)
		})

		return nil
	}, nil
}

// RoomKey is the lock name guarding reservation writes on one room.
func RoomKey(roomID string) string {
	return "lock:room:" + roomID
}

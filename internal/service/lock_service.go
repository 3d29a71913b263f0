package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockTimeout is returned when a lock could not be taken before ctx ended.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// releaseLockScript deletes the key only if it still holds our token, so an
// expired holder never releases a lock someone else has since taken.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisLockKeyPrefix = "lock:"

	lockRetryInterval    = 50 * time.Millisecond
	lockReleaseTimeout   = 2 * time.Second
	mutexCleanupInterval = 10 * time.Minute
	mutexStaleThreshold  = 10 * time.Minute
)

// Locker serializes work per key. Release must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// =============================================================================
// Redis
// =============================================================================

// RedisLocker is a single-instance Redis lock: SET NX PX with a random token.
// The TTL bounds how long a crashed holder can block others.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, log *logrus.Logger) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, log: log}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := RedisLockKeyPrefix + key
	token := uuid.New().String()

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrLockTimeout
			}
			l.log.Warnf("Failed to acquire redis lock %s: %+v", lockKey, err)
			return nil, fmt.Errorf("acquire lock %s: %w", lockKey, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			// The caller's ctx may already be cancelled by the time we release.
			releaseCtx, cancel := context.WithTimeout(context.Background(), lockReleaseTimeout)
			defer cancel()
			if err := releaseLockScript.Run(releaseCtx, l.client, []string{lockKey}, token).Err(); err != nil {
				l.log.Warnf("Failed to release redis lock %s: %+v", lockKey, err)
			}
		})
	}
	return release, nil
}

// =============================================================================
// In-process
// =============================================================================

// KeyedMutex is an in-process Locker. It only serializes callers inside one
// process; stale keys are dropped by a background loop until Stop is called.
type KeyedMutex struct {
	locks sync.Map // map[string]*keyedLock
	log   *logrus.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// keyedLock is a one-slot semaphore so waiters can give up on ctx.
type keyedLock struct {
	sem      chan struct{}
	lastUsed atomic.Int64 // Unix timestamp
}

func NewKeyedMutex(log *logrus.Logger) *KeyedMutex {
	m := &KeyedMutex{
		log:      log,
		stopChan: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// Stop ends the cleanup loop. Safe to call multiple times.
func (m *KeyedMutex) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
		m.wg.Wait()
	}
}

func (m *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	for {
		lk := m.get(key)
		select {
		case lk.sem <- struct{}{}:
		case <-ctx.Done():
			return nil, ErrLockTimeout
		}

		// The cleanup loop may have dropped this entry between get and send.
		if current, ok := m.locks.Load(key); ok && current == lk {
			var once sync.Once
			return func() {
				once.Do(func() {
					lk.lastUsed.Store(time.Now().Unix())
					<-lk.sem
				})
			}, nil
		}
		<-lk.sem
	}
}

func (m *KeyedMutex) get(key string) *keyedLock {
	v, _ := m.locks.LoadOrStore(key, &keyedLock{sem: make(chan struct{}, 1)})
	lk := v.(*keyedLock)
	lk.lastUsed.Store(time.Now().Unix())
	return lk
}

func (m *KeyedMutex) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.cleanupStale(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStale drops unheld locks last used before cutoff.
func (m *KeyedMutex) cleanupStale(cutoff time.Time) int {
	var cleaned int

	m.locks.Range(func(key, value any) bool {
		lk, ok := value.(*keyedLock)
		if !ok {
			return true
		}

		select {
		case lk.sem <- struct{}{}:
			if lk.lastUsed.Load() < cutoff.Unix() {
				m.locks.Delete(key)
				cleaned++
			}
			<-lk.sem
		default:
			// held
		}
		return true
	})

	if cleaned > 0 {
		m.log.Debugf("Cleaned up %d stale locks", cleaned)
	}
	return cleaned
}

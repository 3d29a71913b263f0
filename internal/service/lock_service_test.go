package service

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	m := NewKeyedMutex(quietLogger())
	defer m.Stop()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := m.Acquire(context.Background(), "subscription:a@example.com")
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			for {
				cur := maxInside.Load()
				if n <= cur || maxInside.CompareAndSwap(cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	m := NewKeyedMutex(quietLogger())
	defer m.Stop()

	releaseA, err := m.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := m.Acquire(ctx, "b")
	require.NoError(t, err)
	releaseB()
}

func TestKeyedMutex_TimesOut(t *testing.T) {
	m := NewKeyedMutex(quietLogger())
	defer m.Stop()

	release, err := m.Acquire(context.Background(), "k")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Acquire(ctx, "k")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestKeyedMutex_ReleaseIsIdempotent(t *testing.T) {
	m := NewKeyedMutex(quietLogger())
	defer m.Stop()

	release, err := m.Acquire(context.Background(), "k")
	require.NoError(t, err)
	release()
	release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	release, err = m.Acquire(ctx, "k")
	require.NoError(t, err)
	release()
}

func TestKeyedMutex_CleanupSkipsHeldLocks(t *testing.T) {
	m := NewKeyedMutex(quietLogger())
	defer m.Stop()

	held, err := m.Acquire(context.Background(), "held")
	require.NoError(t, err)
	idle, err := m.Acquire(context.Background(), "idle")
	require.NoError(t, err)
	idle()

	cleaned := m.cleanupStale(time.Now().Add(time.Hour))
	assert.Equal(t, 1, cleaned)

	_, ok := m.locks.Load("held")
	assert.True(t, ok)
	held()
}

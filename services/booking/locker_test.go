package booking

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerSerialisesSameKey(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()
	unlock, err := l.Lock(ctx, slotLockKey("p1", "2026-10-19"))
	require.NoError(t, err)

	// Other keys are independent.
	other, err := l.Lock(ctx, slotLockKey("p2", "2026-10-19"))
	require.NoError(t, err)
	other()

	acquired := make(chan struct{})
	go func() {
		u, _ := l.Lock(ctx, slotLockKey("p1", "2026-10-19"))
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}
	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock was not released")
	}
}

func TestRedisLockerReportsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	_, err := NewRedisLocker(client).Lock(context.Background(), "booking:p1:2026-10-19")
	assert.ErrorContains(t, err, "acquire lock")
}

func TestLocalLockerForgetsReleasedKeys(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()
	for _, date := range []string{"2026-10-19", "2026-10-20", "2026-10-21"} {
		unlock, err := l.Lock(ctx, slotLockKey("p1", date))
		require.NoError(t, err)
		unlock()
		unlock()
	}
	assert.Zero(t, l.size())

	unlock, err := l.Lock(ctx, slotLockKey("p1", "2026-10-19"))
	require.NoError(t, err)
	done := make(chan struct{})
	go func() {
		u, _ := l.Lock(ctx, slotLockKey("p1", "2026-10-19"))
		u()
		close(done)
	}()
	unlock()
	<-done
	assert.Zero(t, l.size())
}

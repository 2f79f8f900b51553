package memlock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/infrastructure/memlock"
)

func TestLock_SerializesSameKey(t *testing.T) {
	l := memlock.New()

	release, err := l.Lock(context.Background(), "k1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r2, err := l.Lock(context.Background(), "k1")
		assert.NoError(t, err)
		close(acquired)
		r2()
	}()

	select {
	case <-acquired:
		t.Fatal("second caller acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second caller never acquired after release")
	}
}

func TestLock_IndependentKeys(t *testing.T) {
	l := memlock.New()

	r1, err := l.Lock(context.Background(), "k1")
	require.NoError(t, err)
	defer r1()

	r2, err := l.Lock(context.Background(), "k2")
	require.NoError(t, err)
	r2()
}

func TestLock_ContextCancelled(t *testing.T) {
	l := memlock.New()

	release, err := l.Lock(context.Background(), "k1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "k1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLock_ManyWaitersAllGetTheirTurn(t *testing.T) {
	l := memlock.New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		counter int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Lock(context.Background(), "shared")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			counter++
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, counter)
}

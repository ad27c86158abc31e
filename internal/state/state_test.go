package state

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
)

func TestHandle_NilIsUnavailable(t *testing.T) {
	var h *Handle

	st, release, err := h.Acquire(context.Background())
	require.Error(t, err)
	assert.Nil(t, st)
	assert.Equal(t, apperrors.ErrContextUnavailable, apperrors.Code(err))
	assert.EqualError(t, err, "COMMAND.CONTEXT_UNAVAILABLE: Shared state is unavailable")
	release()

	err = h.With(context.Background(), func(*State) error {
		t.Fatal("fn не должна вызываться")
		return nil
	})
	assert.Equal(t, apperrors.ErrContextUnavailable, apperrors.Code(err))
}

func TestHandle_AcquireIsExclusive(t *testing.T) {
	h := NewHandle(&State{})

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := h.With(context.Background(), func(*State) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive, "State не должен удерживаться двумя владельцами")
}

func TestHandle_AcquireHonoursContext(t *testing.T) {
	h := NewHandle(&State{})
	_, release, err := h.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err = h.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHandle_ReleaseIsIdempotent(t *testing.T) {
	h := NewHandle(&State{})

	_, release, err := h.Acquire(context.Background())
	require.NoError(t, err)
	release()
	release()

	_, release2, err := h.Acquire(context.Background())
	require.NoError(t, err)
	release2()
}

func TestHandle_WithReleasesOnPanic(t *testing.T) {
	h := NewHandle(&State{})

	assert.Panics(t, func() {
		_ = h.With(context.Background(), func(*State) error { panic("boom") })
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, release, err := h.Acquire(ctx)
	require.NoError(t, err, "State должен освободиться после panic")
	release()
}

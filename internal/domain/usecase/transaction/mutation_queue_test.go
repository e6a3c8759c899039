package transaction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
	mcore "github.com/amirhossein-jamali/finance-dashboard/mocks/port/core"
)

func TestMutationQueue_Run(t *testing.T) {
	t.Run("Returns the result of the mutation", func(t *testing.T) {
		q := NewMutationQueue(mcore.NewQuietLogger(t), 10)
		defer q.Shutdown()

		res, err := q.Run(context.Background(), testUser, func(ctx context.Context) (*usecase.MutationResult, error) {
			return &usecase.MutationResult{Operation: usecase.OpCreate, AffectedIDs: []string{"a"}}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, res.AffectedIDs)
	})

	t.Run("Returns the error of the mutation", func(t *testing.T) {
		q := NewMutationQueue(mcore.NewQuietLogger(t), 10)
		defer q.Shutdown()

		boom := errors.New("boom")
		_, err := q.Run(context.Background(), testUser, func(ctx context.Context) (*usecase.MutationResult, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Mutations of one user never overlap", func(t *testing.T) {
		q := NewMutationQueue(mcore.NewQuietLogger(t), 100)
		defer q.Shutdown()

		var mu sync.Mutex
		running, maxRunning := 0, 0
		var wg sync.WaitGroup
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := q.Run(context.Background(), testUser, func(ctx context.Context) (*usecase.MutationResult, error) {
					mu.Lock()
					running++
					if running > maxRunning {
						maxRunning = running
					}
					mu.Unlock()

					time.Sleep(time.Millisecond)

					mu.Lock()
					running--
					mu.Unlock()
					return &usecase.MutationResult{}, nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, maxRunning)
	})

	t.Run("Canceled context is reported", func(t *testing.T) {
		q := NewMutationQueue(mcore.NewQuietLogger(t), 10)
		defer q.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := q.Run(ctx, testUser, func(ctx context.Context) (*usecase.MutationResult, error) {
			return &usecase.MutationResult{}, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Rejects mutations after shutdown", func(t *testing.T) {
		q := NewMutationQueue(mcore.NewQuietLogger(t), 10)
		q.Shutdown()

		_, err := q.Run(context.Background(), testUser, func(ctx context.Context) (*usecase.MutationResult, error) {
			return &usecase.MutationResult{}, nil
		})
		assert.ErrorIs(t, err, errs.ErrInternalServer)
	})
}

package transaction

import (
	"context"
	"sync"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
)

// MutationFunc is one write against a user's ledger
type MutationFunc func(ctx context.Context) (*usecase.MutationResult, error)

// MutationQueue runs the writes of each user one at a time, in arrival order.
// Writes of different users run in parallel.
type MutationQueue struct {
	logger    coreport.Logger
	queueSize int

	mu             sync.RWMutex
	closed         bool
	userQueues     map[string]chan *mutationRequest
	queueWaitGroup sync.WaitGroup
}

type mutationRequest struct {
	ctx        context.Context
	op         MutationFunc
	resultChan chan mutationResult
}

type mutationResult struct {
	result *usecase.MutationResult
	err    error
}

// NewMutationQueue creates a queue holding up to queueSize pending writes per user
func NewMutationQueue(logger coreport.Logger, queueSize int) *MutationQueue {
	if queueSize <= 0 {
		queueSize = 100
	}
	return &MutationQueue{
		logger:     logger,
		queueSize:  queueSize,
		userQueues: make(map[string]chan *mutationRequest),
	}
}

// Run enqueues op behind the user's pending writes and waits for its result
func (q *MutationQueue) Run(ctx context.Context, userID string, op MutationFunc) (*usecase.MutationResult, error) {
	req := &mutationRequest{ctx: ctx, op: op, resultChan: make(chan mutationResult, 1)}

	if err := q.enqueue(ctx, userID, req); err != nil {
		return nil, err
	}

	select {
	case res := <-req.resultChan:
		return res.result, res.err
	case <-ctx.Done():
		q.logger.Warn("Context canceled while waiting for mutation result", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}
}

func (q *MutationQueue) enqueue(ctx context.Context, userID string, req *mutationRequest) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return errs.ErrInternalServer
	}
	queue, ok := q.userQueues[userID]
	q.mu.RUnlock()

	if !ok {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return errs.ErrInternalServer
		}
		queue, ok = q.userQueues[userID]
		if !ok {
			queue = make(chan *mutationRequest, q.queueSize)
			q.userQueues[userID] = queue
			q.queueWaitGroup.Add(1)
			go q.processUserMutations(userID, queue)
			q.logger.Debug("Started mutation worker for user", map[string]any{"user_id": userID})
		}
		q.mu.Unlock()
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return errs.ErrInternalServer
	}
	select {
	case queue <- req:
		return nil
	case <-ctx.Done():
		q.logger.Warn("Context canceled while enqueueing mutation", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// processUserMutations is the worker goroutine of one user's queue
func (q *MutationQueue) processUserMutations(userID string, queue chan *mutationRequest) {
	defer q.queueWaitGroup.Done()

	for req := range queue {
		if err := req.ctx.Err(); err != nil {
			req.resultChan <- mutationResult{err: err}
			continue
		}
		result, err := req.op(req.ctx)
		req.resultChan <- mutationResult{result: result, err: err}
	}

	q.logger.Debug("Mutation worker stopped", map[string]any{"user_id": userID})
}

// Shutdown stops accepting writes, drains the pending ones and waits for the workers
func (q *MutationQueue) Shutdown() {
	q.logger.Info("Shutting down mutation queue", nil)

	q.mu.Lock()
	if !q.closed {
		q.closed = true
		for _, queue := range q.userQueues {
			close(queue)
		}
	}
	q.mu.Unlock()

	q.queueWaitGroup.Wait()
	q.logger.Info("Mutation queue shut down successfully", nil)
}

package operator

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/session"
)

const queueSize = 1000

var ErrStopped = errors.New("operator: delegator stopped")

// OperatorDelegator manages the queues, starts/stops Operators (workers), and routes items by user.
type OperatorDelegator struct {
	sessions *session.Manager
	queues   []chan ActionItem
	wg       sync.WaitGroup

	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

func NewOperatorDelegator(sessions *session.Manager, numWorkers int) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	queues := make([]chan ActionItem, numWorkers)
	for i := range queues {
		queues[i] = make(chan ActionItem, queueSize)
	}
	return &OperatorDelegator{
		sessions: sessions,
		queues:   queues,
	}
}

func (d *OperatorDelegator) Start() {
	for _, queue := range d.queues {
		d.wg.Add(1)
		op := NewOperator(d.sessions, queue)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop closes every queue and waits for queued items to drain.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		for _, queue := range d.queues {
			close(queue)
		}
		d.mu.Unlock()
		d.wg.Wait()
	})
}

// Process queues action for userID and blocks until it has run or ctx is done.
func (d *OperatorDelegator) Process(ctx context.Context, userID string, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		userID:   userID,
		action:   action,
		response: respCh,
	}

	if err := d.enqueue(ctx, item); err != nil {
		return err
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *OperatorDelegator) enqueue(ctx context.Context, item ActionItem) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queues[d.shard(item.userID)] <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *OperatorDelegator) shard(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.queues)))
}

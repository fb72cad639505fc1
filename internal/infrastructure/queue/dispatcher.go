package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arcadeboard/scores-api/internal/api/metrics"
	"github.com/arcadeboard/scores-api/internal/core/domain"
	"github.com/arcadeboard/scores-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes score changes to a fixed set of workers using consistent
// hashing on the user id, so changes to one user are recorded in order.
type Dispatcher struct {
	workers []chan domain.ScoreChange
	service ports.HistoryService
	log     zerolog.Logger

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.HistoryService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ScoreChange, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ScoreChange, channelBuffer)
	}
	return d
}

// Start launches the workers. They exit once Close has drained their queue.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish enqueues a change on the worker owning its user id. It blocks when
// that worker's buffer is full and drops the change after Close.
func (d *Dispatcher) Publish(change domain.ScoreChange) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("user_id", change.UserID).Msg("dispatcher closed, score change dropped")
		return
	}

	idx := d.shardIndex(change.UserID)
	d.workers[idx] <- change
	metrics.HistoryQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// Close stops accepting changes and waits for the workers to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ScoreChange) {
	defer d.wg.Done()
	depth := metrics.HistoryQueueDepth.WithLabelValues(strconv.Itoa(id))

	for change := range ch {
		depth.Set(float64(len(ch)))
		// Record with a context detached from cancellation so a shutdown
		// still flushes queued changes.
		if err := d.service.Record(context.WithoutCancel(ctx), change); err != nil {
			d.log.Error().Err(err).
				Str("user_id", change.UserID).
				Int("worker_id", id).
				Msg("score change recording failed")
		}
	}
}

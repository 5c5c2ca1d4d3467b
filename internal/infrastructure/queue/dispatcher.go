package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
	publishTimeout = 5 * time.Second
)

// Failure reasons passed to Recorder.Failed.
const (
	ReasonQueueFull     = "queue_full"
	ReasonPublishFailed = "publish_failed"
)

// Recorder receives the dispatcher's operational measurements.
type Recorder interface {
	QueueDepth(worker, depth int)
	Published(kind domain.NotificationKind, took time.Duration)
	Failed(kind domain.NotificationKind, reason string)
}

type nopRecorder struct{}

func (nopRecorder) QueueDepth(int, int) {}
func (nopRecorder) Published(domain.NotificationKind, time.Duration) {}
func (nopRecorder) Failed(domain.NotificationKind, string) {}

// Dispatcher routes notifications to a fixed set of workers by hashing the
// shard key, so notifications about one audition are published in order.
type Dispatcher struct {
	workers   []chan domain.Notification
	publisher ports.NotificationPublisher
	recorder  Recorder
	log       zerolog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. A nil recorder discards
// measurements.
func NewDispatcher(numWorkers int, publisher ports.NotificationPublisher, recorder Recorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	d := &Dispatcher{
		workers:   make([]chan domain.Notification, numWorkers),
		publisher: publisher,
		recorder:  recorder,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// publishes what is already buffered and returns.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands n to the worker responsible for its shard key. It never
// blocks: when the worker's buffer is full the notification is dropped and
// counted.
func (d *Dispatcher) Enqueue(n domain.Notification) {
	idx := d.shardIndex(n.ShardKey)
	select {
	case d.workers[idx] <- n:
		d.recorder.QueueDepth(idx, len(d.workers[idx]))
	default:
		d.recorder.Failed(n.Kind, ReasonQueueFull)
		d.log.Warn().
			Str("kind", string(n.Kind)).
			Str("subject_id", n.SubjectID).
			Int("worker_id", idx).
			Msg("notification queue full, dropping")
	}
}

// shardIndex maps a shard key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.recorder.QueueDepth(id, len(ch))
			d.publish(ctx, id, n)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.Notification) {
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.publish(ctx, id, n)
		default:
			return
		}
	}
}

// publish bounds each call by publishTimeout only, so a shutdown in progress
// does not abort a publish that has already started.
func (d *Dispatcher) publish(ctx context.Context, worker int, n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	start := time.Now()
	err := d.publisher.Publish(ctx, n)
	took := time.Since(start)

	if err != nil {
		d.recorder.Failed(n.Kind, ReasonPublishFailed)
		d.log.Error().Err(err).
			Str("kind", string(n.Kind)).
			Str("subject_id", n.SubjectID).
			Int("worker_id", worker).
			Msg("notification publish failed")
		return
	}
	d.recorder.Published(n.Kind, took)
}

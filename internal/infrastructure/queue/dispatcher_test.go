package queue

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
)

type recordingPublisher struct {
	mu   sync.Mutex
	seen []domain.Notification
	fail bool
	done chan struct{}
	want int
}

func (p *recordingPublisher) Publish(_ context.Context, n domain.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, n)
	if len(p.seen) == p.want {
		close(p.done)
	}
	if p.fail {
		return errors.New("broker down")
	}
	return nil
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
	depth  int
}

func (r *countingRecorder) QueueDepth(_, depth int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.depth = depth
}

func (r *countingRecorder) Published(domain.NotificationKind, time.Duration) {
	r.add("published")
}

func (r *countingRecorder) Failed(_ domain.NotificationKind, reason string) {
	r.add(reason)
}

func (r *countingRecorder) add(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[key]++
}

func (r *countingRecorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}

func TestDispatcher_PreservesOrderPerShard(t *testing.T) {
	const total = 50
	pub := &recordingPublisher{done: make(chan struct{}), want: total}
	d := NewDispatcher(4, pub, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < total; i++ {
		d.Enqueue(domain.Notification{
			Kind:      domain.NotifyApplicationSubmitted,
			ShardKey:  "audition-1",
			SubjectID: "app-" + strconv.Itoa(i),
			Attributes: map[string]string{"seq": strconv.Itoa(i)},
		})
	}

	select {
	case <-pub.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for notifications")
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	for i, n := range pub.seen {
		if n.Attributes["seq"] != strconv.Itoa(i) {
			t.Fatalf("out of order at %d: %v", i, n.Attributes["seq"])
		}
	}
}

func TestDispatcher_PublishErrorsDoNotStopWorker(t *testing.T) {
	pub := &recordingPublisher{done: make(chan struct{}), want: 2, fail: true}
	rec := &countingRecorder{}
	d := NewDispatcher(1, pub, rec, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(domain.Notification{Kind: domain.NotifyAuditionPosted, ShardKey: "a"})
	d.Enqueue(domain.Notification{Kind: domain.NotifyAuditionPosted, ShardKey: "a"})

	select {
	case <-pub.done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker stopped after a publish error")
	}

	cancel()
	d.Wait()

	if got := rec.count(ReasonPublishFailed); got != 2 {
		t.Fatalf("expected 2 publish failures recorded, got %d", got)
	}
	if got := rec.count("published"); got != 0 {
		t.Fatalf("failed publishes must not count as published, got %d", got)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingPublisher{}, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	first := d.shardIndex("promotion-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("promotion-42"); got != first {
			t.Fatalf("shard changed: %d != %d", got, first)
		}
	}
}

func TestDispatcher_EnqueueDropsWhenFull(t *testing.T) {
	rec := &countingRecorder{}
	d := NewDispatcher(1, &recordingPublisher{}, rec, zerolog.Nop())

	for i := 0; i < channelBuffer+10; i++ {
		d.Enqueue(domain.Notification{Kind: domain.NotifyPromotionPosted, ShardKey: "p"})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected buffer to hold %d, got %d", channelBuffer, got)
	}
	if got := rec.count(ReasonQueueFull); got != 10 {
		t.Fatalf("expected 10 queue_full drops recorded, got %d", got)
	}
	if rec.depth != channelBuffer {
		t.Fatalf("expected last recorded depth %d, got %d", channelBuffer, rec.depth)
	}
}

func TestDispatcher_DrainsBufferOnShutdown(t *testing.T) {
	const total = 5
	pub := &recordingPublisher{done: make(chan struct{}), want: total}
	rec := &countingRecorder{}
	d := NewDispatcher(1, pub, rec, zerolog.Nop())

	for i := 0; i < total; i++ {
		d.Enqueue(domain.Notification{Kind: domain.NotifyAuditionPosted, ShardKey: "a"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.seen) != total {
		t.Fatalf("expected %d published before exit, got %d", total, len(pub.seen))
	}
	if got := rec.count("published"); got != total {
		t.Fatalf("expected %d recorded publishes, got %d", total, got)
	}
}

// Package loop provides the single thread of control the map client runs
// on. User gestures and remote completions are posted as tasks and executed
// in arrival order by one goroutine, so engine state never sees concurrent
// mutation and needs no further sequencing guard.
package loop

import (
	"context"
	"fmt"
	"sync"

	"github.com/Geb0/OpenMapGenerator/internal/channel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type task struct {
	name string
	fn   func()
}

// Loop is the event loop. Tasks post from any goroutine; they run one at a
// time on the loop goroutine, in order.
type Loop struct {
	tasks  channel.Channel[task]
	logger Logger

	processed metric.Int64Counter
	depth     metric.Int64ObservableGauge

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}

	mu      sync.Mutex
	stopped bool
}

// New creates an event loop with the given mailbox size.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger, mailboxSize int) (*Loop, error) {
	l := &Loop{
		tasks:  channel.New[task](mailboxSize),
		logger: logger,
		done:   make(chan struct{}),
	}

	m := meter()

	var err error
	l.processed, err = m.Int64Counter(
		"loop.tasks.processed",
		metric.WithDescription("Total tasks executed by the event loop"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	l.depth, err = m.Int64ObservableGauge(
		"loop.mailbox.depth",
		metric.WithDescription("Tasks currently waiting in the mailbox"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating depth gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(l.depth, int64(l.tasks.Len()))
			return nil
		},
		l.depth,
	)
	if err != nil {
		return nil, fmt.Errorf("registering depth callback: %w", err)
	}

	return l, nil
}

// Start launches the loop goroutine. Safe to call once.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		go l.run()
	})
}

func (l *Loop) run() {
	defer close(l.done)
	for t := range l.tasks.Receive() {
		t.fn()
		l.processed.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("task", t.name)))
		if l.logger != nil {
			l.logger.Debug("task complete", "task", t.name)
		}
	}
}

// Post enqueues a task for execution on the loop goroutine. The name tags
// metrics and debug logs. Tasks posted after Stop are dropped: a remote
// completion can land after shutdown and must not crash the host.
func (l *Loop) Post(name string, fn func()) {
	if !l.post(name, fn) && l.logger != nil {
		l.logger.Debug("task dropped after stop", "task", name)
	}
}

func (l *Loop) post(name string, fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return false
	}
	l.tasks.Send(task{name: name, fn: fn})
	return true
}

// Call posts fn and blocks until it has run. Must not be called from the
// loop goroutine itself. After Stop it returns immediately without
// running fn.
func (l *Loop) Call(name string, fn func()) {
	ran := make(chan struct{})
	if !l.post(name, func() {
		fn()
		close(ran)
	}) {
		return
	}
	<-ran
}

// Stop drains outstanding tasks and stops the loop goroutine.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.mu.Unlock()
		l.tasks.Close()
	})
	<-l.done
}

package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/sustainamine/sustainamine/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	EstimateMessageKind string = "sustainamine.events.estimate"
	ReportMessageKind   string = "sustainamine.events.report"
	DefaultTopic        string = "sustainamine.events"
	eventSource         string = "sustainamine.api"

	defaultWriteTimeout = 5 * time.Second
	closeTimeout        = 5 * time.Second
)

var ErrProducerClosed = errors.New("event producer is closed")

// Writer is the interface to be implemented by the underlying writer.
type Writer interface {
	Write(ctx context.Context, topic string, e cloudevents.Event) error
	Close(ctx context.Context) error
}

// EventProducer queues audit events and hands them to a Writer from a
// single background goroutine. Write never waits on the Writer.
type EventProducer struct {
	queue        *queue
	wakeCh       chan struct{}
	doneCh       chan struct{}
	stoppedCh    chan struct{}
	closed       atomic.Bool
	writer       Writer
	topic        string
	source       string
	queueLimit   int
	writeTimeout time.Duration
}

func NewEventProducer(w Writer, opts ...ProducerOptions) *EventProducer {
	ep := &EventProducer{
		wakeCh:       make(chan struct{}, 1),
		doneCh:       make(chan struct{}),
		stoppedCh:    make(chan struct{}),
		writer:       w,
		topic:        DefaultTopic,
		source:       eventSource,
		queueLimit:   defaultQueueLimit,
		writeTimeout: defaultWriteTimeout,
	}

	for _, o := range opts {
		o(ep)
	}
	ep.queue = newQueue(ep.queueLimit)

	go ep.run()
	return ep
}

// Write queues an event of the given kind. It returns ErrProducerClosed once Close has been called.
func (ep *EventProducer) Write(ctx context.Context, kind string, body io.Reader) error {
	if ep.closed.Load() {
		return ErrProducerClosed
	}

	d, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	if evicted := ep.queue.push(&message{Kind: kind, Data: d}); evicted != nil {
		metrics.IncreaseEventsTotalMetric(evicted.Kind, metrics.StatusDropped)
		zap.S().Named("event_producer").Warnw("event queue full, dropped oldest event", "kind", evicted.Kind)
	}

	select {
	case ep.wakeCh <- struct{}{}:
	default:
		// a wake up is already pending
	}

	return nil
}

// Close stops accepting events, flushes the queued ones and closes the writer.
// Calling it more than once is a no-op.
func (ep *EventProducer) Close() error {
	if !ep.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(ep.doneCh)

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(closeCtx)
	g.Go(func() error {
		select {
		case <-ep.stoppedCh:
		case <-ctx.Done():
			return fmt.Errorf("flushing pending events: %w", ctx.Err())
		}
		return ep.writer.Close(ctx)
	})
	if err := g.Wait(); err != nil {
		zap.S().Named("event_producer").Errorf("event producer closed with error: %s", err)
		return err
	}

	zap.S().Named("event_producer").Info("event producer closed")

	return nil
}

func (ep *EventProducer) run() {
	defer close(ep.stoppedCh)

	for {
		select {
		case <-ep.wakeCh:
			ep.flush()
		case <-ep.doneCh:
			ep.flush()
			return
		}
	}
}

func (ep *EventProducer) flush() {
	for _, msg := range ep.queue.drain() {
		e := ep.newEvent(msg)

		ctx, cancel := context.WithTimeout(context.Background(), ep.writeTimeout)
		err := ep.writer.Write(ctx, ep.topic, e)
		cancel()

		if err != nil {
			metrics.IncreaseEventsTotalMetric(msg.Kind, metrics.StatusFailure)
			zap.S().Named("event_producer").Errorw("failed to send message", "error", err, "kind", msg.Kind, "id", e.ID())
			continue
		}
		metrics.IncreaseEventsTotalMetric(msg.Kind, metrics.StatusSuccess)
	}
}

func (ep *EventProducer) newEvent(msg *message) cloudevents.Event {
	e := cloudevents.NewEvent()
	e.SetID(uuid.NewString())
	e.SetSource(ep.source)
	e.SetType(msg.Kind)
	e.SetTime(time.Now().UTC())
	_ = e.SetData(*cloudevents.StringOfApplicationJSON(), msg.Data)
	return e
}

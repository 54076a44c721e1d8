package events

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func body(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}

var _ = Describe("producer", func() {
	Context("write", func() {
		It("writes successfully", func() {
			w := newTestWriter()
			kp := NewEventProducer(w, WithOutputTopic("lca"))

			err := kp.Write(context.TODO(), EstimateMessageKind, body(`{"estimate_id":"1"}`))
			Expect(err).To(BeNil())
			Eventually(w.Len).Should(Equal(1))

			err = kp.Write(context.TODO(), ReportMessageKind, body(`{"estimate_id":"1"}`))
			Expect(err).To(BeNil())
			Eventually(w.Len).Should(Equal(2))

			messages := w.Events()
			Expect(messages[0].Type()).To(Equal(EstimateMessageKind))
			Expect(messages[0].Source()).To(Equal("sustainamine.api"))
			Expect(messages[1].Type()).To(Equal(ReportMessageKind))
			Expect(string(messages[1].Data())).To(Equal(`{"estimate_id":"1"}`))
			Expect(w.Topic()).To(Equal("lca"))

			Expect(kp.Close()).To(Succeed())
			Expect(w.IsClosed()).To(BeTrue())
		})

		It("does not wait for a slow writer", func() {
			w := newTestWriter()
			w.block = make(chan struct{})
			kp := NewEventProducer(w)

			// the first event parks the run loop inside the writer
			Expect(kp.Write(context.TODO(), EstimateMessageKind, body(`{"n":1}`))).To(Succeed())
			Eventually(w.Started).Should(BeTrue())

			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < 10; i++ {
					_ = kp.Write(context.TODO(), EstimateMessageKind, body(`{"n":2}`))
				}
			}()
			Eventually(done).Should(BeClosed())

			close(w.block)
			Eventually(w.Len).Should(Equal(11))
			Expect(kp.Close()).To(Succeed())
		})

		It("keeps going when the writer fails", func() {
			w := newTestWriter()
			w.err = errors.New("broker unavailable")
			kp := NewEventProducer(w)

			Expect(kp.Write(context.TODO(), EstimateMessageKind, body(`{}`))).To(Succeed())
			Eventually(w.Len).Should(Equal(1))
			Expect(kp.Write(context.TODO(), EstimateMessageKind, body(`{}`))).To(Succeed())
			Eventually(w.Len).Should(Equal(2))

			Expect(kp.Close()).To(Succeed())
		})
	})

	Context("close", func() {
		It("rejects writes once closed without blocking", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)
			Expect(kp.Close()).To(Succeed())

			result := make(chan error, 1)
			go func() {
				result <- kp.Write(context.TODO(), ReportMessageKind, body(`{}`))
			}()

			var err error
			Eventually(result, time.Second).Should(Receive(&err))
			Expect(err).To(MatchError(ErrProducerClosed))
			Expect(w.Len()).To(Equal(0))
		})

		It("flushes queued events before closing the writer", func() {
			w := newTestWriter()
			w.block = make(chan struct{})
			kp := NewEventProducer(w)

			Expect(kp.Write(context.TODO(), EstimateMessageKind, body(`{"n":1}`))).To(Succeed())
			Eventually(w.Started).Should(BeTrue())
			Expect(kp.Write(context.TODO(), EstimateMessageKind, body(`{"n":2}`))).To(Succeed())
			Expect(kp.Write(context.TODO(), ReportMessageKind, body(`{"n":3}`))).To(Succeed())

			closed := make(chan error, 1)
			go func() { closed <- kp.Close() }()
			close(w.block)

			Eventually(closed).Should(Receive(BeNil()))
			Expect(w.Len()).To(Equal(3))
			Expect(w.IsClosed()).To(BeTrue())
		})

		It("can be called twice", func() {
			kp := NewEventProducer(newTestWriter())
			Expect(kp.Close()).To(Succeed())
			Expect(kp.Close()).To(Succeed())
		})
	})

	Context("queue limit", func() {
		It("drops the oldest events when the writer falls behind", func() {
			w := newTestWriter()
			w.block = make(chan struct{})
			kp := NewEventProducer(w, WithQueueLimit(2))

			Expect(kp.Write(context.TODO(), EstimateMessageKind, body(`{"n":0}`))).To(Succeed())
			Eventually(w.Started).Should(BeTrue())

			for _, data := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
				Expect(kp.Write(context.TODO(), EstimateMessageKind, body(data))).To(Succeed())
			}
			Expect(kp.queue.len()).To(Equal(2))

			close(w.block)
			Eventually(w.Len).Should(Equal(3))

			var data []string
			for _, e := range w.Events() {
				data = append(data, string(e.Data()))
			}
			Expect(data).To(Equal([]string{`{"n":0}`, `{"n":2}`, `{"n":3}`}))
			Expect(kp.Close()).To(Succeed())
		})
	})
})

type testwriter struct {
	lock     sync.Mutex
	messages []cloudevents.Event
	topic    string
	started  bool
	closed   bool
	// block, when set, holds every Write until it is closed
	block chan struct{}
	err   error
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.lock.Lock()
	t.started = true
	t.lock.Unlock()

	if t.block != nil {
		<-t.block
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.messages = append(t.messages, e)
	t.topic = topic
	return t.err
}

func (t *testwriter) Close(_ context.Context) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.closed = true
	return nil
}

func (t *testwriter) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.messages)
}

func (t *testwriter) Started() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.started
}

func (t *testwriter) IsClosed() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.closed
}

func (t *testwriter) Events() []cloudevents.Event {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]cloudevents.Event{}, t.messages...)
}

func (t *testwriter) Topic() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.topic
}

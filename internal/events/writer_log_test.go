package events

import (
	"context"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("log writer", func() {
	It("logs the event fields", func() {
		core, logs := observer.New(zapcore.InfoLevel)
		w := NewLogWriter(zap.New(core).Sugar())

		e := cloudevents.NewEvent()
		e.SetID("42")
		e.SetSource(eventSource)
		e.SetType(ReportMessageKind)
		Expect(e.SetData(*cloudevents.StringOfApplicationJSON(), []byte(`{"format":"pdf"}`))).To(Succeed())

		Expect(w.Write(context.TODO(), DefaultTopic, e)).To(Succeed())
		Expect(w.Close(context.TODO())).To(Succeed())

		Expect(logs.Len()).To(Equal(1))
		fields := logs.All()[0].ContextMap()
		Expect(fields).To(HaveKeyWithValue("topic", DefaultTopic))
		Expect(fields).To(HaveKeyWithValue("type", ReportMessageKind))
		Expect(fields).To(HaveKeyWithValue("id", "42"))
		Expect(fields).To(HaveKeyWithValue("data", `{"format":"pdf"}`))
	})

	It("gives up on a cancelled context", func() {
		w := NewLogWriter(zap.NewNop().Sugar())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(w.Write(ctx, DefaultTopic, cloudevents.NewEvent())).To(MatchError(context.Canceled))
	})
})

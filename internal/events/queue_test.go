package events

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("queue", func() {
	It("drains in arrival order", func() {
		q := newQueue(10)
		Expect(q.push(&message{Kind: EstimateMessageKind, Data: []byte("msg1")})).To(BeNil())
		Expect(q.push(&message{Kind: ReportMessageKind, Data: []byte("msg2")})).To(BeNil())
		Expect(q.len()).To(Equal(2))

		msgs := q.drain()
		Expect(msgs).To(HaveLen(2))
		Expect(msgs[0].Data).To(Equal([]byte("msg1")))
		Expect(msgs[1].Kind).To(Equal(ReportMessageKind))

		Expect(q.len()).To(Equal(0))
		Expect(q.drain()).To(BeEmpty())
	})

	It("evicts the oldest message when full", func() {
		q := newQueue(2)
		q.push(&message{Data: []byte("msg1")})
		q.push(&message{Data: []byte("msg2")})

		evicted := q.push(&message{Data: []byte("msg3")})
		Expect(evicted).NotTo(BeNil())
		Expect(evicted.Data).To(Equal([]byte("msg1")))

		msgs := q.drain()
		Expect(msgs).To(HaveLen(2))
		Expect(msgs[0].Data).To(Equal([]byte("msg2")))
		Expect(msgs[1].Data).To(Equal([]byte("msg3")))
	})

	It("falls back to the default limit", func() {
		Expect(newQueue(0).limit).To(Equal(defaultQueueLimit))
	})
})

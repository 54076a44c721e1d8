package events

import "sync"

const defaultQueueLimit = 1000

type message struct {
	Kind string
	Data []byte
}

// queue is a bounded FIFO of pending messages. Once full, the oldest
// message is discarded to make room for the new one.
type queue struct {
	lock  sync.Mutex
	items []*message
	limit int
}

func newQueue(limit int) *queue {
	if limit <= 0 {
		limit = defaultQueueLimit
	}
	return &queue{limit: limit}
}

// push appends msg and returns the message it evicted, if any.
func (q *queue) push(msg *message) *message {
	q.lock.Lock()
	defer q.lock.Unlock()

	var evicted *message
	if len(q.items) >= q.limit {
		evicted = q.items[0]
		q.items[0] = nil
		q.items = q.items[1:]
	}
	q.items = append(q.items, msg)

	return evicted
}

// drain removes and returns every pending message in arrival order.
func (q *queue) drain() []*message {
	q.lock.Lock()
	defer q.lock.Unlock()

	items := q.items
	q.items = nil
	return items
}

func (q *queue) len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.items)
}

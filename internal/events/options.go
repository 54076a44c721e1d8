package events

import "time"

type ProducerOptions func(e *EventProducer)

func WithOutputTopic(topic string) ProducerOptions {
	return func(e *EventProducer) {
		e.topic = topic
	}
}

func WithSource(source string) ProducerOptions {
	return func(e *EventProducer) {
		e.source = source
	}
}

// WithQueueLimit bounds the number of events waiting for the writer.
func WithQueueLimit(limit int) ProducerOptions {
	return func(e *EventProducer) {
		e.queueLimit = limit
	}
}

// WithWriteTimeout bounds a single call to the writer.
func WithWriteTimeout(d time.Duration) ProducerOptions {
	return func(e *EventProducer) {
		if d > 0 {
			e.writeTimeout = d
		}
	}
}

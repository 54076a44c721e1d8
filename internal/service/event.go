package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"
)

// EventWriter publishes audit events. It is implemented by *events.EventProducer.
type EventWriter interface {
	Write(ctx context.Context, kind string, body io.Reader) error
}

// publishEvent never fails the caller. Errors are only logged.
func publishEvent(ctx context.Context, w EventWriter, kind string, event any) {
	if w == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		zap.S().Named("service").Errorw("failed to marshal event", "error", err, "event_kind", kind)
		return
	}

	if err := w.Write(ctx, kind, bytes.NewBuffer(data)); err != nil {
		zap.S().Named("service").Errorw("failed to write event", "error", err, "event_kind", kind)
	}
}

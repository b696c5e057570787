package rabbitmq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

type recordingAcker struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *recordingAcker) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *recordingAcker) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *recordingAcker) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestHandleDelivery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errFailed := errors.New("storage unavailable")

	tests := []struct {
		name        string
		body        string
		handlerErr  error
		wantPayload *payloads.PhotoCleanupPayload
		wantAck     bool
		wantNack    bool
		wantRequeue bool
	}{
		{
			name:        "processed message is acked",
			body:        `{"photo_ids":[10,11],"sources":["a.jpg","b.jpg"]}`,
			wantPayload: &payloads.PhotoCleanupPayload{PhotoIDs: []int64{10, 11}, Sources: []string{"a.jpg", "b.jpg"}},
			wantAck:     true,
		},
		{
			name:        "failed processing is requeued",
			body:        `{"photo_ids":[10],"sources":["a.jpg"]}`,
			handlerErr:  errFailed,
			wantPayload: &payloads.PhotoCleanupPayload{PhotoIDs: []int64{10}, Sources: []string{"a.jpg"}},
			wantNack:    true,
			wantRequeue: true,
		},
		{
			name:     "malformed message is dropped",
			body:     `{not json`,
			wantNack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acker := &recordingAcker{}
			msg := amqp.Delivery{Acknowledger: acker, Body: []byte(tt.body)}

			var got *payloads.PhotoCleanupPayload
			handleDelivery(context.Background(), logger, msg, func(_ context.Context, p payloads.PhotoCleanupPayload) error {
				got = &p
				return tt.handlerErr
			})

			if !reflect.DeepEqual(got, tt.wantPayload) {
				t.Errorf("expected payload %+v, got %+v", tt.wantPayload, got)
			}
			if acker.acked != tt.wantAck || acker.nacked != tt.wantNack || acker.requeue != tt.wantRequeue {
				t.Errorf("unexpected acknowledgement: %+v", acker)
			}
		})
	}
}

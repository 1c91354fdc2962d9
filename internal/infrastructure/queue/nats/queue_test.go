package nats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sony/gobreaker/v2"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

func TestEventRoundTrip(t *testing.T) {
	raw, err := encodeEvent(" 67-64-1 ", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("encodeEvent() error = %v", err)
	}
	cas, err := decodeEvent(raw)
	if err != nil {
		t.Fatalf("decodeEvent() error = %v", err)
	}
	if cas != "67-64-1" {
		t.Fatalf("expected 67-64-1, got %q", cas)
	}
}

func TestDecodeEventAcceptsBareCAS(t *testing.T) {
	cas, err := decodeEvent([]byte("64-17-5\n"))
	if err != nil || cas != "64-17-5" {
		t.Fatalf("expected bare cas, got %q err=%v", cas, err)
	}
}

func TestDecodeEventRejectsMalformed(t *testing.T) {
	for _, payload := range []string{"", "   ", `{"cas_number":""}`, `{"cas_number":`} {
		if _, err := decodeEvent([]byte(payload)); err == nil {
			t.Fatalf("expected error for %q", payload)
		}
	}
}

func TestEncodeEventRequiresCAS(t *testing.T) {
	if _, err := encodeEvent("", time.Now()); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		temporary bool
	}{
		{name: "no servers", err: fmt.Errorf("nats publish: %w", nats.ErrNoServers), temporary: true},
		{name: "circuit open", err: gobreaker.ErrOpenState, temporary: true},
		{name: "bad subject", err: nats.ErrBadSubject, temporary: false},
		{name: "cancelled", err: context.Canceled, temporary: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := wrapTemporaryIfNeeded(tc.err)
			if domain.IsKind(got, domain.ErrTemporary) != tc.temporary {
				t.Fatalf("temporary=%v, got %v", tc.temporary, got)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("expected original error to be preserved")
			}
		})
	}
}

func TestDispatchHandlesMessagesAfterShutdown(t *testing.T) {
	q := &Queue{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	ctx, cancel := context.WithCancel(context.Background())

	var handled []string
	var handlerErr error
	dispatch := q.dispatch(ctx, func(hctx context.Context, cas string) error {
		handled = append(handled, cas)
		handlerErr = hctx.Err()
		return nil
	})

	dispatch(&nats.Msg{Data: []byte(`{"cas_number":"67-64-1"}`)})
	cancel()
	dispatch(&nats.Msg{Data: []byte(`{"cas_number":"64-17-5"}`)})
	dispatch(&nats.Msg{Data: []byte(`{}`)})

	if len(handled) != 2 || handled[0] != "67-64-1" || handled[1] != "64-17-5" {
		t.Fatalf("expected both events handled, got %v", handled)
	}
	if handlerErr != nil {
		t.Fatalf("expected handler context detached from shutdown, got %v", handlerErr)
	}
}

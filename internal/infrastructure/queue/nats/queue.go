package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
	"github.com/kirillkom/chemical-safety-registry/internal/infrastructure/resilience"
)

const workerQueueGroup = "sds-extractors"

// sdsUploadedEvent is the wire payload on the sds.uploaded subject.
type sdsUploadedEvent struct {
	CASNumber  string    `json:"cas_number"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Queue struct {
	conn     *nats.Conn
	subject  string
	executor *resilience.Executor
	logger   *slog.Logger
}

type Options struct {
	ConnectTimeout     time.Duration
	ReconnectWait      time.Duration
	MaxReconnects      int
	ResilienceExecutor *resilience.Executor
	Logger             *slog.Logger
}

func New(url, subject string, options Options) (*Queue, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(
		url,
		nats.Name("chemical-safety-registry"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Queue{
		conn:     conn,
		subject:  subject,
		executor: options.ResilienceExecutor,
		logger:   logger,
	}, nil
}

func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

func (q *Queue) PublishSDSUploaded(ctx context.Context, cas string) error {
	payload, err := encodeEvent(cas, time.Now().UTC())
	if err != nil {
		return err
	}

	call := func(_ context.Context) error {
		if err := q.conn.Publish(q.subject, payload); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	if q.executor != nil {
		err = q.executor.Do(ctx, "nats.publish", call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return wrapTemporaryIfNeeded(err)
	}
	return nil
}

// SubscribeSDSUploaded blocks until ctx is done, then drains the subscription.
// Messages still buffered at shutdown are handled during the drain.
func (q *Queue) SubscribeSDSUploaded(ctx context.Context, handler func(context.Context, string) error) error {
	sub, err := q.conn.QueueSubscribe(q.subject, workerQueueGroup, q.dispatch(ctx, handler))
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := q.conn.FlushTimeout(5 * time.Second); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}

// dispatch hands each event to handler under a context that survives
// cancellation of ctx, so drained messages are processed rather than dropped.
func (q *Queue) dispatch(ctx context.Context, handler func(context.Context, string) error) nats.MsgHandler {
	handlerCtx := context.WithoutCancel(ctx)
	return func(msg *nats.Msg) {
		cas, err := decodeEvent(msg.Data)
		if err != nil {
			q.logger.Warn("sds_event_rejected", "error", err)
			return
		}
		if ctx.Err() != nil {
			q.logger.Info("sds_event_draining", "cas_number", cas)
		}
		if err := handler(handlerCtx, cas); err != nil {
			q.logger.Error("sds_event_failed", "cas_number", cas, "error", err)
		}
	}
}

func encodeEvent(cas string, at time.Time) ([]byte, error) {
	cas = strings.TrimSpace(cas)
	if cas == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "encode sds event", errors.New("cas number is required"))
	}
	raw, err := json.Marshal(sdsUploadedEvent{CASNumber: cas, UploadedAt: at})
	if err != nil {
		return nil, fmt.Errorf("marshal sds event: %w", err)
	}
	return raw, nil
}

// decodeEvent also accepts a bare CAS number payload.
func decodeEvent(data []byte) (string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "", errors.New("empty sds event")
	}
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed, nil
	}
	var evt sdsUploadedEvent
	if err := json.Unmarshal([]byte(trimmed), &evt); err != nil {
		return "", fmt.Errorf("decode sds event: %w", err)
	}
	if strings.TrimSpace(evt.CASNumber) == "" {
		return "", errors.New("sds event without cas number")
	}
	return strings.TrimSpace(evt.CASNumber), nil
}

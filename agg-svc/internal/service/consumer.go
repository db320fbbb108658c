package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"foodpos/agg-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 30 * time.Second
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    *slog.Logger
	// RetryDelay is the first pause before retrying a failed store write.
	// It doubles on each attempt up to maxRetryDelay.
	RetryDelay time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, log *slog.Logger) *Consumer {
	return &Consumer{
		Reader:     reader,
		Store:      store,
		Log:        log,
		RetryDelay: DefaultRetryDelay,
	}
}

// Start reads order events until ctx is cancelled. Offsets are committed in
// order: a message that cannot be stored is retried until it succeeds, and
// nothing after it is fetched meanwhile. Undecodable messages are skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("starting order event consumer")
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.Log.Info("order event consumer stopped")
				return
			}
			c.Log.Error("failed to read message", "error", err)
			continue
		}

		if !c.process(ctx, message) {
			c.Log.Info("order event consumer stopped", "uncommitted_offset", message.Offset)
			return
		}

		if err := c.Reader.CommitMessages(ctx, message); err != nil {
			c.Log.Error("failed to commit message", "offset", message.Offset, "error", err)
		}
	}
}

// process applies message, retrying with backoff. It returns false only when
// ctx is cancelled before the message was applied.
func (c *Consumer) process(ctx context.Context, message kafka.Message) bool {
	delay := c.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	for attempt := 1; ; attempt++ {
		err := c.handle(ctx, message)
		if err == nil {
			return true
		}
		c.Log.Error("failed to process order event",
			"partition", message.Partition,
			"offset", message.Offset,
			"attempt", attempt,
			"retry_in", delay.String(),
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}

func (c *Consumer) handle(ctx context.Context, message kafka.Message) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.Log.Warn("skipping malformed order event", "offset", message.Offset, "error", err)
		return nil
	}
	return c.ProcessEvent(ctx, event)
}

// ProcessEvent applies one event to the aggregates. Unknown types are ignored.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) error {
	switch event.Type {
	case domain.EventOrderCreated:
		if err := c.Store.RecordOrderCreated(ctx, event); err != nil {
			return err
		}
	case domain.EventOrderStatusChanged:
		if err := c.Store.RecordStatusChange(ctx, event); err != nil {
			return err
		}
	default:
		c.Log.Debug("ignoring order event", "type", event.Type, "order_id", event.OrderID)
		return nil
	}

	c.Log.Info("order event aggregated",
		"type", event.Type,
		"order_id", event.OrderID,
		"status", event.Status,
	)
	return nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

type outboxStore struct {
	*DB
	logger *logger.Logger
}

func NewOutboxStore(db *DB, logger *logger.Logger) OutboxStore {
	return &outboxStore{
		DB:     db,
		logger: logger,
	}
}

func (o *outboxStore) Enqueue(ctx context.Context, event models.OutboxEvent) error {
	log := o.logger.With().Str("func", "outboxStore.Enqueue").Str("event_id", event.EventID).Logger()

	delta, err := json.Marshal(event.Delta)
	if err != nil {
		return fmt.Errorf("failed to encode delta: %w", err)
	}

	if _, err = o.DB.ExecContext(ctx, insertOutboxEvent, event.EventID, event.Timestamp, string(delta)); err != nil {
		log.Err(err).Msg("failed to enqueue outbox event")
		return fmt.Errorf("failed to enqueue outbox event: %w", err)
	}

	return nil
}

// Peek returns the head of the queue. When the head row's delta no longer
// decodes, the row is deleted and the next head tried, so one corrupt event
// cannot wedge the whole queue.
func (o *outboxStore) Peek(ctx context.Context) (models.OutboxEvent, bool, error) {
	log := o.logger.With().Str("func", "outboxStore.Peek").Logger()

	for {
		event, seq, ok, err := o.scanOne(ctx, selectOutboxHead)
		if err != nil {
			if errors.Is(err, ErrCorruptLocalState) {
				log.Warn().Int64("seq", seq).Msg("dropping corrupt outbox event")
				if _, delErr := o.DB.ExecContext(ctx, deleteOutboxBySeq, seq); delErr != nil {
					return models.OutboxEvent{}, false, fmt.Errorf("failed to drop corrupt outbox event: %w", delErr)
				}
				continue
			}
			log.Err(err).Msg("failed to read outbox head")
			return models.OutboxEvent{}, false, err
		}
		return event, ok, nil
	}
}

func (o *outboxStore) Tail(ctx context.Context) (models.OutboxEvent, bool, error) {
	log := o.logger.With().Str("func", "outboxStore.Tail").Logger()

	event, _, ok, err := o.scanOne(ctx, selectOutboxTail)
	if err != nil {
		log.Err(err).Msg("failed to read outbox tail")
		return models.OutboxEvent{}, false, err
	}
	return event, ok, nil
}

func (o *outboxStore) ReplaceTail(ctx context.Context, event models.OutboxEvent) error {
	log := o.logger.With().Str("func", "outboxStore.ReplaceTail").Str("event_id", event.EventID).Logger()

	_, seq, ok, err := o.scanOne(ctx, selectOutboxTail)
	if err != nil && !errors.Is(err, ErrCorruptLocalState) {
		log.Err(err).Msg("failed to locate outbox tail")
		return err
	}
	if !ok && err == nil {
		return o.Enqueue(ctx, event)
	}

	delta, err := json.Marshal(event.Delta)
	if err != nil {
		return fmt.Errorf("failed to encode delta: %w", err)
	}

	if _, err = o.DB.ExecContext(ctx, updateOutboxEvent, event.EventID, event.Timestamp, string(delta), seq); err != nil {
		log.Err(err).Msg("failed to replace outbox tail")
		return fmt.Errorf("failed to replace outbox tail: %w", err)
	}

	return nil
}

func (o *outboxStore) Remove(ctx context.Context, eventID string) error {
	log := o.logger.With().Str("func", "outboxStore.Remove").Str("event_id", eventID).Logger()

	if _, err := o.DB.ExecContext(ctx, deleteOutboxByEventID, eventID); err != nil {
		log.Err(err).Msg("failed to remove outbox event")
		return fmt.Errorf("failed to remove outbox event: %w", err)
	}

	return nil
}

func (o *outboxStore) Clear(ctx context.Context) error {
	log := o.logger.With().Str("func", "outboxStore.Clear").Logger()

	if _, err := o.DB.ExecContext(ctx, deleteAllOutboxEvents); err != nil {
		log.Err(err).Msg("failed to clear outbox")
		return fmt.Errorf("failed to clear outbox: %w", err)
	}

	return nil
}

func (o *outboxStore) Depth(ctx context.Context) (int, error) {
	log := o.logger.With().Str("func", "outboxStore.Depth").Logger()

	var depth int
	row := o.DB.QueryRowContext(ctx, countOutboxEvents)
	if err := row.Scan(&depth); err != nil {
		log.Err(err).Msg("failed to count outbox events")
		return 0, fmt.Errorf("failed to count outbox events: %w", err)
	}

	return depth, nil
}

// scanOne reads a single outbox row with the given query. A decode failure
// of the stored delta is reported as ErrCorruptLocalState together with the
// row's seq so the caller can drop it.
func (o *outboxStore) scanOne(ctx context.Context, query string) (models.OutboxEvent, int64, bool, error) {
	var (
		event models.OutboxEvent
		seq   int64
		delta string
	)

	row := o.DB.QueryRowContext(ctx, query)
	err := row.Scan(&seq, &event.EventID, &event.Timestamp, &delta)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OutboxEvent{}, 0, false, nil
	}
	if err != nil {
		return models.OutboxEvent{}, 0, false, fmt.Errorf("failed to scan outbox row: %w", err)
	}

	if err = json.Unmarshal([]byte(delta), &event.Delta); err != nil {
		return models.OutboxEvent{}, seq, false, fmt.Errorf("%w: %w", ErrCorruptLocalState, err)
	}

	return event, seq, true, nil
}

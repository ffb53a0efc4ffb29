// Package worker consumes command events from AMQP and writes them to the
// durable archive.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"gullak/internal/amqp"
	"gullak/internal/log"
	"gullak/internal/storage"
)

// ArchiveWorker turns published command events into archive rows.
type ArchiveWorker struct {
	archive *storage.Archive
	logger  *log.Logger
}

func NewArchiveWorker(archive *storage.Archive) *ArchiveWorker {
	return &ArchiveWorker{
		archive: archive,
		logger: log.New(log.Config{
			Level:     slog.LevelInfo,
			Component: log.ComponentWorker,
		}),
	}
}

// HandleEvent processes a single command event. Errors make the broker
// requeue the delivery; the archive insert is idempotent per event id, so
// replays are harmless.
func (w *ArchiveWorker) HandleEvent(ctx context.Context, event *amqp.CommandEvent) error {
	w.logger.InfoContext(ctx, "Archiving command event",
		log.FieldEventID, event.ID,
		log.FieldVerb, event.Verb)

	err := w.archive.Append(ctx, storage.CommandRecord{
		ID:       event.ID,
		UserID:   event.UserID,
		Verb:     event.Verb,
		Command:  event.Command,
		Response: event.Response,
		At:       event.At,
	})
	if err != nil {
		return fmt.Errorf("archive command event: %w", err)
	}
	return nil
}

package worker

import (
	"context"
	"path/filepath"
	"testing"

	"gullak/internal/amqp"
	"gullak/internal/storage"
)

func TestHandleEvent(t *testing.T) {
	archive, err := storage.NewArchive(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewArchive: %v", err)
	}
	defer archive.Close()

	w := NewArchiveWorker(archive)
	event := amqp.NewCommandEvent("u", "owe", "owe Raj 500", "✅ Debt recorded: Owe Raj ₹500.00.")

	ctx := context.Background()
	if err := w.HandleEvent(ctx, event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	// redelivery of the same event must stay idempotent
	if err := w.HandleEvent(ctx, event); err != nil {
		t.Fatalf("HandleEvent replay: %v", err)
	}

	n, err := archive.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("archived %d rows, want 1", n)
	}

	recs, err := archive.RecentByUser(ctx, "u", 10)
	if err != nil {
		t.Fatalf("RecentByUser: %v", err)
	}
	if len(recs) != 1 || recs[0].Verb != "owe" {
		t.Errorf("records = %+v", recs)
	}
}

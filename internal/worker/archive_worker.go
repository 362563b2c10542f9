// Package worker archives payment events consumed from AMQP.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"paytrack/internal/amqp"
	"paytrack/internal/export"
	"paytrack/internal/storage"
)

// ArchiveWorker appends every payment event to the SQLite archive and
// mirrors created payments to the configured exporter.
type ArchiveWorker struct {
	archive  *storage.ArchiveRepository
	exporter export.PaymentExporter
}

func NewArchiveWorker(archive *storage.ArchiveRepository, exporter export.PaymentExporter) *ArchiveWorker {
	return &ArchiveWorker{
		archive:  archive,
		exporter: exporter,
	}
}

// HandleEvent processes one payment event. An archive failure is returned to
// the consumer so the message is requeued; export failures are logged only,
// the spreadsheet is a best-effort mirror.
func (w *ArchiveWorker) HandleEvent(ctx context.Context, msg *amqp.PaymentEventMessage) error {
	eventID, err := w.archive.RecordEvent(ctx, msg.Kind, msg.Payment, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("archive payment event: %w", err)
	}

	if msg.Kind == amqp.EventCreated && w.exporter != nil {
		ref, err := w.exporter.ExportPayment(ctx, msg.Payment)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to export payment",
				"payment_id", msg.Payment.ID,
				"event_id", eventID,
				"error", err)
		} else {
			slog.InfoContext(ctx, "Payment exported",
				"payment_id", msg.Payment.ID,
				"ref", ref)
		}
	}

	return nil
}

// RunStatsLoop periodically logs the archive size until ctx is cancelled.
func (w *ArchiveWorker) RunStatsLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := w.archive.CountEvents(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to count archived events", "error", err)
				continue
			}
			slog.InfoContext(ctx, "Archive status", "events", n)
		}
	}
}

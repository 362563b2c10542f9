// Package service orchestrates payment operations across the in-memory
// store, the file persistence adapter, and the optional event publisher.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"paytrack/internal/amqp"
	"paytrack/internal/core"
	"paytrack/internal/storage"
	"paytrack/internal/store"
)

// EventPublisher pushes payment change events to the async pipeline.
type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, msg *amqp.PaymentEventMessage) error
}

// Summary carries the aggregate totals returned by the summary endpoint.
type Summary struct {
	TotalPaid float64 `json:"totalPaid"`
	TotalDue  float64 `json:"totalDue"`
}

// PaymentService mutates memory first, then disk, in that order. The two are
// not updated transactionally; the reload in List reconciles them.
type PaymentService struct {
	store     *store.Store
	files     *storage.FileRepository
	publisher EventPublisher
}

func NewPaymentService(st *store.Store, files *storage.FileRepository, publisher EventPublisher) *PaymentService {
	return &PaymentService{
		store:     st,
		files:     files,
		publisher: publisher,
	}
}

// List resynchronizes the in-memory store from disk and returns the full
// payment list. The reload happens on every call; the store never serves a
// stale snapshot across requests.
func (s *PaymentService) List(ctx context.Context) ([]core.Payment, error) {
	payments, err := s.files.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	s.store.ReplaceAll(payments)
	return s.store.GetAll(), nil
}

// Create assigns an id, stores the payment, and persists it as one file.
func (s *PaymentService) Create(ctx context.Context, p core.Payment) (core.Payment, error) {
	if err := p.Validate(); err != nil {
		return core.Payment{}, err
	}

	stored := s.store.Add(p)
	if err := s.files.Save(stored); err != nil {
		return core.Payment{}, fmt.Errorf("persist payment %s: %w", stored.ID, err)
	}

	s.publish(ctx, amqp.EventCreated, stored)
	return stored, nil
}

// Update replaces the payment matching p.ID and rewrites its file.
func (s *PaymentService) Update(ctx context.Context, p core.Payment) (core.Payment, error) {
	if err := p.Validate(); err != nil {
		return core.Payment{}, err
	}

	updated, err := s.store.UpdateByID(p)
	if err != nil {
		return core.Payment{}, err
	}
	if err := s.files.Save(updated); err != nil {
		return core.Payment{}, fmt.Errorf("persist payment %s: %w", updated.ID, err)
	}

	s.publish(ctx, amqp.EventUpdated, updated)
	return updated, nil
}

// Delete removes the payment from the store and deletes its file.
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if !s.store.DeleteByID(id) {
		return core.ErrNotFound
	}
	if err := s.files.Delete(id); err != nil {
		return fmt.Errorf("delete payment file %s: %w", id, err)
	}

	s.publish(ctx, amqp.EventDeleted, core.Payment{ID: id})
	return nil
}

// Clear empties the store and removes every payment file.
func (s *PaymentService) Clear(ctx context.Context) error {
	s.store.Clear()
	if err := s.files.Clear(); err != nil {
		return fmt.Errorf("clear payment files: %w", err)
	}

	s.publish(ctx, amqp.EventCleared, core.Payment{})
	return nil
}

// Summary reloads the payment set and returns paid/due totals, optionally
// restricted to a profile and a calendar month.
func (s *PaymentService) Summary(ctx context.Context, profileID string, month *core.Date) (Summary, error) {
	payments, err := s.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	if month != nil {
		payments = core.ByMonth(payments, *month, profileID)
	} else if profileID != "" {
		payments = core.ByProfile(payments, profileID)
	}
	return Summary{
		TotalPaid: core.TotalPaid(payments),
		TotalDue:  core.TotalDue(payments),
	}, nil
}

// publish sends an event best-effort. Publish failures are logged and never
// fail the request; the payment is already durable on disk.
func (s *PaymentService) publish(ctx context.Context, kind string, p core.Payment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPaymentEvent(ctx, amqp.NewPaymentEventMessage(kind, p)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish payment event",
			"kind", kind,
			"payment_id", p.ID,
			"error", err)
	}
}

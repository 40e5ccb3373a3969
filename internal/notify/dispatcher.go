// Package notify delivers completed leads to the operator. A configured
// operator chat is tried first; on absence or failure every known chat
// is tried sequentially in first-seen order, skipping the submitter,
// stopping at the first success. Delivery failures are an operator-side
// concern and are never surfaced to the submitting user.
package notify

import (
	"context"
	"log/slog"

	"github.com/formacontact/leadbot/core/logger"
	"github.com/formacontact/leadbot/internal/contacts"
	"github.com/formacontact/leadbot/internal/form"
)

const component = "service.notify"

// Sender performs one outbound message delivery. Implementations must
// return an error for any failed attempt so the dispatcher can move on
// to the next candidate.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, chatID int64, text string) error

// Send calls the underlying function.
func (f SenderFunc) Send(ctx context.Context, chatID int64, text string) error {
	return f(ctx, chatID, text)
}

// Options configure the dispatcher.
type Options struct {
	// OperatorChatID is the primary destination; 0 means unset.
	OperatorChatID int64
}

// Report summarizes one delivery run.
type Report struct {
	Delivered   bool
	DeliveredTo int64
	Attempts    int
	Fallback    bool // true when delivery succeeded via the fallback list
}

// Dispatcher fans a lead out to the operator destinations.
type Dispatcher struct {
	opts     Options
	sender   Sender
	registry *contacts.Registry
}

// NewDispatcher wires a dispatcher with its outbound sender and the
// known-contacts registry used for fallback discovery.
func NewDispatcher(opts Options, sender Sender, registry *contacts.Registry) *Dispatcher {
	return &Dispatcher{opts: opts, sender: sender, registry: registry}
}

// Deliver attempts to hand the lead to exactly one destination.
// Attempts are sequential so "first success wins" stays observable.
// A fully failed run is logged as an operational gap and reported via
// Report.Delivered=false; it is not an error for the caller.
func (d *Dispatcher) Deliver(ctx context.Context, lead *form.Lead) Report {
	text := OperatorMessage(lead)
	var rep Report

	if d.opts.OperatorChatID != 0 {
		rep.Attempts++
		if err := d.sender.Send(ctx, d.opts.OperatorChatID, text); err == nil {
			rep.Delivered = true
			rep.DeliveredTo = d.opts.OperatorChatID
			d.logDelivered(ctx, lead, rep)
			return rep
		} else {
			logger.Warn(ctx, component, "lead.primary_failed",
				slog.String("lead_id", lead.ID),
				slog.Int64("operator_chat_id", d.opts.OperatorChatID),
				slog.String("err", err.Error()),
			)
		}
	} else {
		logger.Warn(ctx, component, "lead.primary_unset",
			slog.String("lead_id", lead.ID),
		)
	}

	for _, chatID := range d.registry.Known() {
		if chatID == lead.ChatID {
			// Never notify the submitter about their own lead.
			logger.Info(ctx, component, "lead.fallback_skip_self",
				slog.String("lead_id", lead.ID),
				slog.Int64("chat_id", chatID),
			)
			continue
		}
		rep.Attempts++
		if err := d.sender.Send(ctx, chatID, text); err != nil {
			logger.Warn(ctx, component, "lead.fallback_failed",
				slog.String("lead_id", lead.ID),
				slog.Int64("chat_id", chatID),
				slog.String("err", err.Error()),
			)
			continue
		}
		rep.Delivered = true
		rep.DeliveredTo = chatID
		rep.Fallback = true
		d.logDelivered(ctx, lead, rep)
		return rep
	}

	logger.Error(ctx, component, "lead.undelivered",
		slog.String("lead_id", lead.ID),
		slog.String("status", "fail"),
		slog.Int("attempts", rep.Attempts),
		slog.Int("contacts", d.registry.Len()),
	)
	return rep
}

func (d *Dispatcher) logDelivered(ctx context.Context, lead *form.Lead, rep Report) {
	logger.Info(ctx, component, "lead.delivered",
		slog.String("lead_id", lead.ID),
		slog.String("status", "ok"),
		slog.Int64("delivered_to", rep.DeliveredTo),
		slog.Int("attempts", rep.Attempts),
		slog.Bool("fallback", rep.Fallback),
	)
}

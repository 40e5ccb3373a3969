package leadstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/formacontact/leadbot/core/logger"
	"github.com/formacontact/leadbot/internal/form"
	"log/slog"

	"github.com/formacontact/leadbot/internal/notify"
)

// Row mirrors one journal record.
type Row struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	Phone       string     `db:"phone"`
	UserID      int64      `db:"user_id"`
	ChatID      int64      `db:"chat_id"`
	Username    string     `db:"username"`
	DisplayName string     `db:"display_name"`
	SubmittedAt time.Time  `db:"submitted_at"`
	Delivered   bool       `db:"delivered"`
	DeliveredTo *int64     `db:"delivered_to"`
	DeliveredAt *time.Time `db:"delivered_at"`
}

// Store journals completed submissions so requests are not lost when no
// operator could be reached at submit time.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Record inserts the lead together with its delivery outcome.
func (s *Store) Record(ctx context.Context, lead form.Lead, rep notify.Report) error {
	row := Row{
		ID:          lead.ID,
		Name:        lead.Name,
		Phone:       lead.Phone,
		UserID:      lead.UserID,
		ChatID:      lead.ChatID,
		Username:    lead.Username,
		DisplayName: lead.DisplayName,
		SubmittedAt: lead.SubmittedAt,
		Delivered:   rep.Delivered,
	}
	if rep.Delivered {
		to := rep.DeliveredTo
		now := time.Now()
		row.DeliveredTo = &to
		row.DeliveredAt = &now
	}

	const q = `
		INSERT INTO leads (id, name, phone, user_id, chat_id, username, display_name,
		                   submitted_at, delivered, delivered_to, delivered_at)
		VALUES (:id, :name, :phone, :user_id, :chat_id, :username, :display_name,
		        :submitted_at, :delivered, :delivered_to, :delivered_at)`
	if _, err := s.db.NamedExecContext(ctx, q, row); err != nil {
		logger.SVCLeads.Error("journal insert failed",
			slog.String("event", "leads.record"),
			slog.String("lead_id", lead.ID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("record lead: %w", err)
	}

	logger.SVCLeads.Debug("lead journaled",
		slog.String("event", "leads.record"),
		slog.String("lead_id", lead.ID),
		slog.Bool("delivered", rep.Delivered),
	)
	return nil
}

// Pending returns journaled leads that never reached an operator, oldest first.
func (s *Store) Pending(ctx context.Context) ([]Row, error) {
	var rows []Row
	const q = `
		SELECT id, name, phone, user_id, chat_id, username, display_name,
		       submitted_at, delivered, delivered_to, delivered_at
		FROM leads
		WHERE NOT delivered
		ORDER BY submitted_at`
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("select pending leads: %w", err)
	}
	return rows, nil
}

// RedeliverPending replays undelivered leads through the dispatcher and
// marks the ones that reach an operator. Called on startup so submissions
// made while every operator chat was unreachable eventually arrive.
func (s *Store) RedeliverPending(ctx context.Context, d *notify.Dispatcher) (int, error) {
	rows, err := s.Pending(ctx)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, row := range rows {
		lead := form.Lead{
			ID:          row.ID,
			Name:        row.Name,
			Phone:       row.Phone,
			UserID:      row.UserID,
			ChatID:      row.ChatID,
			Username:    row.Username,
			DisplayName: row.DisplayName,
			SubmittedAt: row.SubmittedAt,
		}
		rep := d.Deliver(ctx, &lead)
		if !rep.Delivered {
			continue
		}
		if err := s.MarkDelivered(ctx, lead.ID, rep.DeliveredTo); err != nil {
			return delivered, err
		}
		delivered++
	}

	if len(rows) > 0 {
		logger.SVCLeads.Info("redelivery summary",
			slog.String("event", "leads.redeliver"),
			slog.Int("pending_count", len(rows)),
			slog.Int("delivered", delivered),
		)
	}
	return delivered, nil
}

// MarkDelivered flips a journaled lead to delivered.
func (s *Store) MarkDelivered(ctx context.Context, leadID string, chatID int64) error {
	const q = `
		UPDATE leads
		SET delivered = TRUE, delivered_to = $2, delivered_at = NOW()
		WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, q, leadID, chatID); err != nil {
		return fmt.Errorf("mark lead delivered: %w", err)
	}
	return nil
}

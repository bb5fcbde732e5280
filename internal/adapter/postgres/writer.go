// Package postgres persists clean tickets to a warehouse table for ad-hoc
// analysis alongside the file export.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/traffydata/ticket-etl/internal/domain"
)

// insertBatchSize bounds the number of rows per multi-value INSERT.
const insertBatchSize = 500

// Writer persists clean tickets to PostgreSQL. It implements
// pipeline.Loader.
type Writer struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewWriter opens a connection to PostgreSQL, runs schema migration, and
// returns a ready-to-use Writer.
func NewWriter(dsn string, logger *slog.Logger) (*Writer, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	w := &Writer{db: db, logger: logger}
	if err := w.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return w, nil
}

func (w *Writer) migrate() error {
	_, err := w.db.Exec(`
		CREATE TABLE IF NOT EXISTS clean_tickets (
			ticket_id        TEXT PRIMARY KEY,
			type             TEXT NOT NULL DEFAULT '',
			clean_comment    TEXT NOT NULL DEFAULT '',
			final_latitude   DOUBLE PRECISION,
			final_longitude  DOUBLE PRECISION,
			district         TEXT NOT NULL DEFAULT '',
			timestamp_dt     TIMESTAMP,
			last_activity_dt TIMESTAMP,
			state            TEXT NOT NULL DEFAULT '',
			star             TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_clean_tickets_district  ON clean_tickets(district);
		CREATE INDEX IF NOT EXISTS idx_clean_tickets_state     ON clean_tickets(state);
		CREATE INDEX IF NOT EXISTS idx_clean_tickets_timestamp ON clean_tickets(timestamp_dt);
	`)
	return err
}

// Load batch-inserts the clean record set. Re-runs are idempotent: rows
// keyed by an existing ticket_id are skipped.
func (w *Writer) Load(ctx context.Context, tickets []domain.CleanTicket) error {
	for i := 0; i < len(tickets); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(tickets) {
			end = len(tickets)
		}
		if err := w.insertBatch(ctx, tickets[i:end]); err != nil {
			return err
		}
	}
	w.logger.Info("clean tickets stored", "rows", len(tickets))
	return nil
}

func (w *Writer) insertBatch(ctx context.Context, batch []domain.CleanTicket) error {
	if len(batch) == 0 {
		return nil
	}

	query, args := buildInsert(batch)
	if _, err := w.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// buildInsert assembles a multi-value INSERT with positional placeholders.
func buildInsert(batch []domain.CleanTicket) (string, []any) {
	const columns = 10

	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*columns)

	for idx, t := range batch {
		base := idx * columns
		placeholders := make([]string, columns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			t.TicketID, t.Type, t.CleanComment,
			t.FinalLatitude, t.FinalLongitude,
			t.District, t.TimestampDt, t.LastActivityDt,
			t.State, t.Star,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO clean_tickets (
			ticket_id, type, clean_comment, final_latitude, final_longitude,
			district, timestamp_dt, last_activity_dt, state, star
		)
		VALUES %s
		ON CONFLICT (ticket_id) DO NOTHING
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

func (w *Writer) Close() error {
	return w.db.Close()
}

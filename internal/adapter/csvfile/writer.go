package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/traffydata/ticket-etl/internal/domain"
)

// exportLayout is how derived timestamps appear in the output table.
// Downstream tooling re-coerces the column, so the bare layout without
// zone suffix keeps it unambiguous.
const exportLayout = "2006-01-02 15:04:05"

// outputRow is the exported column set, in contract order. The dashboard
// depends on these exact names; last_activity_dt is carried on CleanTicket
// for the Kafka and Postgres sinks but is not part of the file contract.
type outputRow struct {
	TicketID       string `csv:"ticket_id"`
	Type           string `csv:"type"`
	CleanComment   string `csv:"clean_comment"`
	FinalLatitude  string `csv:"final_latitude"`
	FinalLongitude string `csv:"final_longitude"`
	District       string `csv:"district"`
	TimestampDt    string `csv:"timestamp_dt"`
	State          string `csv:"state"`
	Star           string `csv:"star"`
}

// CleanWriter exports the clean record set as a single UTF-8 CSV file with
// a header row. It implements pipeline.Loader.
type CleanWriter struct {
	path   string
	logger *slog.Logger
}

// NewCleanWriter creates a writer targeting path. Intermediate directories
// are created at write time; an existing file is overwritten.
func NewCleanWriter(path string, logger *slog.Logger) *CleanWriter {
	return &CleanWriter{path: path, logger: logger}
}

// Load writes every clean ticket in the order given. Callers fix record
// order before this barrier; the writer adds no ordering of its own.
func (w *CleanWriter) Load(_ context.Context, tickets []domain.CleanTicket) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create output dir for %q: %w", w.path, err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", w.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	enc := csvutil.NewEncoder(cw)

	// Header goes out even for an empty record set.
	if err := enc.EncodeHeader(outputRow{}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, t := range tickets {
		if err := enc.Encode(exportRow(t)); err != nil {
			return fmt.Errorf("encode ticket %q: %w", t.TicketID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush output file %q: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file %q: %w", w.path, err)
	}

	w.logger.Info("clean tickets exported", "path", w.path, "rows", len(tickets))
	return nil
}

// exportRow formats optional fields explicitly: nil becomes an empty cell,
// coordinates keep their shortest exact decimal form.
func exportRow(t domain.CleanTicket) outputRow {
	return outputRow{
		TicketID:       t.TicketID,
		Type:           t.Type,
		CleanComment:   t.CleanComment,
		FinalLatitude:  formatCoordinate(t.FinalLatitude),
		FinalLongitude: formatCoordinate(t.FinalLongitude),
		District:       t.District,
		TimestampDt:    formatDateTime(t.TimestampDt),
		State:          t.State,
		Star:           t.Star,
	}
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportLayout)
}

// Package csvfile reads the Traffy ticket export and the Thailand geography
// reference, and writes the cleansed output table. All ticket columns are
// decoded as raw text; typed parsing belongs to the domain transforms.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/jszwec/csvutil"

	"github.com/traffydata/ticket-etl/internal/domain"
)

// TicketReader extracts the full raw ticket set from a CSV export.
// It implements pipeline.Extractor.
type TicketReader struct {
	path   string
	logger *slog.Logger
}

// NewTicketReader creates a reader for the ticket CSV at path.
func NewTicketReader(path string, logger *slog.Logger) *TicketReader {
	return &TicketReader{path: path, logger: logger}
}

// Extract reads and decodes every ticket row. Any failure here is fatal to
// the run: the source file is a barrier input, not a per-record concern.
func (r *TicketReader) Extract(_ context.Context) ([]domain.RawTicket, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open ticket source %q: %w", r.path, err)
	}
	defer f.Close()

	dec, err := csvutil.NewDecoder(csv.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read ticket header %q: %w", r.path, err)
	}

	var tickets []domain.RawTicket
	if err := dec.Decode(&tickets); err != nil {
		return nil, fmt.Errorf("decode tickets %q: %w", r.path, err)
	}

	r.logger.Info("ticket source loaded", "path", r.path, "rows", len(tickets))
	return tickets, nil
}

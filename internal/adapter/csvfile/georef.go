package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/traffydata/ticket-etl/internal/domain"
)

// geoRow is one row of the Thailand geography table. Coordinates are read
// as text so a malformed value drops the row instead of failing the load;
// the file also carries province/country columns this pipeline ignores.
type geoRow struct {
	District  string `csv:"district"`
	Latitude  string `csv:"latitude"`
	Longitude string `csv:"longitude"`
}

// GeoLoader builds the in-memory district index from the geography CSV.
type GeoLoader struct {
	path   string
	logger *slog.Logger
}

// NewGeoLoader creates a loader for the geography reference at path.
func NewGeoLoader(path string, logger *slog.Logger) *GeoLoader {
	return &GeoLoader{path: path, logger: logger}
}

// Load reads the reference table once. A missing or unreadable file is
// fatal; a row with a non-numeric coordinate is dropped and counted.
func (l *GeoLoader) Load(_ context.Context) (*domain.GeoIndex, int, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open geography reference %q: %w", l.path, err)
	}
	defer f.Close()

	dec, err := csvutil.NewDecoder(csv.NewReader(f))
	if err != nil {
		return nil, 0, fmt.Errorf("read geography header %q: %w", l.path, err)
	}

	var rows []geoRow
	if err := dec.Decode(&rows); err != nil {
		return nil, 0, fmt.Errorf("decode geography reference %q: %w", l.path, err)
	}

	geo := domain.NewGeoIndex()
	dropped := 0
	for _, row := range rows {
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(row.Latitude), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row.Longitude), 64)
		if latErr != nil || lonErr != nil || strings.TrimSpace(row.District) == "" {
			dropped++
			continue
		}
		geo.Add(row.District, domain.GeoPoint{Latitude: lat, Longitude: lon})
	}

	l.logger.Info("geography reference loaded",
		"path", l.path,
		"districts", geo.Len(),
		"dropped_rows", dropped,
	)
	return geo, dropped, nil
}

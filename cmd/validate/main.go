// Command validate checks a produced output CSV against the pipeline's
// contract: exact header set and order, comment-length filter honored,
// coordinates resolved for every row whose district matches the geography
// reference, and timestamp_dt either empty or parseable.
//
// Usage:
//
//	go run ./cmd/validate -output data/cleansed/bangkok_traffy_clean.csv -geo data/thailand_geography.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var expectedHeader = []string{
	"ticket_id", "type", "clean_comment", "final_latitude", "final_longitude",
	"district", "timestamp_dt", "state", "star",
}

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	outputPath := flag.String("output", "", "path to the cleansed output CSV")
	geoPath := flag.String("geo", "", "path to the geography reference CSV")
	flag.Parse()

	if *outputPath == "" || *geoPath == "" {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "missing required flags: -output, -geo")
		os.Exit(2)
	}

	phases, err := runChecks(*outputPath, *geoPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	failed := false
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			failed = true
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("       %s\n", e)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func runChecks(outputPath, geoPath string) ([]*phase, error) {
	reference, err := loadReferenceDistricts(geoPath)
	if err != nil {
		return nil, err
	}

	header, rows, err := readCSV(outputPath)
	if err != nil {
		return nil, err
	}

	headerPhase := &phase{name: "header matches contract"}
	checkHeader(headerPhase, header)

	// Remaining phases index columns by contract position, so they are
	// meaningless against a wrong header.
	if !headerPhase.passed() {
		return []*phase{headerPhase}, nil
	}

	commentPhase := &phase{name: "comment-length filter honored"}
	coordsPhase := &phase{name: "matched districts have coordinates"}
	temporalPhase := &phase{name: "timestamp_dt empty or parseable"}
	orderPhase := &phase{name: "rows sorted by ticket_id"}

	prevID := ""
	for i, row := range rows {
		line := i + 2 // 1-based, after header

		if utf8.RuneCountInString(row[2]) <= 3 {
			commentPhase.errorf("line %d: clean_comment %q is too short to have survived the filter", line, row[2])
		}

		district := strings.ToLower(strings.TrimSpace(row[5]))
		if _, ok := reference[district]; ok {
			if !isFloat(row[3]) || !isFloat(row[4]) {
				coordsPhase.errorf("line %d: district %q matched the reference but coordinates are %q/%q", line, row[5], row[3], row[4])
			}
		}

		if row[6] != "" {
			if _, err := time.Parse("2006-01-02 15:04:05", row[6]); err != nil {
				temporalPhase.errorf("line %d: timestamp_dt %q does not parse", line, row[6])
			}
		}

		if row[0] < prevID {
			orderPhase.errorf("line %d: ticket_id %q out of order after %q", line, row[0], prevID)
		}
		prevID = row[0]
	}

	fmt.Printf("checked %d rows against %d reference districts\n", len(rows), len(reference))
	return []*phase{headerPhase, commentPhase, coordsPhase, temporalPhase, orderPhase}, nil
}

func checkHeader(p *phase, header []string) {
	if len(header) != len(expectedHeader) {
		p.errorf("expected %d columns, found %d", len(expectedHeader), len(header))
		return
	}
	for i, want := range expectedHeader {
		if header[i] != want {
			p.errorf("column %d: expected %q, found %q", i, want, header[i])
		}
	}
}

func loadReferenceDistricts(path string) (map[string]struct{}, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	cols := map[string]int{"district": -1, "latitude": -1, "longitude": -1}
	for i, name := range header {
		if _, ok := cols[name]; ok {
			cols[name] = i
		}
	}
	for name, i := range cols {
		if i < 0 {
			return nil, fmt.Errorf("geography reference %q has no %s column", path, name)
		}
	}

	// Mirror the loader: rows with non-numeric coordinates never reach the
	// index, so they must not count as matchable districts here either.
	districts := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		name := strings.ToLower(strings.TrimSpace(row[cols["district"]]))
		if name == "" || !isFloat(strings.TrimSpace(row[cols["latitude"]])) || !isFloat(strings.TrimSpace(row[cols["longitude"]])) {
			continue
		}
		districts[name] = struct{}{}
	}
	return districts, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%q is empty", path)
	}
	return records[0], records[1:], nil
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

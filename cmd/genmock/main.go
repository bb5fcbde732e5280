// Command genmock generates deterministic synthetic fixtures for local runs
// and for cmd/validate: a Traffy-style ticket CSV with the malformed
// coordinate strings, stray whitespace, and truncated timestamps the real
// export exhibits, plus a matching Thailand geography reference.
//
// Usage:
//
//	go run ./cmd/genmock -tickets-out data/bangkok_traffy.csv -geo-out data/thailand_geography.csv -rows 500
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// The generator is seeded, so repeated runs produce identical fixtures.
const seed = 20230115

type district struct {
	name string
	lat  float64
	lon  float64
}

var districts = []district{
	{"Pathum Wan", 13.7469, 100.5349},
	{"Bangkok Noi", 13.7713, 100.4755},
	{"Bang Rak", 13.7306, 100.5241},
	{"Chatuchak", 13.8285, 100.5598},
	{"Phra Nakhon", 13.7643, 100.4993},
	{"บางกะปิ", 13.7650, 100.6479},
	{"ลาดพร้าว", 13.8158, 100.6079},
	{"ดอนเมือง", 13.9251, 100.5938},
}

var ticketTypes = []string{
	"{ถนน}",
	"{ทางเท้า}",
	"{น้ำท่วม}",
	"{ความสะอาด}",
	"{แสงสว่าง,ความปลอดภัย}",
	"{ถนน,น้ำท่วม}",
}

var comments = []string{
	"น้ำท่วมขังหน้าปากซอยหลังฝนตก",
	"ทางเท้าชำรุด มีหลุมขนาดใหญ่",
	"ไฟถนนดับทั้งซอย บริเวณหน้าวัด",
	"ขยะกองสะสมไม่มีการจัดเก็บ",
	"street light broken near the market",
	"pothole on the main road",
	"ok",  // filtered by the comment-length filter
	"...", // filtered
	"",
}

var states = []string{"เสร็จสิ้น", "กำลังดำเนินการ", "รอรับเรื่อง", "ส่งต่อ"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ticketsOut := flag.String("tickets-out", "data/bangkok_traffy.csv", "output path for the ticket fixture")
	geoOut := flag.String("geo-out", "data/thailand_geography.csv", "output path for the geography fixture")
	rows := flag.Int("rows", 200, "number of ticket rows to generate")
	flag.Parse()

	rng := rand.New(rand.NewSource(seed))

	if err := writeGeography(*geoOut); err != nil {
		return err
	}
	if err := writeTickets(*ticketsOut, *rows, rng); err != nil {
		return err
	}

	fmt.Printf("wrote %d tickets to %s and %d geography rows to %s\n",
		*rows, *ticketsOut, len(districts)+1, *geoOut)
	return nil
}

func writeGeography(path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"district", "province", "country", "latitude", "longitude"}); err != nil {
		return err
	}
	for _, d := range districts {
		row := []string{d.name, "Bangkok", "Thailand", formatFloat(d.lat), formatFloat(d.lon)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	// One malformed row the loader must drop and count.
	if err := w.Write([]string{"Broken District", "Bangkok", "Thailand", "not-a-number", "100.1"}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeTickets(path string, rows int, rng *rand.Rand) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"ticket_id", "type", "comment", "coords", "district", "timestamp", "last_activity", "state", "star"}
	if err := w.Write(header); err != nil {
		return err
	}

	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		d := districts[rng.Intn(len(districts))]
		ts := base.Add(time.Duration(rng.Intn(365*24)) * time.Hour)
		last := ts.Add(time.Duration(rng.Intn(30*24)) * time.Hour)

		row := []string{
			fmt.Sprintf("2023-%06d", i+1),
			ticketTypes[rng.Intn(len(ticketTypes))],
			comments[rng.Intn(len(comments))],
			coordsField(rng, d),
			districtField(rng, d),
			timestampField(rng, ts),
			timestampField(rng, last),
			states[rng.Intn(len(states))],
			starField(rng),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// coordsField emits a healthy bracketed pair most of the time, with the
// empty, truncated, and garbage variants seen in real exports.
func coordsField(rng *rand.Rand, d district) string {
	lat := d.lat + (rng.Float64()-0.5)*0.02
	lon := d.lon + (rng.Float64()-0.5)*0.02

	switch rng.Intn(10) {
	case 0:
		return ""
	case 1:
		return "undefined"
	case 2:
		return fmt.Sprintf("[%s]", formatFloat(lat)) // longitude missing
	default:
		return fmt.Sprintf("[%s, %s]", formatFloat(lat), formatFloat(lon))
	}
}

// districtField reproduces upstream inconsistency: stray whitespace, casing
// drift, and the occasional district absent from the reference.
func districtField(rng *rand.Rand, d district) string {
	switch rng.Intn(10) {
	case 0:
		return " " + d.name + " "
	case 1:
		return "Unknown Area"
	default:
		return d.name
	}
}

func timestampField(rng *rand.Rand, t time.Time) string {
	switch rng.Intn(10) {
	case 0:
		return "" // missing
	case 1:
		return t.Format("2006-01-02") // too short to parse
	case 2:
		return t.Format("2006-01-02 15:04:05") + ".123+07"
	default:
		return t.Format("2006-01-02 15:04:05") + "+07:00"
	}
}

func starField(rng *rand.Rand) string {
	if rng.Intn(5) == 0 {
		return ""
	}
	return fmt.Sprintf("%d", rng.Intn(6))
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

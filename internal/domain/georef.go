package domain

import "strings"

// GeoPoint is a reference-quality district centroid from the Thailand
// geography table.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// GeoIndex maps normalized district names to their reference coordinates.
// It is built once per run before any imputation and is read-only afterward,
// so concurrent lookups need no synchronization.
type GeoIndex struct {
	entries map[string]GeoPoint
}

// NewGeoIndex returns an empty index.
func NewGeoIndex() *GeoIndex {
	return &GeoIndex{entries: make(map[string]GeoPoint)}
}

// Add registers a district centroid under its normalized name. Later rows
// win when the source table repeats a district.
func (g *GeoIndex) Add(district string, point GeoPoint) {
	g.entries[NormalizeDistrict(district)] = point
}

// Lookup resolves a district name, tolerating the casing and surrounding
// whitespace differences between the ticket export and the reference table.
func (g *GeoIndex) Lookup(district string) (GeoPoint, bool) {
	point, ok := g.entries[NormalizeDistrict(district)]
	return point, ok
}

// Len reports the number of indexed districts.
func (g *GeoIndex) Len() int {
	return len(g.entries)
}

// NormalizeDistrict produces the join key shared by both data sources:
// surrounding whitespace removed and case folded. Thai script is unaffected
// by the fold; it matters for the Latin-script district spellings.
func NormalizeDistrict(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

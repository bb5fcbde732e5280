// Package domain models Bangkok Traffy Fondue civic-complaint tickets and
// the transforms that turn raw exports into analysis-ready records.
//
// # Data Source
//
// Tickets originate from the Traffy Fondue reporting platform. The raw CSV
// export is loosely typed: every column is free text, coordinates arrive as
// a bracketed string (e.g. "[13.75, 100.50]") that is frequently malformed
// or empty, and district names do not always match the spelling, casing, or
// whitespace of the Thailand geography reference table.
//
// # Coordinate Policy
//
// Coordinate extraction is deliberately permissive: after stripping square
// brackets and splitting on the first comma, each side contributes the first
// run of digits with an optional decimal point. Sign markers and any other
// characters are ignored, so negative coordinates are not supported. Bangkok
// sits well inside the positive quadrant and the upstream export has never
// produced a signed value, so widening the grammar would silently change
// historical output. See [ExtractCoordinates].
//
// Missing or unparseable coordinates are imputed per axis from the district
// centroid in the geography reference ([ImputeCoordinates]): a ticket may
// keep its own parsed latitude while taking a reference longitude. Tickets
// whose district has no reference entry and no parsable coordinate keep nil
// coordinates and are left for downstream consumers to filter or flag.
//
// # Timestamp Policy
//
// Timestamps are parsed from the leading 19 characters of the raw string
// ("2006-01-02 15:04:05"); timezone suffixes and fractional seconds beyond
// that prefix are discarded intentionally. See [ParseDateTime].
//
// Every per-field parse failure degrades to nil rather than an error, so a
// single malformed field never costs the whole record and a malformed
// record never costs the batch.
package domain

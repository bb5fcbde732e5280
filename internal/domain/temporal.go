package domain

import "time"

// dateTimeLayout covers the fixed-width prefix of upstream timestamps.
// Everything past character 19 (timezone offsets, fractional seconds) is
// dropped before parsing.
const dateTimeLayout = "2006-01-02 15:04:05"

// dateTimePrefixLen is the width of dateTimeLayout.
const dateTimePrefixLen = 19

// ParseDateTime parses the leading 19 characters of a raw timestamp string,
// returning nil when the prefix does not match the expected pattern. A parse
// failure is local to the field and never aborts the record.
func ParseDateTime(raw string) *time.Time {
	if len(raw) > dateTimePrefixLen {
		raw = raw[:dateTimePrefixLen]
	}
	t, err := time.Parse(dateTimeLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

package domain

import "time"

// RawTicket is one row of the Traffy CSV export. Every column is decoded as
// raw text; numeric and temporal fields need the custom parsing in this
// package, so no type inference happens at read time.
type RawTicket struct {
	TicketID     string `csv:"ticket_id"`
	Type         string `csv:"type"`
	Comment      string `csv:"comment"`
	Coords       string `csv:"coords"`
	District     string `csv:"district"`
	Timestamp    string `csv:"timestamp"`
	LastActivity string `csv:"last_activity"`
	State        string `csv:"state"`
	Star         string `csv:"star"`
}

// CleanTicket is the analysis-ready record produced by one transform call.
// Optional fields are pointers: nil means the value could not be resolved
// from either the ticket or the geography reference.
type CleanTicket struct {
	TicketID       string     `json:"ticket_id"`
	Type           string     `json:"type"`
	CleanComment   string     `json:"clean_comment"`
	FinalLatitude  *float64   `json:"final_latitude"`
	FinalLongitude *float64   `json:"final_longitude"`
	District       string     `json:"district"`
	TimestampDt    *time.Time `json:"timestamp_dt"`
	LastActivityDt *time.Time `json:"last_activity_dt"`
	State          string     `json:"state"`
	Star           string     `json:"star"`
}

// RecordFlags reports what degraded or was imputed while cleaning a single
// ticket. The pipeline maps these onto counters; they never carry errors.
type RecordFlags struct {
	// CommentFiltered marks a record whose normalized comment is too short
	// to be useful. The record is excluded from the output set, which is a
	// filter decision, not a failure.
	CommentFiltered bool

	// LatitudeImputed / LongitudeImputed mark axes filled from the
	// geography reference rather than the ticket's own coords string.
	LatitudeImputed  bool
	LongitudeImputed bool

	// CoordinatesMissing marks a record that ended up with at least one nil
	// axis: no parsable own value and no reference match.
	CoordinatesMissing bool

	// TimestampInvalid / LastActivityInvalid mark temporal fields whose
	// 19-character prefix did not parse.
	TimestampInvalid    bool
	LastActivityInvalid bool
}

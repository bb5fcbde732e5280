package domain

// CleanRawTicket runs the full per-record transform: coordinate extraction
// and imputation, comment normalization, and temporal feature derivation.
// It is a pure function over the ticket and the shared read-only geography
// index; records are independent, so callers may fan it out freely.
//
// The returned flags describe degradations and the comment-length filter
// decision. A flagged record is still a valid CleanTicket; excluding
// CommentFiltered records from the output set is the caller's job.
func CleanRawTicket(raw RawTicket, geo *GeoIndex) (CleanTicket, RecordFlags) {
	var flags RecordFlags

	parsed := ExtractCoordinates(raw.Coords)
	final := ImputeCoordinates(parsed, raw.District, geo)

	flags.LatitudeImputed = parsed.Latitude == nil && final.Latitude != nil
	flags.LongitudeImputed = parsed.Longitude == nil && final.Longitude != nil
	flags.CoordinatesMissing = final.Latitude == nil || final.Longitude == nil

	comment := NormalizeComment(raw.Comment)
	flags.CommentFiltered = CommentTooShort(comment)

	timestampDt := ParseDateTime(raw.Timestamp)
	lastActivityDt := ParseDateTime(raw.LastActivity)
	flags.TimestampInvalid = timestampDt == nil
	flags.LastActivityInvalid = lastActivityDt == nil

	return CleanTicket{
		TicketID:       raw.TicketID,
		Type:           raw.Type,
		CleanComment:   comment,
		FinalLatitude:  final.Latitude,
		FinalLongitude: final.Longitude,
		District:       raw.District,
		TimestampDt:    timestampDt,
		LastActivityDt: lastActivityDt,
		State:          raw.State,
		Star:           raw.Star,
	}, flags
}

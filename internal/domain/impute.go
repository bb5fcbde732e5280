package domain

// ImputeCoordinates coalesces each axis independently: the ticket's own
// parsed value wins, the district centroid fills the gap when the district
// matched the reference, and nil remains when neither source resolves.
// Coalescing a non-nil value with itself is a no-op, so re-running
// imputation on resolved coordinates changes nothing.
func ImputeCoordinates(parsed Coordinates, district string, geo *GeoIndex) Coordinates {
	reference, matched := geo.Lookup(district)
	if !matched {
		return parsed
	}

	out := parsed
	if out.Latitude == nil {
		lat := reference.Latitude
		out.Latitude = &lat
	}
	if out.Longitude == nil {
		lon := reference.Longitude
		out.Longitude = &lon
	}
	return out
}

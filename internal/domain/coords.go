package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// numericTokenRe grabs the first run of digits with an optional decimal
// point. Anything else on the side, including sign markers, is ignored;
// negative coordinates are therefore unsupported (see the package doc).
var numericTokenRe = regexp.MustCompile(`[0-9]+\.?[0-9]*`)

// Coordinates is the nullable result of parsing a raw coords string.
// A nil axis means no numeric token was found on that side.
type Coordinates struct {
	Latitude  *float64
	Longitude *float64
}

// ExtractCoordinates parses a loosely formatted coords string such as
// "[13.75, 100.50]" into a latitude/longitude pair. Square brackets are
// stripped, the string is split on the first comma, and each side yields
// the first numeric token it contains. Unparseable input always yields nil
// axes, never an error.
func ExtractCoordinates(raw string) Coordinates {
	cleaned := strings.NewReplacer("[", "", "]", "").Replace(raw)

	latPart, lonPart, hasComma := strings.Cut(cleaned, ",")

	coords := Coordinates{Latitude: extractNumericToken(latPart)}
	if hasComma {
		coords.Longitude = extractNumericToken(lonPart)
	}
	return coords
}

// extractNumericToken returns the first unsigned decimal token in s, or nil
// when s contains none.
func extractNumericToken(s string) *float64 {
	token := numericTokenRe.FindString(s)
	if token == "" {
		return nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil
	}
	return &v
}

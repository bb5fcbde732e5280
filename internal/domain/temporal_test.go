package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{
			name: "bare timestamp",
			raw:  "2023-05-01 12:30:00",
			want: timePtr(time.Date(2023, 5, 1, 12, 30, 0, 0, time.UTC)),
		},
		{
			name: "fractional seconds and offset discarded",
			raw:  "2023-05-01 12:30:00.123+07",
			want: timePtr(time.Date(2023, 5, 1, 12, 30, 0, 0, time.UTC)),
		},
		{
			name: "timezone suffix discarded",
			raw:  "2023-01-15 08:00:00+07:00",
			want: timePtr(time.Date(2023, 1, 15, 8, 0, 0, 0, time.UTC)),
		},
		{name: "not a date", raw: "not-a-date", want: nil},
		{name: "empty", raw: "", want: nil},
		{name: "prefix too short", raw: "2023-05-01", want: nil},
		{name: "garbage inside prefix", raw: "2023-05-XX 12:30:00+07", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateTime(tt.raw)

			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, got)
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

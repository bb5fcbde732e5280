package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeComment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"control characters become spaces", "a\n\tb   c", "a b c"},
		{"carriage returns", "line1\r\nline2", "line1 line2"},
		{"trims surrounding whitespace", "  test issue  \n", "test issue"},
		{"collapses interior runs", "too    many     spaces", "too many spaces"},
		{"thai text preserved", " น้ำท่วม\nถนนชำรุด ", "น้ำท่วม ถนนชำรุด"},
		{"empty", "", ""},
		{"whitespace only", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeComment(tt.in))
		})
	}
}

func TestCommentTooShort(t *testing.T) {
	tests := []struct {
		name     string
		comment  string
		filtered bool
	}{
		{"empty", "", true},
		{"two characters", "ok", true},
		{"exactly three", "abc", true},
		{"four characters retained", "okay", false},
		{"thai counted in runes not bytes", "น้ำ", true}, // 3 runes, 9 bytes
		{"thai above threshold", "น้ำท่วม", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.filtered, CommentTooShort(tt.comment))
		})
	}
}

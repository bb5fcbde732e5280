package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minCommentLength is the exclusive lower bound on normalized comment
// length. Comments at or below it are treated as noise and filtered.
const minCommentLength = 3

var (
	controlRe    = regexp.MustCompile(`[\n\r\t]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeComment flattens newlines, carriage returns, and tabs to spaces,
// collapses whitespace runs, and trims the result.
func NormalizeComment(comment string) string {
	s := controlRe.ReplaceAllString(comment, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CommentTooShort reports whether a normalized comment should be filtered
// from the output set. Length is counted in runes so Thai text is not
// penalized for its byte width.
func CommentTooShort(normalized string) bool {
	return utf8.RuneCountInString(normalized) <= minCommentLength
}

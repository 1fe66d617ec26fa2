package util

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var ErrNoDigits = errors.New("no digits in input")

// CleanText collapses runs of whitespace (including non-breaking spaces from
// rendered markup) into single spaces and trims the result.
func CleanText(input string) string {
	var result string
	result = input

	result = strings.ReplaceAll(result, " ", " ")
	result = strings.ReplaceAll(result, "&nbsp;", " ")
	result = strings.ReplaceAll(result, "&#160;", " ")

	result = strings.Join(strings.Fields(result), " ")

	return result
}

// DigitValue extracts the digit-only substring of input as an integer,
// e.g. "2 500 zł" -> 2500. Returns ErrNoDigits when nothing numeric is left.
func DigitValue(input string) (int, error) {
	var b strings.Builder
	for _, r := range input {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return 0, ErrNoDigits
	}

	return strconv.Atoi(b.String())
}

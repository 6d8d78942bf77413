package prover

import (
	"strconv"
	"strings"
	"time"

	dErrors "selo/pkg/domain-errors"
)

// encodeCPF strips display punctuation from a CPF ("222.222.222-22") and
// parses the remaining digits as an unsigned integer, the encoding the
// access-list circuit expects.
func encodeCPF(display string) (uint64, error) {
	var digits strings.Builder
	for _, c := range display {
		switch {
		case c >= '0' && c <= '9':
			digits.WriteRune(c)
		case c == '.' || c == '-' || c == ' ':
			// display punctuation
		default:
			return 0, dErrors.New(dErrors.CodeInvalidInput, "CPF contains unexpected characters")
		}
	}
	if digits.Len() == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "CPF has no digits")
	}
	n, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInvalidInput, "CPF does not fit a uint64")
	}
	return n, nil
}

// parseDisplayDate parses the document's DD/MM/YYYY display format.
func parseDisplayDate(display string) (time.Time, error) {
	t, err := time.Parse("02/01/2006", display)
	if err != nil {
		return time.Time{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "date is not in DD/MM/YYYY format")
	}
	return t, nil
}

// encodeDate turns a time into the 8-digit YYYYMMDD integer the date circuits
// consume.
func encodeDate(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// encodeCategory lowercases the category letters ("AB" -> ["a","b"]) for the
// category circuit's character comparison.
func encodeCategory(display string) []string {
	lower := strings.ToLower(strings.TrimSpace(display))
	letters := make([]string, 0, len(lower))
	for _, c := range lower {
		if c >= 'a' && c <= 'z' {
			letters = append(letters, string(c))
		}
	}
	return letters
}

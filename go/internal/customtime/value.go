package customtime

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseValue converts a stored "minutes:seconds" value into seconds. A bare
// "minutes" value, as written by older tools, is read as whole minutes.
func ParseValue(v string) (int, error) {
	v = strings.TrimSpace(v)
	minPart, secPart, hasSecs := strings.Cut(v, ":")

	mins, err := strconv.Atoi(strings.TrimSpace(minPart))
	if err != nil || mins < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, v)
	}
	secs := 0
	if hasSecs {
		secs, err = strconv.Atoi(strings.TrimSpace(secPart))
		if err != nil || secs < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, v)
		}
	}
	return mins*60 + secs, nil
}

// FormatMinutes renders whole minutes in the stored "minutes:seconds" form.
func FormatMinutes(mins int) string {
	return fmt.Sprintf("%d:00", mins)
}

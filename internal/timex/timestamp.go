package timex

import (
	"fmt"
	"time"
)

// TimestampLayout is the row representation of profile timestamps.
// Six fractional digits keep the round trip lossless to the microsecond.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts the row layout as well as the second-precision and
// RFC 3339 forms some drivers hand back. The result is always UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{TimestampLayout, "2006-01-02 15:04:05.999999999", time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// TruncateMicro drops sub-microsecond precision, matching what the
// database keeps.
func TruncateMicro(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

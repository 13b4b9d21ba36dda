// Package filetime decodes vendor timestamp representations into time.Time
// values. Containers expose timestamps either as a 64-bit FILETIME tick count
// (100ns intervals since 1601-01-01 UTC), as two hex-encoded 32-bit halves of
// that count joined by a colon, or occasionally as a free-form date string.
package filetime

import (
	"strconv"
	"strings"
	"time"
)

// Seconds between the FILETIME epoch (1601-01-01) and the Unix epoch.
const epochDeltaSeconds = 11644473600

// ticksPerSecond is the FILETIME resolution: 100ns intervals.
const ticksPerSecond = 10000000

// Decoded tick counts must land inside this year window; values outside it
// are treated as corrupt or sentinel data, not real timestamps.
const (
	minValidYear = 1990
	maxValidYear = 2050
)

// Literal property values treated as absent without attempting a decode.
var absentLiterals = map[string]struct{}{
	"":              {},
	"Not specified": {},
	"null":          {},
}

// freeformLayouts are tried in order for date strings that are neither split
// nor decimal tick counts.
var freeformLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02",
	time.ANSIC,
	time.UnixDate,
}

// Decode converts a raw timestamp string into a time.Time. The second return
// value is false when the input is absent or undecodable; decode failures
// never propagate as errors.
//
// Accepted forms, tried in order:
//  1. split FILETIME: two hex 32-bit halves joined by ':', each optionally
//     0x-prefixed (e.g. "0x01DC08B6:0x1A436C39")
//  2. a free-form date string matching one of the known layouts
//  3. a decimal 64-bit FILETIME tick count
func Decode(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if _, absent := absentLiterals[raw]; absent {
		return time.Time{}, false
	}

	if high, low, ok := splitHexParts(raw); ok {
		return fromTicks(high<<32 | low)
	}

	for _, layout := range freeformLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return validated(t)
		}
	}

	if ticks, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return fromTicks(ticks)
	}

	return time.Time{}, false
}

// splitHexParts parses the "HIGH:LOW" split representation. Each half must be
// at most 8 hex digits after stripping an optional 0x prefix.
func splitHexParts(raw string) (high, low uint64, ok bool) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	values := make([]uint64, 2)
	for i, part := range parts {
		part = strings.TrimPrefix(strings.TrimPrefix(part, "0x"), "0X")
		if part == "" || len(part) > 8 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return 0, 0, false
		}
		values[i] = v
	}

	return values[0], values[1], true
}

// FromParts reconstructs a timestamp from separately resolved HIGHPART and
// LOWPART property values.
func FromParts(highRaw, lowRaw string) (time.Time, bool) {
	high, ok := parseHexPart(highRaw)
	if !ok {
		return time.Time{}, false
	}
	low, ok := parseHexPart(lowRaw)
	if !ok {
		return time.Time{}, false
	}
	return fromTicks(high<<32 | low)
}

func parseHexPart(raw string) (uint64, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")
	if raw == "" || len(raw) > 8 {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}

// fromTicks converts a 64-bit tick count to a time.Time. The count must lie
// strictly between 0 and MaxInt64.
func fromTicks(ticks uint64) (time.Time, bool) {
	if ticks == 0 || ticks >= 1<<63-1 {
		return time.Time{}, false
	}

	secs := int64(ticks/ticksPerSecond) - epochDeltaSeconds
	nanos := int64(ticks%ticksPerSecond) * 100

	return validated(time.Unix(secs, nanos).UTC())
}

// validated applies the sanity window: years outside [1990, 2050] are
// rejected as corrupt rather than surfaced as implausible dates.
func validated(t time.Time) (time.Time, bool) {
	year := t.Year()
	if year < minValidYear || year > maxValidYear {
		return time.Time{}, false
	}
	return t, true
}

package filetime

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSplitForm(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expectOK bool
	}{
		{
			name:     "valid split filetime",
			raw:      "0x01DC08B6:0x1A436C39",
			expectOK: true,
		},
		{
			name:     "valid split without prefix",
			raw:      "01DC08B6:1A436C39",
			expectOK: true,
		},
		{
			name:     "overflow sentinel",
			raw:      "0xFFFFFFFF:0xFFFFFFFF",
			expectOK: false,
		},
		{
			name:     "zero ticks",
			raw:      "0x00000000:0x00000000",
			expectOK: false,
		},
		{
			name:     "part too long",
			raw:      "0x0000000001:0x1A436C39",
			expectOK: false,
		},
		{
			name:     "malformed hex",
			raw:      "0x01DCZZZZ:0x1A436C39",
			expectOK: false,
		},
		{
			name:     "missing half",
			raw:      "0x01DC08B6:",
			expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, ok := Decode(tt.raw)

			if tt.expectOK {
				require.True(t, ok)
				assert.GreaterOrEqual(t, decoded.Year(), minValidYear)
				assert.LessOrEqual(t, decoded.Year(), maxValidYear)
			} else {
				assert.False(t, ok)
			}
		})
	}
}

func TestDecodeIsIdempotent(t *testing.T) {
	first, ok1 := Decode("0x01DC08B6:0x1A436C39")
	second, ok2 := Decode("0x01DC08B6:0x1A436C39")

	require.True(t, ok1)
	require.True(t, ok2)
	assert.True(t, first.Equal(second))
}

func TestDecodeAbsentLiterals(t *testing.T) {
	for _, raw := range []string{"", "Not specified", "null", "   "} {
		_, ok := Decode(raw)
		assert.False(t, ok, "literal %q should be absent", raw)
	}
}

func TestDecodeDecimalTicks(t *testing.T) {
	ref := time.Date(2021, 3, 15, 10, 30, 0, 0, time.UTC)
	ticks := uint64(ref.Unix()+epochDeltaSeconds) * ticksPerSecond

	decoded, ok := Decode(fmt.Sprintf("%d", ticks))

	require.True(t, ok)
	assert.True(t, decoded.Equal(ref))
}

func TestDecodeFreeformDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expectOK bool
		year     int
	}{
		{
			name:     "RFC3339",
			raw:      "2019-06-01T12:00:00Z",
			expectOK: true,
			year:     2019,
		},
		{
			name:     "space separated",
			raw:      "2019-06-01 12:00:00",
			expectOK: true,
			year:     2019,
		},
		{
			name:     "date only",
			raw:      "2019-06-01",
			expectOK: true,
			year:     2019,
		},
		{
			name:     "year below window",
			raw:      "1970-01-01",
			expectOK: false,
		},
		{
			name:     "garbage",
			raw:      "yesterday",
			expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, ok := Decode(tt.raw)

			if tt.expectOK {
				require.True(t, ok)
				assert.Equal(t, tt.year, decoded.Year())
			} else {
				assert.False(t, ok)
			}
		})
	}
}

func TestDecodeYearWindow(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		expectOK bool
	}{
		{name: "below window", year: 1989, expectOK: false},
		{name: "window start", year: 1990, expectOK: true},
		{name: "window end", year: 2050, expectOK: true},
		{name: "above window", year: 2051, expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := time.Date(tt.year, 6, 1, 0, 0, 0, 0, time.UTC)
			ticks := uint64(ref.Unix()+epochDeltaSeconds) * ticksPerSecond

			_, ok := Decode(fmt.Sprintf("%d", ticks))
			assert.Equal(t, tt.expectOK, ok)
		})
	}
}

func TestFromParts(t *testing.T) {
	ref := time.Date(2021, 7, 4, 8, 0, 0, 0, time.UTC)
	ticks := uint64(ref.Unix()+epochDeltaSeconds) * ticksPerSecond
	high := fmt.Sprintf("0x%08X", ticks>>32)
	low := fmt.Sprintf("0x%08X", ticks&0xFFFFFFFF)

	decoded, ok := FromParts(high, low)

	require.True(t, ok)
	assert.True(t, decoded.Equal(ref))

	_, ok = FromParts(high, "")
	assert.False(t, ok)

	_, ok = FromParts("notahex", low)
	assert.False(t, ok)
}

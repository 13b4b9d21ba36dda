package types

import (
	"time"
)

// BytesPerMB is the divisor used to derive SizeMB from SizeBytes.
const BytesPerMB = 1024 * 1024

// TimestampDisplayLayout is the fixed display convention for resolved
// timestamps (dd/MM/yyyy HH:mm:ss).
const TimestampDisplayLayout = "02/01/2006 15:04:05"

// TimestampAbsent is the literal emitted for a timestamp that could not be
// resolved or decoded.
const TimestampAbsent = "Not specified"

// ImageMetadata is the normalized metadata record for one image inside a
// container. It is constructed fresh per request and never mutated after
// being returned to the caller. String fields are empty when the underlying
// property could not be resolved; timestamps are nil when absent.
type ImageMetadata struct {
	Index       int    `json:"index" yaml:"index"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// SizeMB is always SizeBytes / BytesPerMB when SizeBytes is known;
	// it is never set independently.
	SizeBytes int64 `json:"sizeBytes" yaml:"sizeBytes"`
	SizeMB    int64 `json:"sizeMB" yaml:"sizeMB"`

	// SizeApproximated is true only when SizeBytes was derived from the
	// opt-in container-bytes/image-count fallback rather than resolved.
	SizeApproximated bool `json:"sizeApproximated,omitempty" yaml:"sizeApproximated,omitempty"`

	Bootable bool `json:"bootable" yaml:"bootable"`

	Architecture     string `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	HAL              string `json:"hal,omitempty" yaml:"hal,omitempty"`
	Version          string `json:"version,omitempty" yaml:"version,omitempty"`
	ServicePackBuild string `json:"servicePackBuild,omitempty" yaml:"servicePackBuild,omitempty"`
	ServicePackLevel int    `json:"servicePackLevel" yaml:"servicePackLevel"`
	InstallationType string `json:"installationType,omitempty" yaml:"installationType,omitempty"`
	ProductType      string `json:"productType,omitempty" yaml:"productType,omitempty"`
	ProductSuite     string `json:"productSuite,omitempty" yaml:"productSuite,omitempty"`
	SystemRoot       string `json:"systemRoot,omitempty" yaml:"systemRoot,omitempty"`
	Edition          string `json:"edition,omitempty" yaml:"edition,omitempty"`
	Languages        string `json:"languages,omitempty" yaml:"languages,omitempty"`

	DirectoryCount int64 `json:"directoryCount" yaml:"directoryCount"`
	FileCount      int64 `json:"fileCount" yaml:"fileCount"`

	Created  *time.Time `json:"-" yaml:"-"`
	Modified *time.Time `json:"-" yaml:"-"`

	// CreatedDisplay/ModifiedDisplay carry the serialized form of the
	// timestamps (TimestampDisplayLayout, or TimestampAbsent).
	CreatedDisplay  string `json:"created" yaml:"created"`
	ModifiedDisplay string `json:"modified" yaml:"modified"`
}

// FormatTimestamp renders a resolved timestamp using the display convention,
// or the absent literal when t is nil.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return TimestampAbsent
	}
	return t.Format(TimestampDisplayLayout)
}

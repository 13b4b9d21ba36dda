package interfaces

import (
	"github.com/deploymenttheory/go-wim/internal/types"
)

// ContainerReader defines low-level read access to an opened image container.
// Implementations are externally provided bindings (e.g. a wimlib adapter);
// the metadata engine treats them as synchronous black-box calls.
type ContainerReader interface {
	// Path returns the filesystem path the container was opened from.
	// It identifies the container for cache-scoping purposes.
	Path() string

	// ImageCount returns the number of images in the container.
	ImageCount() int

	// BootIndex returns the 1-based index of the image marked bootable,
	// or 0 when no image is bootable.
	BootIndex() int

	// ImageName returns the display name of the image, or "" when unset.
	ImageName(imageIndex int) string

	// ImageDescription returns the image description, or "" when unset.
	ImageDescription(imageIndex int) string

	// Property looks up a /-delimited, case-sensitive property path for the
	// given 1-based image index. An absent path yields ("", false), never an
	// error, for a well-formed handle.
	Property(imageIndex int, path string) (string, bool)

	// RawXML returns the image's embedded XML metadata blob, or ("", false)
	// when the container carries none.
	RawXML(imageIndex int) (string, bool)

	// ContainerBytes returns the total size of the container file in bytes,
	// or 0 when unknown. Used only by the opt-in size-approximation fallback.
	ContainerBytes() int64

	// Close releases the underlying handle.
	Close() error
}

// MetadataResolver is the produced interface of the metadata engine.
type MetadataResolver interface {
	// ResolveImage builds the full normalized metadata record for one image.
	// It fails only on container-handle-level errors, never on individual
	// field absence.
	ResolveImage(reader ContainerReader, imageIndex int) (*types.ImageMetadata, error)

	// ResolveAllImages resolves every image in the container, in index order
	// from 1 to ImageCount.
	ResolveAllImages(reader ContainerReader) ([]*types.ImageMetadata, error)
}

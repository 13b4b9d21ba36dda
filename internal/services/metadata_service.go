package services

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-wim/internal/interfaces"
	"github.com/deploymenttheory/go-wim/internal/parsers/filetime"
	"github.com/deploymenttheory/go-wim/internal/types"
)

// Options configures per-request aggregation policy.
type Options struct {
	// ApproximateSize enables the container-bytes/image-count fallback for
	// images whose TOTALBYTES property is absent. The approximation is
	// logged and flagged on the record; it is never applied silently.
	ApproximateSize bool
}

// MetadataService is the top-level entry point: it assembles full metadata
// records from an open container. Every top-level call starts from a fresh
// cache session, so no resolution state survives across requests.
type MetadataService struct {
	logger *slog.Logger
	opts   Options
}

// NewMetadataService creates a metadata service. A nil logger falls back to
// slog.Default().
func NewMetadataService(logger *slog.Logger, opts Options) *MetadataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataService{logger: logger, opts: opts}
}

// compile-time interface check
var _ interfaces.MetadataResolver = (*MetadataService)(nil)

// ResolveImage builds the normalized metadata record for one image. It fails
// only when the image index is outside the container's range; individual
// field absence degrades each field independently.
func (ms *MetadataService) ResolveImage(reader interfaces.ContainerReader, imageIndex int) (*types.ImageMetadata, error) {
	session, err := ms.newSession(reader)
	if err != nil {
		return nil, err
	}

	if imageIndex < 1 || imageIndex > reader.ImageCount() {
		return nil, types.NewContainerError(reader.Path(),
			fmt.Errorf("image index %d out of range [1, %d]", imageIndex, reader.ImageCount()))
	}

	return ms.aggregate(reader, session, imageIndex), nil
}

// ResolveAllImages resolves every image in index order, sharing one cache
// session across the whole request.
func (ms *MetadataService) ResolveAllImages(reader interfaces.ContainerReader) ([]*types.ImageMetadata, error) {
	session, err := ms.newSession(reader)
	if err != nil {
		return nil, err
	}

	count := reader.ImageCount()
	records := make([]*types.ImageMetadata, 0, count)
	for index := 1; index <= count; index++ {
		records = append(records, ms.aggregate(reader, session, index))
	}
	return records, nil
}

// newSession starts a fresh resolution session: a new cache bound to the
// container identity and a session ID for log correlation.
func (ms *MetadataService) newSession(reader interfaces.ContainerReader) (*FieldResolver, error) {
	if reader == nil {
		return nil, types.NewContainerError("", fmt.Errorf("container reader is nil: %w", types.ErrInvalidFormat))
	}

	logger := ms.logger.With("session", uuid.NewString(), "container", reader.Path())
	return NewFieldResolver(reader, NewPropertyCache(), logger), nil
}

// aggregate resolves every logical field for one image and assembles the
// record. No field failure is fatal; each degrades to absent/zero/false.
func (ms *MetadataService) aggregate(reader interfaces.ContainerReader, session *FieldResolver, imageIndex int) *types.ImageMetadata {
	record := &types.ImageMetadata{
		Index:       imageIndex,
		Name:        reader.ImageName(imageIndex),
		Description: reader.ImageDescription(imageIndex),
	}

	record.Architecture = ms.stringField(session, imageIndex, types.FieldArchitecture)
	record.HAL = ms.stringField(session, imageIndex, types.FieldHAL)
	record.Version = ms.stringField(session, imageIndex, types.FieldVersion)
	record.ServicePackBuild = ms.stringField(session, imageIndex, types.FieldServicePackBuild)
	record.ServicePackLevel = ms.intField(session, imageIndex, types.FieldServicePackLevel)
	record.InstallationType = ms.stringField(session, imageIndex, types.FieldInstallationType)
	record.ProductType = ms.stringField(session, imageIndex, types.FieldProductType)
	record.ProductSuite = ms.stringField(session, imageIndex, types.FieldProductSuite)
	record.SystemRoot = ms.stringField(session, imageIndex, types.FieldSystemRoot)
	record.Edition = ms.stringField(session, imageIndex, types.FieldEdition)
	record.Languages = ms.stringField(session, imageIndex, types.FieldLanguages)

	record.DirectoryCount = ms.countField(session, imageIndex, types.FieldDirectoryCount)
	record.FileCount = ms.countField(session, imageIndex, types.FieldFileCount)

	ms.applySize(reader, session, imageIndex, record)

	record.Created = ms.timeField(session, imageIndex, types.FieldCreationTime)
	record.Modified = ms.timeField(session, imageIndex, types.FieldModificationTime)
	record.CreatedDisplay = types.FormatTimestamp(record.Created)
	record.ModifiedDisplay = types.FormatTimestamp(record.Modified)

	record.Bootable = ms.bootable(reader, session, imageIndex)

	return record
}

func (ms *MetadataService) stringField(session *FieldResolver, imageIndex int, field types.Field) string {
	value, _ := session.ResolveField(imageIndex, field)
	return value
}

// countField parses an integer property, defaulting to zero on absence or a
// malformed value.
func (ms *MetadataService) countField(session *FieldResolver, imageIndex int, field types.Field) int64 {
	raw, ok := session.ResolveField(imageIndex, field)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		ms.logger.Debug("count parse failed", "field", string(field), "image", imageIndex, "raw", raw)
		return 0
	}
	return n
}

func (ms *MetadataService) intField(session *FieldResolver, imageIndex int, field types.Field) int {
	return int(ms.countField(session, imageIndex, field))
}

func (ms *MetadataService) timeField(session *FieldResolver, imageIndex int, field types.Field) *time.Time {
	raw, ok := session.ResolveField(imageIndex, field)
	if !ok {
		return nil
	}
	t, ok := filetime.Decode(raw)
	if !ok {
		return nil
	}
	return &t
}

// applySize sets SizeBytes/SizeMB from TOTALBYTES, falling back to the opt-in
// approximation (container bytes over image count) when enabled. The
// approximation is logged and flagged, never silent.
func (ms *MetadataService) applySize(reader interfaces.ContainerReader, session *FieldResolver, imageIndex int, record *types.ImageMetadata) {
	if raw, ok := session.ResolveField(imageIndex, types.FieldTotalBytes); ok {
		if bytes, err := strconv.ParseInt(raw, 10, 64); err == nil && bytes >= 0 {
			record.SizeBytes = bytes
			record.SizeMB = bytes / types.BytesPerMB
			return
		}
		ms.logger.Debug("size parse failed", "image", imageIndex, "raw", raw)
	}

	if !ms.opts.ApproximateSize {
		return
	}

	count := reader.ImageCount()
	total := reader.ContainerBytes()
	if count <= 0 || total <= 0 {
		return
	}

	record.SizeBytes = total / int64(count)
	record.SizeMB = record.SizeBytes / types.BytesPerMB
	record.SizeApproximated = true
	ms.logger.Warn("image size approximated from container size",
		"image", imageIndex, "containerBytes", total, "imageCount", count)
}

// bootable resolves the boot flag: a boot-indicator property equal to "Yes"
// (case-insensitive) wins; otherwise the container's boot index decides.
func (ms *MetadataService) bootable(reader interfaces.ContainerReader, session *FieldResolver, imageIndex int) bool {
	if raw, ok := session.ResolveField(imageIndex, types.FieldBootable); ok {
		return strings.EqualFold(raw, "yes")
	}
	return reader.BootIndex() == imageIndex
}

package services

import (
	"log/slog"
	"strings"

	"github.com/deploymenttheory/go-wim/internal/interfaces"
	"github.com/deploymenttheory/go-wim/internal/parsers/arch"
	"github.com/deploymenttheory/go-wim/internal/parsers/filetime"
	"github.com/deploymenttheory/go-wim/internal/parsers/wimxml"
	"github.com/deploymenttheory/go-wim/internal/types"
)

// FieldResolver orchestrates the resolution of logical fields for one
// aggregation session: direct candidate paths first, then the composed form
// when the spec declares one, then the embedded-XML fallback, then the
// decode/normalize step. Results, including confirmed absences, go through
// the session's PropertyCache so a field is resolved at most once per image.
type FieldResolver struct {
	reader   interfaces.ContainerReader
	resolver *PropertyResolver
	cache    *PropertyCache
	logger   *slog.Logger

	// extracted caches the parsed XML blob per image; the blob is fetched
	// once per image, not once per field.
	extracted map[int]*wimxml.Extracted
}

// NewFieldResolver creates a resolver session for one open container. The
// cache is bound to the reader's container identity, which invalidates any
// entries left over from a different container.
func NewFieldResolver(reader interfaces.ContainerReader, cache *PropertyCache, logger *slog.Logger) *FieldResolver {
	if logger == nil {
		logger = slog.Default()
	}
	cache.BindContainer(reader.Path())

	return &FieldResolver{
		reader:    reader,
		resolver:  NewPropertyResolver(reader),
		cache:     cache,
		logger:    logger,
		extracted: make(map[int]*wimxml.Extracted),
	}
}

// ResolveField resolves one logical field for one image, consulting the cache
// first. A resolution miss is not an error; it is cached as a confirmed
// absence and reported as ("", false).
func (fr *FieldResolver) ResolveField(imageIndex int, field types.Field) (string, bool) {
	if value, queried, resolved := fr.cache.Get(imageIndex, field); queried {
		return value, resolved
	}

	spec, known := fieldSpecs[field]
	if !known {
		fr.cache.Set(imageIndex, field, "", false)
		return "", false
	}

	value, ok := fr.resolveSpec(imageIndex, spec)
	if ok && spec.suffix != "" {
		value += spec.suffix
	}
	if !ok {
		fr.logger.Debug("field unresolved", "field", string(field), "image", imageIndex)
	}

	fr.cache.Set(imageIndex, field, value, ok)
	return value, ok
}

func (fr *FieldResolver) resolveSpec(imageIndex int, spec fieldSpec) (string, bool) {
	raw, ok := fr.resolver.Resolve(imageIndex, spec.paths)

	if !ok && spec.compose != nil {
		raw, ok = fr.composeVersion(imageIndex, spec.compose)
	}

	if !ok && spec.timeParts {
		raw, ok = fr.composeTimeParts(imageIndex, spec.paths)
	}

	if !ok && spec.xmlTag != "" {
		raw, ok = fr.xmlValue(imageIndex, spec.xmlTag)
	}

	if !ok {
		return "", false
	}

	return fr.applyDecode(spec, raw)
}

// composeVersion assembles MAJOR.MINOR(.BUILD) from sub-paths of each base.
// The result is present only when both MAJOR and MINOR resolve under the same
// base.
func (fr *FieldResolver) composeVersion(imageIndex int, rule *composeRule) (string, bool) {
	for _, base := range rule.bases {
		major, okMajor := fr.resolver.Resolve(imageIndex, []string{base + "/MAJOR"})
		minor, okMinor := fr.resolver.Resolve(imageIndex, []string{base + "/MINOR"})
		if !okMajor || !okMinor {
			continue
		}

		version := major + "." + minor
		if build, okBuild := fr.resolver.Resolve(imageIndex, []string{base + "/BUILD"}); okBuild {
			version += "." + build
		}
		return version, true
	}
	return "", false
}

// composeTimeParts tries the /HIGHPART + /LOWPART split form for each direct
// timestamp path. Both halves must be present; the joined form feeds the
// regular split-FILETIME decode.
func (fr *FieldResolver) composeTimeParts(imageIndex int, paths []string) (string, bool) {
	for _, base := range paths {
		high, okHigh := fr.resolver.Resolve(imageIndex, []string{base + "/HIGHPART"})
		low, okLow := fr.resolver.Resolve(imageIndex, []string{base + "/LOWPART"})
		if okHigh && okLow {
			return high + ":" + low, true
		}
	}
	return "", false
}

// xmlValue fetches and parses the image's raw XML blob on first use, then
// serves extracted tags from the per-image cache.
func (fr *FieldResolver) xmlValue(imageIndex int, tag string) (string, bool) {
	extracted, fetched := fr.extracted[imageIndex]
	if !fetched {
		blob, _ := fr.reader.RawXML(imageIndex)
		extracted = wimxml.Extract(blob)
		fr.extracted[imageIndex] = extracted
	}
	return extracted.Value(tag)
}

// applyDecode runs the spec's decode/normalize step. A normalize miss keeps
// the raw value; a timestamp decode failure degrades the field to absent.
func (fr *FieldResolver) applyDecode(spec fieldSpec, raw string) (string, bool) {
	switch spec.decode {
	case decodeArch:
		if label, ok := arch.Normalize(raw); ok {
			return label, true
		}
		return raw, true
	case decodeFiletime:
		if _, ok := filetime.Decode(raw); !ok {
			fr.logger.Debug("timestamp decode failed", "field", string(spec.field), "raw", raw)
			return "", false
		}
		return raw, true
	default:
		return strings.TrimSpace(raw), true
	}
}

// Package wimxml extracts metadata fields from the embedded XML blob a
// container carries per image. The blob is frequently truncated or otherwise
// malformed, so extraction is structural pattern matching over the raw text:
// a tag that cannot be matched degrades to an absent field without aborting
// extraction of the remaining tags.
package wimxml

import (
	"regexp"
	"strings"
)

// Tag names the extractor knows how to locate in a blob.
const (
	TagArch             = "ARCH"
	TagProductVersion   = "PRODUCTVERSION"
	TagEditionID        = "EDITIONID"
	TagInstallationType = "INSTALLATIONTYPE"
	TagProductType      = "PRODUCTTYPE"
	TagSystemRoot       = "SYSTEMROOT"
	TagServicingData    = "SERVICINGDATA"
	TagLanguage         = "LANGUAGE"
)

// elementTags are extracted from the inner text of the first matching
// open/close pair. SERVICINGDATA is special-cased: its value comes from the
// GDRORBUILD attribute instead.
var elementTags = []string{
	TagArch,
	TagProductVersion,
	TagEditionID,
	TagInstallationType,
	TagProductType,
	TagSystemRoot,
	TagLanguage,
}

var (
	elementPatterns = make(map[string]*regexp.Regexp, len(elementTags))
	servicingData   = regexp.MustCompile(`(?is)<SERVICINGDATA\b[^>]*\bGDRORBUILD\s*=\s*"([^"]*)"`)
)

func init() {
	for _, tag := range elementTags {
		elementPatterns[tag] = regexp.MustCompile(`(?is)<` + tag + `(?:\s[^>]*)?>(.*?)</` + tag + `\s*>`)
	}
}

// Extracted holds the fields recovered from one blob. Values are raw tag
// text; the ARCH code is not normalized here.
type Extracted struct {
	values map[string]string
}

// Value returns the extracted text for a tag, reporting whether the tag was
// present and non-blank in the blob.
func (e *Extracted) Value(tag string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.values[tag]
	return v, ok
}

// Extract scans a raw XML blob for the known tags. Malformed or partial XML
// never fails the whole extraction; each tag independently resolves or stays
// absent.
func Extract(blob string) *Extracted {
	out := &Extracted{values: make(map[string]string)}
	if strings.TrimSpace(blob) == "" {
		return out
	}

	for tag, pattern := range elementPatterns {
		m := pattern.FindStringSubmatch(blob)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			out.values[tag] = v
		}
	}

	if m := servicingData.FindStringSubmatch(blob); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			out.values[TagServicingData] = v
		}
	}

	return out
}

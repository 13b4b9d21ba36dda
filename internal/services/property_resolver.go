package services

import (
	"strings"

	"github.com/deploymenttheory/go-wim/internal/interfaces"
)

// PropertyResolver tries ordered candidate property paths against a container
// reader. A missing path is an expected, silent outcome; the first present,
// non-blank value wins and later paths are never consulted.
type PropertyResolver struct {
	reader interfaces.ContainerReader
}

// NewPropertyResolver creates a resolver bound to one open container reader.
func NewPropertyResolver(reader interfaces.ContainerReader) *PropertyResolver {
	return &PropertyResolver{reader: reader}
}

// Resolve returns the value of the first candidate path that yields a
// non-blank result, or ("", false) when every candidate is absent.
func (pr *PropertyResolver) Resolve(imageIndex int, candidatePaths []string) (string, bool) {
	for _, path := range candidatePaths {
		value, ok := pr.reader.Property(imageIndex, path)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value != "" {
			return value, true
		}
	}
	return "", false
}

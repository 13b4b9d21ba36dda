package services

import (
	"fmt"

	"github.com/deploymenttheory/go-wim/internal/interfaces"
)

// mockContainerReader is an in-memory ContainerReader that records property
// and XML query counts so tests can assert cache behavior.
type mockContainerReader struct {
	path           string
	imageCount     int
	bootIndex      int
	containerBytes int64
	names          map[int]string
	descriptions   map[int]string
	properties     map[int]map[string]string
	xml            map[int]string

	propertyCalls map[string]int
	xmlCalls      int
}

var _ interfaces.ContainerReader = (*mockContainerReader)(nil)

func newMockContainerReader(path string, imageCount int) *mockContainerReader {
	return &mockContainerReader{
		path:          path,
		imageCount:    imageCount,
		names:         make(map[int]string),
		descriptions:  make(map[int]string),
		properties:    make(map[int]map[string]string),
		xml:           make(map[int]string),
		propertyCalls: make(map[string]int),
	}
}

func (m *mockContainerReader) setProperty(imageIndex int, path, value string) {
	if m.properties[imageIndex] == nil {
		m.properties[imageIndex] = make(map[string]string)
	}
	m.properties[imageIndex][path] = value
}

func (m *mockContainerReader) callCount(imageIndex int, path string) int {
	return m.propertyCalls[fmt.Sprintf("%d|%s", imageIndex, path)]
}

func (m *mockContainerReader) Path() string { return m.path }

func (m *mockContainerReader) ImageCount() int { return m.imageCount }

func (m *mockContainerReader) BootIndex() int { return m.bootIndex }

func (m *mockContainerReader) ImageName(imageIndex int) string {
	return m.names[imageIndex]
}

func (m *mockContainerReader) ImageDescription(imageIndex int) string {
	return m.descriptions[imageIndex]
}

func (m *mockContainerReader) Property(imageIndex int, path string) (string, bool) {
	m.propertyCalls[fmt.Sprintf("%d|%s", imageIndex, path)]++
	props, ok := m.properties[imageIndex]
	if !ok {
		return "", false
	}
	value, ok := props[path]
	return value, ok
}

func (m *mockContainerReader) RawXML(imageIndex int) (string, bool) {
	m.xmlCalls++
	blob, ok := m.xml[imageIndex]
	return blob, ok
}

func (m *mockContainerReader) ContainerBytes() int64 { return m.containerBytes }

func (m *mockContainerReader) Close() error { return nil }

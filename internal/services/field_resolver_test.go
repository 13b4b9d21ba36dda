package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-wim/internal/types"
)

func newTestResolver(reader *mockContainerReader) *FieldResolver {
	return NewFieldResolver(reader, NewPropertyCache(), nil)
}

func TestResolveFieldDirectChainPriority(t *testing.T) {
	reader := newMockContainerReader("test.wim", 1)
	reader.setProperty(1, "EDITIONID", "Home")
	reader.setProperty(1, "WINDOWS/EDITIONID", "Professional")

	value, ok := newTestResolver(reader).ResolveField(1, types.FieldEdition)

	require.True(t, ok)
	assert.Equal(t, "Professional", value, "WINDOWS/EDITIONID precedes EDITIONID in the chain")
}

func TestResolveFieldArchitectureNormalized(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "x64 code", raw: "9", expected: "x64"},
		{name: "x86 code", raw: "0", expected: "x86"},
		{name: "ARM64 code", raw: "12", expected: "ARM64"},
		{name: "unknown code passes through", raw: "77", expected: "77"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newMockContainerReader("test.wim", 1)
			reader.setProperty(1, "WINDOWS/ARCH", tt.raw)

			value, ok := newTestResolver(reader).ResolveField(1, types.FieldArchitecture)

			require.True(t, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestResolveFieldComposedVersion(t *testing.T) {
	tests := []struct {
		name       string
		properties map[string]string
		expected   string
		expectOK   bool
	}{
		{
			name: "major minor build",
			properties: map[string]string{
				"WINDOWS/VERSION/MAJOR": "10",
				"WINDOWS/VERSION/MINOR": "0",
				"WINDOWS/VERSION/BUILD": "19041",
			},
			expected: "10.0.19041",
			expectOK: true,
		},
		{
			name: "major minor without build",
			properties: map[string]string{
				"WINDOWS/VERSION/MAJOR": "6",
				"WINDOWS/VERSION/MINOR": "3",
			},
			expected: "6.3",
			expectOK: true,
		},
		{
			name: "major alone is not enough",
			properties: map[string]string{
				"WINDOWS/VERSION/MAJOR": "10",
			},
			expectOK: false,
		},
		{
			name: "direct path beats composition",
			properties: map[string]string{
				"DISPLAYVERSION":        "22H2",
				"WINDOWS/VERSION/MAJOR": "10",
				"WINDOWS/VERSION/MINOR": "0",
			},
			expected: "22H2",
			expectOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newMockContainerReader("test.wim", 1)
			for path, value := range tt.properties {
				reader.setProperty(1, path, value)
			}

			value, ok := newTestResolver(reader).ResolveField(1, types.FieldVersion)

			assert.Equal(t, tt.expectOK, ok)
			if tt.expectOK {
				assert.Equal(t, tt.expected, value)
			}
		})
	}
}

func TestResolveFieldXMLFallback(t *testing.T) {
	reader := newMockContainerReader("test.wim", 1)
	reader.xml[1] = `<WINDOWS><ARCH>0</ARCH><EDITIONID>Enterprise</EDITIONID></WINDOWS>`

	resolver := newTestResolver(reader)

	arch, ok := resolver.ResolveField(1, types.FieldArchitecture)
	require.True(t, ok)
	assert.Equal(t, "x86", arch, "XML ARCH code goes through the normalizer")

	edition, ok := resolver.ResolveField(1, types.FieldEdition)
	require.True(t, ok)
	assert.Equal(t, "Enterprise", edition)

	assert.Equal(t, 1, reader.xmlCalls, "the blob is fetched once per image, not per field")
}

func TestResolveFieldDirectBeatsXML(t *testing.T) {
	reader := newMockContainerReader("test.wim", 1)
	reader.setProperty(1, "ARCHITECTURE", "9")
	reader.xml[1] = `<WINDOWS><ARCH>0</ARCH></WINDOWS>`

	value, ok := newTestResolver(reader).ResolveField(1, types.FieldArchitecture)

	require.True(t, ok)
	assert.Equal(t, "x64", value)
	assert.Zero(t, reader.xmlCalls, "XML is a last resort")
}

func TestResolveFieldLanguagesSuffix(t *testing.T) {
	reader := newMockContainerReader("test.wim", 1)
	reader.setProperty(1, "WINDOWS/LANGUAGES/DEFAULT", "en-US")

	value, ok := newTestResolver(reader).ResolveField(1, types.FieldLanguages)

	require.True(t, ok)
	assert.Equal(t, "en-US (Default)", value)
}

func TestResolveFieldLanguagesAbsentGetsNoSuffix(t *testing.T) {
	reader := newMockContainerReader("test.wim", 1)

	value, ok := newTestResolver(reader).ResolveField(1, types.FieldLanguages)

	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestResolveFieldTimestampParts(t *testing.T) {
	reader := newMockContainerReader("test.wim", 1)
	reader.setProperty(1, "CREATIONTIME/HIGHPART", "0x01DC08B6")
	reader.setProperty(1, "CREATIONTIME/LOWPART", "0x1A436C39")

	value, ok := newTestResolver(reader).ResolveField(1, types.FieldCreationTime)

	require.True(t, ok)
	assert.Equal(t, "0x01DC08B6:0x1A436C39", value)
}

func TestResolveFieldTimestampDecodeFailureIsAbsent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "overflow sentinel", raw: "0xFFFFFFFF:0xFFFFFFFF"},
		{name: "garbage", raw: "not-a-time"},
		{name: "explicit not specified", raw: "Not specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newMockContainerReader("test.wim", 1)
			reader.setProperty(1, "CREATIONTIME", tt.raw)

			_, ok := newTestResolver(reader).ResolveField(1, types.FieldCreationTime)
			assert.False(t, ok)
		})
	}
}

func TestResolveFieldCachesWithinSession(t *testing.T) {
	reader := newMockContainerReader("test.wim", 1)
	reader.setProperty(1, "WINDOWS/EDITIONID", "Professional")

	resolver := newTestResolver(reader)

	first, ok := resolver.ResolveField(1, types.FieldEdition)
	require.True(t, ok)
	second, ok := resolver.ResolveField(1, types.FieldEdition)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, reader.callCount(1, "WINDOWS/EDITION"), "only one underlying pass per field per session")
	assert.Equal(t, 1, reader.callCount(1, "WINDOWS/EDITIONID"))
}

func TestResolveFieldCachesConfirmedAbsence(t *testing.T) {
	reader := newMockContainerReader("test.wim", 1)

	resolver := newTestResolver(reader)

	_, ok := resolver.ResolveField(1, types.FieldHAL)
	assert.False(t, ok)
	_, ok = resolver.ResolveField(1, types.FieldHAL)
	assert.False(t, ok)

	assert.Equal(t, 1, reader.callCount(1, "WINDOWS/HAL"), "confirmed absence must not re-query the reader")
	assert.Equal(t, 1, reader.callCount(1, "HAL"))
}

func TestResolveFieldUnknownField(t *testing.T) {
	reader := newMockContainerReader("test.wim", 1)

	_, ok := newTestResolver(reader).ResolveField(1, types.Field("NOSUCHFIELD"))
	assert.False(t, ok)
}

package services

import (
	"github.com/deploymenttheory/go-wim/internal/parsers/wimxml"
	"github.com/deploymenttheory/go-wim/internal/types"
)

// decodeKind selects the decode/normalize step applied to a resolved raw
// value. Normalization failures degrade to the raw value; decode failures
// degrade to absent.
type decodeKind int

const (
	decodeNone decodeKind = iota
	decodeArch
	decodeFiletime
)

// composeRule builds a value from sub-paths when no direct path matches.
// Used by VERSION: MAJOR and MINOR must both resolve, BUILD is appended when
// present.
type composeRule struct {
	bases []string
}

// fieldSpec declares how one logical field resolves: direct candidate paths
// in strict priority order, an optional composition rule, an optional
// embedded-XML fallback tag, an optional decode step, and an optional display
// suffix applied only to a present result.
type fieldSpec struct {
	field   types.Field
	paths   []string
	compose *composeRule
	xmlTag  string
	decode  decodeKind

	// timeParts enables the /HIGHPART + /LOWPART composed form tried after
	// the direct paths miss.
	timeParts bool

	suffix string
}

// fieldSpecs is the static dispatch table: one entry per logical field,
// replacing per-field conditional chains. New fields are declarative
// additions here.
var fieldSpecs = map[types.Field]fieldSpec{
	types.FieldArchitecture: {
		field:  types.FieldArchitecture,
		paths:  []string{"WINDOWS/ARCH", "ARCHITECTURE", "PROCESSORARCHITECTURE"},
		xmlTag: wimxml.TagArch,
		decode: decodeArch,
	},
	types.FieldVersion: {
		field: types.FieldVersion,
		paths: []string{
			"WINDOWS/VERSION", "WINDOWS/PRODUCTVERSION", "WINDOWS/DISPLAYVERSION",
			"VERSION", "DISPLAYVERSION", "PRODUCTVERSION",
		},
		compose: &composeRule{bases: []string{"WINDOWS/VERSION", "VERSION"}},
		xmlTag:  wimxml.TagProductVersion,
	},
	types.FieldEdition: {
		field: types.FieldEdition,
		paths: []string{
			"WINDOWS/EDITION", "WINDOWS/EDITIONID", "WINDOWS/PRODUCTNAME",
			"EDITION", "EDITIONID", "PRODUCTNAME",
		},
		xmlTag: wimxml.TagEditionID,
	},
	types.FieldLanguages: {
		field: types.FieldLanguages,
		paths: []string{
			"WINDOWS/LANGUAGES/DEFAULT", "WINDOWS/LANGUAGES/LANGUAGE",
			"LANGUAGES/DEFAULT", "LANGUAGES/LANGUAGE", "LANGUAGE",
		},
		xmlTag: wimxml.TagLanguage,
		suffix: " (Default)",
	},
	types.FieldInstallationType: {
		field:  types.FieldInstallationType,
		paths:  []string{"WINDOWS/INSTALLATIONTYPE", "INSTALLATIONTYPE", "FLAGS"},
		xmlTag: wimxml.TagInstallationType,
	},
	types.FieldProductType: {
		field:  types.FieldProductType,
		paths:  []string{"WINDOWS/PRODUCTTYPE", "PRODUCTTYPE"},
		xmlTag: wimxml.TagProductType,
	},
	types.FieldProductSuite: {
		field: types.FieldProductSuite,
		paths: []string{"WINDOWS/PRODUCTSUITE", "PRODUCTSUITE"},
	},
	types.FieldSystemRoot: {
		field:  types.FieldSystemRoot,
		paths:  []string{"WINDOWS/SYSTEMROOT", "SYSTEMROOT"},
		xmlTag: wimxml.TagSystemRoot,
	},
	types.FieldHAL: {
		field: types.FieldHAL,
		paths: []string{"WINDOWS/HAL", "HAL"},
	},
	types.FieldServicePackBuild: {
		field: types.FieldServicePackBuild,
		paths: []string{
			"WINDOWS/SERVICEPACK/BUILD", "WINDOWS/SERVICINGDATA/GDRORBUILD",
			"SERVICEPACKBUILD",
		},
		xmlTag: wimxml.TagServicingData,
	},
	types.FieldServicePackLevel: {
		field: types.FieldServicePackLevel,
		paths: []string{"WINDOWS/SERVICEPACK/LEVEL", "SERVICEPACKLEVEL"},
	},
	types.FieldDirectoryCount: {
		field: types.FieldDirectoryCount,
		paths: []string{"DIRCOUNT"},
	},
	types.FieldFileCount: {
		field: types.FieldFileCount,
		paths: []string{"FILECOUNT"},
	},
	types.FieldTotalBytes: {
		field: types.FieldTotalBytes,
		paths: []string{"TOTALBYTES"},
	},
	types.FieldCreationTime: {
		field:     types.FieldCreationTime,
		paths:     []string{"CREATIONTIME"},
		timeParts: true,
		decode:    decodeFiletime,
	},
	types.FieldModificationTime: {
		field:     types.FieldModificationTime,
		paths:     []string{"LASTMODIFICATIONTIME"},
		timeParts: true,
		decode:    decodeFiletime,
	},
	types.FieldBootable: {
		field: types.FieldBootable,
		paths: []string{"BOOTABLE", "ISBOOTABLE", "BOOT"},
	},
}

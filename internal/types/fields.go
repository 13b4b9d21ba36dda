package types

// Field identifies one logical metadata field resolved against a container.
// Field names are stable identifiers used as cache keys and in diagnostics.
type Field string

const (
	FieldArchitecture     Field = "ARCHITECTURE"
	FieldHAL              Field = "HAL"
	FieldVersion          Field = "VERSION"
	FieldServicePackBuild Field = "SERVICEPACKBUILD"
	FieldServicePackLevel Field = "SERVICEPACKLEVEL"
	FieldInstallationType Field = "INSTALLATIONTYPE"
	FieldProductType      Field = "PRODUCTTYPE"
	FieldProductSuite     Field = "PRODUCTSUITE"
	FieldSystemRoot       Field = "SYSTEMROOT"
	FieldEdition          Field = "EDITION"
	FieldLanguages        Field = "LANGUAGES"
	FieldDirectoryCount   Field = "DIRCOUNT"
	FieldFileCount        Field = "FILECOUNT"
	FieldTotalBytes       Field = "TOTALBYTES"
	FieldCreationTime     Field = "CREATIONTIME"
	FieldModificationTime Field = "LASTMODIFICATIONTIME"
	FieldBootable         Field = "BOOTABLE"
)

// AllFields lists every logical field the resolver knows about, in the order
// the aggregator resolves them.
var AllFields = []Field{
	FieldArchitecture,
	FieldHAL,
	FieldVersion,
	FieldServicePackBuild,
	FieldServicePackLevel,
	FieldInstallationType,
	FieldProductType,
	FieldProductSuite,
	FieldSystemRoot,
	FieldEdition,
	FieldLanguages,
	FieldDirectoryCount,
	FieldFileCount,
	FieldTotalBytes,
	FieldCreationTime,
	FieldModificationTime,
	FieldBootable,
}

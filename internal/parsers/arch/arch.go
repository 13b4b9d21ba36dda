// Package arch maps vendor processor-architecture codes to human-readable
// labels.
package arch

// registry holds the known architecture codes. Codes not present here are
// passed through unchanged so that legitimate future codes are not discarded.
var registry = map[string]string{
	"0":  "x86",
	"9":  "x64",
	"12": "ARM64",
}

// Normalize maps a raw architecture code to its label. A blank code yields
// ("", false); an unknown non-blank code is returned as-is.
func Normalize(code string) (string, bool) {
	if code == "" {
		return "", false
	}
	if label, ok := registry[code]; ok {
		return label, true
	}
	return code, true
}

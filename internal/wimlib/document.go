package wimlib

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/deploymenttheory/go-wim/internal/types"
)

// xmlNode is a generic element tree used to walk the WIM XML document without
// committing to a fixed schema.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	InnerXML []byte     `xml:",innerxml"`
	Children []xmlNode  `xml:",any"`
}

// imageEntry holds everything the reader serves for one image: the flattened
// property map, the raw inner XML of the IMAGE element, and the NAME and
// DESCRIPTION shortcuts.
type imageEntry struct {
	name        string
	description string
	properties  map[string]string
	rawXML      string
}

// parseDocument decodes the WIM XML document (as emitted by wimlib-imagex,
// UTF-16LE with BOM) and flattens each IMAGE element into /-delimited
// property paths keyed by 1-based image index.
func parseDocument(data []byte) (map[int]*imageEntry, error) {
	text := decodeXMLBytes(data)

	// Strip any XML declaration: the bytes are already decoded, and the
	// encoding it names would make the decoder reject the document.
	if strings.HasPrefix(strings.TrimSpace(text), "<?xml") {
		if end := strings.Index(text, "?>"); end >= 0 {
			text = text[end+2:]
		}
	}

	var root xmlNode
	if err := xml.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("failed to parse container XML document: %w", types.ErrInvalidFormat)
	}

	images := make(map[int]*imageEntry)
	for _, child := range root.Children {
		if !strings.EqualFold(child.XMLName.Local, "IMAGE") {
			continue
		}

		index := 0
		for _, attr := range child.Attrs {
			if strings.EqualFold(attr.Name.Local, "INDEX") {
				if n, err := strconv.Atoi(strings.TrimSpace(attr.Value)); err == nil {
					index = n
				}
			}
		}
		if index < 1 {
			continue
		}

		entry := &imageEntry{
			properties: make(map[string]string),
			rawXML:     string(child.InnerXML),
		}
		for _, grandchild := range child.Children {
			flatten(grandchild, "", entry.properties)
		}
		entry.name = entry.properties["NAME"]
		entry.description = entry.properties["DESCRIPTION"]

		images[index] = entry
	}

	return images, nil
}

// flatten records leaf element text and attribute values under upper-cased,
// /-delimited paths. The first value seen for a path wins.
func flatten(node xmlNode, prefix string, out map[string]string) {
	path := strings.ToUpper(node.XMLName.Local)
	if prefix != "" {
		path = prefix + "/" + path
	}

	for _, attr := range node.Attrs {
		attrPath := path + "/" + strings.ToUpper(attr.Name.Local)
		setProperty(out, attrPath, attr.Value)
	}

	if len(node.Children) == 0 {
		setProperty(out, path, node.Content)
		return
	}

	for _, child := range node.Children {
		flatten(child, path, out)
	}
}

func setProperty(out map[string]string, path, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, exists := out[path]; !exists {
		out[path] = value
	}
}

// decodeXMLBytes converts the document bytes to a string, honoring a UTF-16
// byte-order mark when present and assuming UTF-8 otherwise.
func decodeXMLBytes(data []byte) string {
	if len(data) >= 2 {
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			return decodeUTF16(data[2:], false)
		case data[0] == 0xFE && data[1] == 0xFF:
			return decodeUTF16(data[2:], true)
		}
	}
	return string(data)
}

func decodeUTF16(data []byte, bigEndian bool) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}
	return string(utf16.Decode(units))
}

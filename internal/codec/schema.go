package codec

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Interpretation is the numeric type of a dimension's stored bytes.
//
// Reference: spec §3 Dimension.
type Interpretation int

const (
	InterpInt8 Interpretation = iota
	InterpUint8
	InterpInt16
	InterpUint16
	InterpInt32
	InterpUint32
	InterpInt64
	InterpUint64
	InterpFloat
	InterpDouble
)

// String returns the name of the interpretation, as used in schema XML.
func (i Interpretation) String() string {
	switch i {
	case InterpInt8:
		return "int8_t"
	case InterpUint8:
		return "uint8_t"
	case InterpInt16:
		return "int16_t"
	case InterpUint16:
		return "uint16_t"
	case InterpInt32:
		return "int32_t"
	case InterpUint32:
		return "uint32_t"
	case InterpInt64:
		return "int64_t"
	case InterpUint64:
		return "uint64_t"
	case InterpFloat:
		return "float"
	case InterpDouble:
		return "double"
	default:
		return "unknown"
	}
}

// Size returns the storage size in bytes for the interpretation.
func (i Interpretation) Size() int {
	switch i {
	case InterpInt8, InterpUint8:
		return 1
	case InterpInt16, InterpUint16:
		return 2
	case InterpInt32, InterpUint32, InterpFloat:
		return 4
	case InterpInt64, InterpUint64, InterpDouble:
		return 8
	default:
		return 0
	}
}

// IsInteger reports whether the interpretation stores an integer value.
// Used by the dimension-statistics chooser (spec §3): floats always
// recommend Zlib, never RLE/SigBits.
func (i Interpretation) IsInteger() bool {
	switch i {
	case InterpFloat, InterpDouble:
		return false
	default:
		return true
	}
}

func interpretationFromXML(name string) (Interpretation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int8_t", "int8":
		return InterpInt8, nil
	case "uint8_t", "uint8":
		return InterpUint8, nil
	case "int16_t", "int16":
		return InterpInt16, nil
	case "uint16_t", "uint16":
		return InterpUint16, nil
	case "int32_t", "int32":
		return InterpInt32, nil
	case "uint32_t", "uint32":
		return InterpUint32, nil
	case "int64_t", "int64":
		return InterpInt64, nil
	case "uint64_t", "uint64":
		return InterpUint64, nil
	case "float", "float32":
		return InterpFloat, nil
	case "double", "float64":
		return InterpDouble, nil
	default:
		return 0, &SchemaError{Reason: fmt.Sprintf("unknown interpretation %q", name)}
	}
}

// CompressionPreference is a schema's preferred patch encoding for
// future Dimensional/GHT/LAZ compression (spec §3 Schema.compression).
type CompressionPreference int

const (
	PreferNone CompressionPreference = iota
	PreferDimensional
	PreferGHT
	PreferLAZ
)

func compressionPreferenceFromXML(name string) CompressionPreference {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dimensional":
		return PreferDimensional
	case "ght":
		return PreferGHT
	case "laz":
		return PreferLAZ
	default:
		return PreferNone
	}
}

// Dimension is a single named, typed field within a point record.
//
// Immutable once constructed. Scaled value = stored*Scale + Offset.
//
// Reference: spec §3 Dimension.
type Dimension struct {
	Name           string
	Description    string
	Position       int // 0-based index within the schema
	Interpretation Interpretation
	Size           int // bytes, derived from Interpretation
	ByteOffset     int // byte position inside a point record
	Scale          float64
	Offset         float64
	Active         bool
}

// Schema is the immutable description of a point's byte layout: an
// ordered set of dimensions plus the derived record size and x/y
// dimension positions.
//
// Reference: spec §3 Schema.
type Schema struct {
	Pcid        int
	Srid        int
	Dims        []Dimension
	Size        int
	XPosition   int // -1 if absent
	YPosition   int // -1 if absent
	Compression CompressionPreference

	namesLower map[string]int // case-insensitive name -> index
}

// NDims returns the number of dimensions in the schema.
func (s *Schema) NDims() int { return len(s.Dims) }

// GetDimension returns the dimension at index i.
func (s *Schema) GetDimension(i int) (*Dimension, error) {
	if i < 0 || i >= len(s.Dims) {
		return nil, &OutOfRangeError{Reason: fmt.Sprintf("dimension index %d out of range [0,%d)", i, len(s.Dims))}
	}
	return &s.Dims[i], nil
}

// GetDimensionByName returns the dimension matching name, case-insensitively.
func (s *Schema) GetDimensionByName(name string) (*Dimension, error) {
	i, ok := s.namesLower[strings.ToLower(name)]
	if !ok {
		return nil, &OutOfRangeError{Reason: fmt.Sprintf("no dimension named %q", name)}
	}
	return &s.Dims[i], nil
}

// IsValid reports whether the schema has both an X and Y dimension
// and contains no malformed dimensions, per spec §4.3 is_valid.
func (s *Schema) IsValid() bool {
	if s.XPosition < 0 || s.YPosition < 0 {
		return false
	}
	for _, d := range s.Dims {
		if d.Size <= 0 || d.Scale == 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	dims := make([]Dimension, len(s.Dims))
	copy(dims, s.Dims)
	names := make(map[string]int, len(s.namesLower))
	for k, v := range s.namesLower {
		names[k] = v
	}
	return &Schema{
		Pcid:        s.Pcid,
		Srid:        s.Srid,
		Dims:        dims,
		Size:        s.Size,
		XPosition:   s.XPosition,
		YPosition:   s.YPosition,
		Compression: s.Compression,
		namesLower:  names,
	}
}

// isXName / isYName recognize the aliases spec §3 calls out.
func isXName(name string) bool {
	switch strings.ToLower(name) {
	case "x", "longitude", "lon":
		return true
	}
	return false
}

func isYName(name string) bool {
	switch strings.ToLower(name) {
	case "y", "latitude", "lat":
		return true
	}
	return false
}

// NewSchema builds a Schema from caller-supplied dimensions.
//
// Byte offsets are computed by scanning dims in Position order so each
// dimension is tightly packed after the previous one; duplicate
// Position values are a SchemaError. Dims need not be pre-sorted; the
// returned schema's Dims slice is always in Position order.
func NewSchema(pcid, srid int, dims []Dimension, compression CompressionPreference) (*Schema, error) {
	if len(dims) == 0 {
		return nil, &SchemaError{Reason: "schema must have at least one dimension"}
	}

	n := len(dims)
	ordered := make([]Dimension, n)
	seen := make([]bool, n)
	for _, d := range dims {
		if d.Position < 0 || d.Position >= n {
			return nil, &SchemaError{Reason: fmt.Sprintf("dimension %q position %d out of range [0,%d)", d.Name, d.Position, n)}
		}
		if seen[d.Position] {
			return nil, &SchemaError{Reason: fmt.Sprintf("duplicate dimension position %d", d.Position)}
		}
		seen[d.Position] = true
		ordered[d.Position] = d
	}

	names := make(map[string]int, n)
	offset := 0
	xPos, yPos := -1, -1
	for i := range ordered {
		d := &ordered[i]
		if d.Size == 0 {
			d.Size = d.Interpretation.Size()
		}
		if d.Size == 0 {
			return nil, &SchemaError{Reason: fmt.Sprintf("dimension %q has unknown interpretation", d.Name)}
		}
		if d.Scale == 0 {
			d.Scale = 1.0
		}
		d.Position = i
		d.ByteOffset = offset
		offset += d.Size

		lower := strings.ToLower(d.Name)
		if _, dup := names[lower]; dup {
			return nil, &SchemaError{Reason: fmt.Sprintf("duplicate dimension name %q", d.Name)}
		}
		names[lower] = i

		if isXName(d.Name) {
			xPos = i
		} else if isYName(d.Name) {
			yPos = i
		}
	}

	return &Schema{
		Pcid:        pcid,
		Srid:        srid,
		Dims:        ordered,
		Size:        offset,
		XPosition:   xPos,
		YPosition:   yPos,
		Compression: compression,
		namesLower:  names,
	}, nil
}

// xmlPointCloudSchema mirrors the PointCloudSchema document shape
// consumed by SchemaFromXML (spec §4.3). Field layout follows the
// teacher's catalog XML structs (pkg/s57/catalog.go): plain
// encoding/xml struct tags, no external XML library.
type xmlPointCloudSchema struct {
	XMLName    xml.Name          `xml:"PointCloudSchema"`
	Dimensions []xmlDimension    `xml:"dimension"`
	Metadata   []xmlMetadataItem `xml:"metadata>Metadata"`
}

type xmlDimension struct {
	Name           string  `xml:"name"`
	Description    string  `xml:"description"`
	Size           int     `xml:"size"`
	Active         int     `xml:"active"`
	Position       int     `xml:"position"`
	Interpretation string  `xml:"interpretation"`
	Scale          float64 `xml:"scale"`
	Offset         float64 `xml:"offset"`
}

type xmlMetadataItem struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// SchemaFromXML parses a PointCloudSchema XML document into a Schema.
//
// Position in the XML is 1-based; it is converted to the 0-based
// Dimension.Position used internally. Position must be dense over
// [1, ndims] and unique, or this returns a SchemaError.
//
// A metadata/Metadata element named "compression" selects the
// schema's preferred patch encoding ("dimensional" | "ght" | "laz" |
// "none", default "none").
//
// Reference: spec §4.3.
func SchemaFromXML(pcid int, data []byte) (*Schema, error) {
	var doc xmlPointCloudSchema
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("parsing schema xml: %v", err)}
	}
	if len(doc.Dimensions) == 0 {
		return nil, &SchemaError{Reason: "schema xml has no dimension elements"}
	}

	n := len(doc.Dimensions)
	dims := make([]Dimension, n)
	for idx, xd := range doc.Dimensions {
		pos := xd.Position - 1
		if pos < 0 || pos >= n {
			return nil, &SchemaError{Reason: fmt.Sprintf("dimension %q has position %d, want 1..%d", xd.Name, xd.Position, n)}
		}
		interp, err := interpretationFromXML(xd.Interpretation)
		if err != nil {
			return nil, err
		}
		scale := xd.Scale
		if scale == 0 {
			scale = 1.0
		}
		dims[idx] = Dimension{
			Name:           xd.Name,
			Description:    xd.Description,
			Position:       pos,
			Interpretation: interp,
			Size:           xd.Size,
			Scale:          scale,
			Offset:         xd.Offset,
			Active:         xd.Active != 0,
		}
	}

	srid := 0
	compression := PreferNone
	for _, m := range doc.Metadata {
		switch strings.ToLower(strings.TrimSpace(m.Name)) {
		case "compression":
			compression = compressionPreferenceFromXML(m.Value)
		case "srid":
			fmt.Sscanf(m.Value, "%d", &srid)
		}
	}

	return NewSchema(pcid, srid, dims, compression)
}

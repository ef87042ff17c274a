// Package pointcloud provides a clean public API for point-cloud patch
// compression: typed dimension schemas, point lists, and the four
// patch encodings (Uncompressed, Dimensional, GHT, LAZ) that trade off
// size against random access.
package pointcloud

import "github.com/beetlebugorg/pcpatch/internal/codec"

// Interpretation is the numeric type of a dimension's stored bytes.
type Interpretation int

const (
	Int8    Interpretation = Interpretation(codec.InterpInt8)
	Uint8   Interpretation = Interpretation(codec.InterpUint8)
	Int16   Interpretation = Interpretation(codec.InterpInt16)
	Uint16  Interpretation = Interpretation(codec.InterpUint16)
	Int32   Interpretation = Interpretation(codec.InterpInt32)
	Uint32  Interpretation = Interpretation(codec.InterpUint32)
	Int64   Interpretation = Interpretation(codec.InterpInt64)
	Uint64  Interpretation = Interpretation(codec.InterpUint64)
	Float32 Interpretation = Interpretation(codec.InterpFloat)
	Float64 Interpretation = Interpretation(codec.InterpDouble)
)

// Compression is a schema's preferred patch encoding.
type Compression int

const (
	PreferNone        Compression = Compression(codec.PreferNone)
	PreferDimensional Compression = Compression(codec.PreferDimensional)
	PreferGHT         Compression = Compression(codec.PreferGHT)
	PreferLAZ         Compression = Compression(codec.PreferLAZ)
)

// Dimension describes one named, typed field within a point record.
type Dimension struct {
	Name        string
	Description string
	Interp      Interpretation
	Scale       float64
	Offset      float64
}

// Schema is the immutable, typed description of a point's byte
// layout: an ordered set of dimensions plus derived offsets.
type Schema struct {
	inner *codec.Schema
}

// NewSchema builds a Schema from caller-supplied dimensions, packing
// them in slice order.
func NewSchema(pcid, srid int, dims []Dimension, compression Compression) (*Schema, error) {
	cdims := make([]codec.Dimension, len(dims))
	for i, d := range dims {
		cdims[i] = codec.Dimension{
			Name:           d.Name,
			Description:    d.Description,
			Position:       i,
			Interpretation: codec.Interpretation(d.Interp),
			Scale:          d.Scale,
			Offset:         d.Offset,
			Active:         true,
		}
	}
	inner, err := codec.NewSchema(pcid, srid, cdims, codec.CompressionPreference(compression))
	if err != nil {
		return nil, err
	}
	return &Schema{inner: inner}, nil
}

// SchemaFromXML parses a PointCloudSchema XML document into a Schema
// tagged with pcid.
func SchemaFromXML(pcid int, data []byte) (*Schema, error) {
	inner, err := codec.SchemaFromXML(pcid, data)
	if err != nil {
		return nil, err
	}
	return &Schema{inner: inner}, nil
}

// Pcid returns the schema's external catalog identifier.
func (s *Schema) Pcid() int { return s.inner.Pcid }

// Srid returns the schema's spatial reference identifier.
func (s *Schema) Srid() int { return s.inner.Srid }

// NDims returns the number of dimensions in the schema.
func (s *Schema) NDims() int { return s.inner.NDims() }

// DimensionByName returns the dimension named name, case-insensitively.
func (s *Schema) DimensionByName(name string) (Dimension, error) {
	d, err := s.inner.GetDimensionByName(name)
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{Name: d.Name, Description: d.Description, Interp: Interpretation(d.Interpretation), Scale: d.Scale, Offset: d.Offset}, nil
}

// IsValid reports whether the schema has both an X and Y dimension
// and no malformed dimension.
func (s *Schema) IsValid() bool { return s.inner.IsValid() }

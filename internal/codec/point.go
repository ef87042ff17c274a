package codec

import "fmt"

// Point is a single record: a schema plus its byte buffer.
//
// When Readonly, Data aliases a caller-owned buffer and must not be
// mutated. Destroying an owned point releases Data; a readonly point
// never does.
//
// Reference: spec §3 Point, §4.4.
type Point struct {
	Schema   *Schema
	Readonly bool
	Data     []byte
}

// MakePoint returns a new, owned, zeroed point for schema.
func MakePoint(schema *Schema) *Point {
	return &Point{Schema: schema, Data: make([]byte, schema.Size)}
}

// PointFromData returns a readonly point viewing buf, which must be
// exactly schema.Size bytes.
func PointFromData(schema *Schema, buf []byte) (*Point, error) {
	if len(buf) != schema.Size {
		return nil, &DataMismatchError{Reason: fmt.Sprintf("point data size %d does not match schema size %d", len(buf), schema.Size)}
	}
	return &Point{Schema: schema, Readonly: true, Data: buf}, nil
}

// PointFromDoubleArray builds a new, owned point writing one value
// per dimension from vals, which must have len(schema.Dims) entries.
// Each value is in scaled/offset (physical) units.
func PointFromDoubleArray(schema *Schema, vals []float64) (*Point, error) {
	if len(vals) != len(schema.Dims) {
		return nil, &DataMismatchError{Reason: fmt.Sprintf("got %d values, schema has %d dimensions", len(vals), len(schema.Dims))}
	}
	p := MakePoint(schema)
	for i := range schema.Dims {
		if err := p.SetDouble(i, vals[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// GetDouble reads dimension i's value, scaled and offset to physical units.
func (p *Point) GetDouble(dimIndex int) (float64, error) {
	d, err := p.Schema.GetDimension(dimIndex)
	if err != nil {
		return 0, err
	}
	stored, err := ReadValue(p.Data[d.ByteOffset:d.ByteOffset+d.Size], d.Interpretation)
	if err != nil {
		return 0, err
	}
	return ScaleOffset(stored, d), nil
}

// GetDoubleByName reads a dimension's value by name.
func (p *Point) GetDoubleByName(name string) (float64, error) {
	d, err := p.Schema.GetDimensionByName(name)
	if err != nil {
		return 0, err
	}
	return p.GetDouble(d.Position)
}

// SetDouble writes value (physical units) into dimension i after
// inverse scale+offset. Errors if p is readonly.
func (p *Point) SetDouble(dimIndex int, value float64) error {
	if p.Readonly {
		return &CodecError{Reason: "cannot write to a readonly point"}
	}
	d, err := p.Schema.GetDimension(dimIndex)
	if err != nil {
		return err
	}
	stored := UnscaleUnoffset(value, d)
	return WriteValue(p.Data[d.ByteOffset:d.ByteOffset+d.Size], d.Interpretation, stored)
}

// SetDoubleByName writes a dimension's value by name.
func (p *Point) SetDoubleByName(name string, value float64) error {
	d, err := p.Schema.GetDimensionByName(name)
	if err != nil {
		return err
	}
	return p.SetDouble(d.Position, value)
}

// GetX / GetY / SetX / SetY delegate through the schema's x/y
// dimension positions.
func (p *Point) GetX() (float64, error) {
	if p.Schema.XPosition < 0 {
		return 0, &SchemaError{Reason: "schema has no X dimension"}
	}
	return p.GetDouble(p.Schema.XPosition)
}

func (p *Point) GetY() (float64, error) {
	if p.Schema.YPosition < 0 {
		return 0, &SchemaError{Reason: "schema has no Y dimension"}
	}
	return p.GetDouble(p.Schema.YPosition)
}

func (p *Point) SetX(v float64) error {
	if p.Schema.XPosition < 0 {
		return &SchemaError{Reason: "schema has no X dimension"}
	}
	return p.SetDouble(p.Schema.XPosition, v)
}

func (p *Point) SetY(v float64) error {
	if p.Schema.YPosition < 0 {
		return &SchemaError{Reason: "schema has no Y dimension"}
	}
	return p.SetDouble(p.Schema.YPosition, v)
}

// Clone returns a new, owned copy of p.
func (p *Point) Clone() *Point {
	data := append([]byte(nil), p.Data...)
	return &Point{Schema: p.Schema, Data: data}
}

// String renders p in the JSON-ish form used by spec §8 fixture S4:
// "(v0, v1, ..., vn)" of scaled dimension values.
func (p *Point) String() string {
	s := "("
	for i := range p.Schema.Dims {
		v, err := p.GetDouble(i)
		if i > 0 {
			s += ", "
		}
		if err != nil {
			s += "?"
			continue
		}
		s += trimFloat(v)
	}
	return s + ")"
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}

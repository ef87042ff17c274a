package pointcloud

import "github.com/beetlebugorg/pcpatch/internal/codec"

// Point is a single record under a Schema.
type Point struct {
	inner *codec.Point
}

// NewPoint builds a point for schema from one physical-unit value per
// dimension, in schema dimension order.
func NewPoint(schema *Schema, values []float64) (*Point, error) {
	inner, err := codec.PointFromDoubleArray(schema.inner, values)
	if err != nil {
		return nil, err
	}
	return &Point{inner: inner}, nil
}

// Get returns the dimension's physical value by name.
func (p *Point) Get(dimName string) (float64, error) {
	return p.inner.GetDoubleByName(dimName)
}

// Set writes the dimension's physical value by name.
func (p *Point) Set(dimName string, value float64) error {
	return p.inner.SetDoubleByName(dimName, value)
}

// X returns the point's X coordinate.
func (p *Point) X() (float64, error) { return p.inner.GetX() }

// Y returns the point's Y coordinate.
func (p *Point) Y() (float64, error) { return p.inner.GetY() }

// String renders the point as "(v0, v1, ..., vn)" of scaled dimension values.
func (p *Point) String() string { return p.inner.String() }

// WKB renders the point as an OGC EWKB POINT.
func (p *Point) WKB() ([]byte, error) { return codec.PointWKB(p.inner) }

// Serialize writes the point's §6.1 wire form.
func (p *Point) Serialize() []byte { return codec.SerializePoint(p.inner) }

// DeserializePoint reads a §6.1 point blob under schema.
func DeserializePoint(schema *Schema, buf []byte) (*Point, error) {
	inner, err := codec.DeserializePoint(schema.inner, buf)
	if err != nil {
		return nil, err
	}
	return &Point{inner: inner}, nil
}

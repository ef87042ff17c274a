package codec

import (
	"encoding/binary"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

// PointWKB renders p as an OGC EWKB POINT, in 3D (XYZ) when the
// schema carries a dimension named "z" or "Z", 2D (XY) otherwise, and
// tagged with the schema's SRID when non-zero.
//
// Reference: spec §6.3 geometry export.
func PointWKB(p *Point) ([]byte, error) {
	x, err := p.GetX()
	if err != nil {
		return nil, err
	}
	y, err := p.GetY()
	if err != nil {
		return nil, err
	}

	var g geom.T
	if zd, zerr := p.Schema.GetDimensionByName("z"); zerr == nil {
		z, err := p.GetDouble(zd.Position)
		if err != nil {
			return nil, err
		}
		g = geom.NewPointFlat(geom.XYZ, []float64{x, y, z})
	} else {
		g = geom.NewPointFlat(geom.XY, []float64{x, y})
	}
	if p.Schema.Srid != 0 {
		g = g.SetSRID(p.Schema.Srid)
	}
	return ewkb.Marshal(g, binary.LittleEndian)
}

// BoundsWKB renders a patch's bounds as an OGC EWKB POLYGON ring
// (the axis-aligned box), tagged with srid when non-zero.
//
// Reference: spec §6.3 geometry export.
func BoundsWKB(b Bounds, srid int) ([]byte, error) {
	ring := []float64{
		b.XMin, b.YMin,
		b.XMax, b.YMin,
		b.XMax, b.YMax,
		b.XMin, b.YMax,
		b.XMin, b.YMin,
	}
	poly := geom.NewPolygonFlat(geom.XY, ring, []int{len(ring)})
	var g geom.T = poly
	if srid != 0 {
		g = poly.SetSRID(srid)
	}
	return ewkb.Marshal(g, binary.LittleEndian)
}

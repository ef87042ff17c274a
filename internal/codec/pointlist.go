package codec

// PointList is an ordered, growable sequence of points used only as
// the universal intermediate between patch representations.
//
// Reference: spec §3 Point list.
type PointList struct {
	Schema *Schema
	Points []*Point
}

// NewPointList returns an empty point list for schema.
func NewPointList(schema *Schema) *PointList {
	return &PointList{Schema: schema}
}

// Append adds p to the list. p's schema must match the list's.
func (pl *PointList) Append(p *Point) error {
	if p.Schema.Pcid != pl.Schema.Pcid {
		return &DataMismatchError{Reason: "point pcid does not match point list schema"}
	}
	pl.Points = append(pl.Points, p)
	return nil
}

// Len returns the number of points in the list.
func (pl *PointList) Len() int { return len(pl.Points) }

package optic

import "math"

// Field is a normalized object-space field coordinate. Both components lie
// in [-1, 1]; (0, 0) is the optical axis.
type Field struct {
	Hx float64
	Hy float64
}

// Radius returns the normalized radial field coordinate.
func (f Field) Radius() float64 {
	return math.Hypot(f.Hx, f.Hy)
}

// FieldSet enumerates the configured fields of a system together with the
// maximum field angle they are normalized against.
type FieldSet struct {
	fields   []Field
	maxField float64 // degrees
}

// NewFieldSet builds a registry from explicit field coordinates and the
// maximum field angle in degrees.
func NewFieldSet(fields []Field, maxFieldDeg float64) *FieldSet {
	fs := &FieldSet{
		fields:   make([]Field, len(fields)),
		maxField: maxFieldDeg,
	}
	copy(fs.fields, fields)
	return fs
}

// Coords returns a copy of the configured field coordinates.
func (fs *FieldSet) Coords() []Field {
	out := make([]Field, len(fs.fields))
	copy(out, fs.fields)
	return out
}

// NumFields returns the number of configured fields.
func (fs *FieldSet) NumFields() int { return len(fs.fields) }

// MaxField returns the maximum field angle in degrees.
func (fs *FieldSet) MaxField() float64 { return fs.maxField }

// MaxFieldRad returns the maximum field angle in radians.
func (fs *FieldSet) MaxFieldRad() float64 { return fs.maxField * math.Pi / 180 }

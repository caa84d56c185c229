package bolt

import (
	"fmt"
	"math"
)

// DefaultSegments is the angular resolution of every ring. It does not
// depend on the element size, which only drives axial subdivision.
const DefaultSegments = 12

const (
	minSegments = 3
	MaxSegments = 720

	// MaxDivisions caps the axial subdivisions of each section.
	MaxDivisions = 10000
	MaxNodes     = 1000000
)

type Options struct {
	Segments int
}

func DefaultOptions() Options {
	return Options{Segments: DefaultSegments}
}

// Build meshes the bolt surface with the default angular resolution.
func Build(p Parameters) (*Model, error) {
	return BuildWith(p, DefaultOptions())
}

// BuildWith meshes the bolt as two coaxial cylinders revolved around Z.
// The head top face sits at z = HeadThickness, the bearing face at z = 0
// and the shank tip at z = -ShankLength.
func BuildWith(p Parameters, opts Options) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if opts.Segments == 0 {
		opts.Segments = DefaultSegments
	}
	if opts.Segments < minSegments {
		return nil, &InvalidParameterError{Field: "segments", Value: float64(opts.Segments), Reason: "need at least 3 segments"}
	}
	if opts.Segments > MaxSegments {
		return nil, &InvalidParameterError{Field: "segments", Value: float64(opts.Segments), Reason: fmt.Sprintf("at most %d segments", MaxSegments)}
	}

	headDiv := divisions(p.HeadThickness, p.ElementSize)
	shankDiv := divisions(p.ShankLength, p.ElementSize)
	if n := (headDiv + shankDiv) * opts.Segments; n > MaxNodes {
		return nil, &InvalidParameterError{Field: "element_size", Value: p.ElementSize, Reason: fmt.Sprintf("mesh would have %d nodes, at most %d", n, MaxNodes)}
	}

	m := &Model{
		Params:   p,
		Segments: opts.Segments,
		HeadDiv:  headDiv,
		ShankDiv: shankDiv,
		Rings:    make([]Ring, 0, headDiv+shankDiv),
	}

	// Head rings stop above the bearing face and shank rings start below
	// it, so the element ring crossing z = 0 is the under-head transition.
	dh := p.HeadThickness / float64(headDiv)
	for j := 0; j < headDiv; j++ {
		m.addRing(p.HeadThickness-float64(j)*dh, p.HeadDiameter/2, RegionHead)
	}
	ds := p.ShankLength / float64(shankDiv)
	for i := 1; i <= shankDiv; i++ {
		m.addRing(-float64(i)*ds, p.ShankDiameter/2, RegionShank)
	}

	m.Nodes = make([]Node, 0, len(m.Rings)*m.Segments)
	for _, r := range m.Rings {
		for s := 0; s < m.Segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(m.Segments)
			m.Nodes = append(m.Nodes, Node{
				ID: len(m.Nodes) + 1,
				X:  r.Radius * math.Cos(theta),
				Y:  r.Radius * math.Sin(theta),
				Z:  r.Z,
			})
		}
	}

	m.Elements = make([]Element, 0, (len(m.Rings)-1)*m.Segments)
	for k := 0; k+1 < len(m.Rings); k++ {
		upper, lower := m.Rings[k], m.Rings[k+1]
		for s := 0; s < m.Segments; s++ {
			next := (s + 1) % m.Segments
			// Counter-clockwise seen from outside: the normal points away from the axis.
			m.Elements = append(m.Elements, Element{
				ID: len(m.Elements) + 1,
				Nodes: []int{
					upper.FirstNode + s,
					lower.FirstNode + s,
					lower.FirstNode + next,
					upper.FirstNode + next,
				},
				Section: upper.Region,
			})
		}
	}
	return m, nil
}

func (m *Model) addRing(z, radius float64, region Region) {
	idx := len(m.Rings)
	m.Rings = append(m.Rings, Ring{
		Index:     idx,
		Z:         z,
		Radius:    radius,
		Region:    region,
		FirstNode: idx*m.Segments + 1,
	})
}

// divisions never returns less than one, so a section shorter than the
// element size still gets a ring. Validate bounds length/size by
// MaxDivisions before this runs.
func divisions(length, size float64) int {
	n := int(math.Ceil(length / size))
	if n < 1 {
		return 1
	}
	return n
}

// Validate reports the first field that cannot describe a bolt.
func (p Parameters) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"head_diameter", p.HeadDiameter},
		{"head_thickness", p.HeadThickness},
		{"shank_diameter", p.ShankDiameter},
		{"shank_length", p.ShankLength},
		{"element_size", p.ElementSize},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidParameterError{Field: f.name, Value: f.value, Reason: "must be a finite number"}
		}
		if f.value <= 0 {
			return &InvalidParameterError{Field: f.name, Value: f.value, Reason: "must be positive"}
		}
	}
	if p.ShankDiameter >= p.HeadDiameter {
		return &InvalidParameterError{Field: "shank_diameter", Value: p.ShankDiameter, Reason: "must be smaller than head_diameter"}
	}
	// Checked on the float ratio; converting an unbounded ratio to int overflows.
	if r := math.Max(p.HeadThickness, p.ShankLength) / p.ElementSize; r > MaxDivisions {
		return &InvalidParameterError{Field: "element_size", Value: p.ElementSize, Reason: fmt.Sprintf("too many divisions (%.0f > %d)", r, MaxDivisions)}
	}
	return nil
}

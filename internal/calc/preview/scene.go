// Package preview renders read-only views of a bolt model for display:
// a point/line scene for the browser's 3D plot and static PNG projections.
package preview

import (
	"boltgen/internal/calc/bolt"
)

type Point struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

// Polyline is a list of node IDs drawn in order. Closed rings repeat
// their first ID at the end.
type Polyline []int

type Scene struct {
	Points    []Point    `json:"points"`
	Rings     []Polyline `json:"rings"`
	Meridians []Polyline `json:"meridians"`
	Stats     bolt.Stats `json:"stats"`
}

// NewScene describes the model surface as points plus ring and meridian
// lines. Every line index refers to Points by node ID.
func NewScene(m *bolt.Model) Scene {
	sc := Scene{
		Points:    make([]Point, len(m.Nodes)),
		Rings:     make([]Polyline, len(m.Rings)),
		Meridians: make([]Polyline, m.Segments),
		Stats:     m.Stats(),
	}
	for i, n := range m.Nodes {
		sc.Points[i] = Point{ID: n.ID, X: n.X, Y: n.Y, Z: n.Z}
	}
	for k := range m.Rings {
		ids := m.RingNodes(k)
		sc.Rings[k] = append(Polyline(ids), ids[0])
	}
	for s := 0; s < m.Segments; s++ {
		line := make(Polyline, len(m.Rings))
		for k, r := range m.Rings {
			line[k] = r.FirstNode + s
		}
		sc.Meridians[s] = line
	}
	return sc
}

// Bounds returns the axis-aligned box around all points.
func (sc Scene) Bounds() (min, max [3]float64) {
	for i, p := range sc.Points {
		v := [3]float64{p.X, p.Y, p.Z}
		for a := 0; a < 3; a++ {
			if i == 0 || v[a] < min[a] {
				min[a] = v[a]
			}
			if i == 0 || v[a] > max[a] {
				max[a] = v[a]
			}
		}
	}
	return min, max
}

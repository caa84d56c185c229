package bolt

import (
	"errors"
	"fmt"
)

type Region string

const (
	RegionHead  Region = "HEAD"
	RegionShank Region = "SHANK"
)

// ErrInvalidParameter is matched by every InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

type Parameters struct {
	HeadDiameter  float64 `json:"head_diameter" yaml:"head_diameter"`
	HeadThickness float64 `json:"head_thickness" yaml:"head_thickness"`
	ShankDiameter float64 `json:"shank_diameter" yaml:"shank_diameter"`
	ShankLength   float64 `json:"shank_length" yaml:"shank_length"`
	ElementSize   float64 `json:"element_size" yaml:"element_size"`
}

// TotalLength is the distance from the head top face to the shank tip.
func (p Parameters) TotalLength() float64 {
	return p.HeadThickness + p.ShankLength
}

type Node struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

type Element struct {
	ID      int    `json:"id"`
	Nodes   []int  `json:"nodes"`
	Section Region `json:"section"`
}

// Ring is one axial level of the revolved surface. Its nodes are
// FirstNode .. FirstNode+segments-1 in angular order.
type Ring struct {
	Index     int     `json:"index"`
	Z         float64 `json:"z"`
	Radius    float64 `json:"radius"`
	Region    Region  `json:"region"`
	FirstNode int     `json:"first_node"`
}

// Model is the meshed bolt. It is built once and only read afterwards;
// views must not modify the slices.
type Model struct {
	Params   Parameters `json:"parameters"`
	Segments int        `json:"segments"`
	HeadDiv  int        `json:"head_divisions"`
	ShankDiv int        `json:"shank_divisions"`
	Rings    []Ring     `json:"rings"`
	Nodes    []Node     `json:"nodes"`
	Elements []Element  `json:"elements"`
}

// RingNodes returns the node IDs of ring i in angular order.
func (m *Model) RingNodes(i int) []int {
	r := m.Rings[i]
	ids := make([]int, m.Segments)
	for s := range ids {
		ids[s] = r.FirstNode + s
	}
	return ids
}

// Node looks up a node by its 1-based ID.
func (m *Model) Node(id int) (Node, bool) {
	if id < 1 || id > len(m.Nodes) {
		return Node{}, false
	}
	return m.Nodes[id-1], true
}

// ElementsIn returns the IDs of elements assigned to region r, in order.
func (m *Model) ElementsIn(r Region) []int {
	var ids []int
	for _, e := range m.Elements {
		if e.Section == r {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

type Stats struct {
	Segments       int     `json:"segments"`
	HeadDivisions  int     `json:"head_divisions"`
	ShankDivisions int     `json:"shank_divisions"`
	Rings          int     `json:"rings"`
	Nodes          int     `json:"nodes"`
	Elements       int     `json:"elements"`
	TotalLengthMM  float64 `json:"total_length_mm"`
}

func (m *Model) Stats() Stats {
	return Stats{
		Segments:       m.Segments,
		HeadDivisions:  m.HeadDiv,
		ShankDivisions: m.ShankDiv,
		Rings:          len(m.Rings),
		Nodes:          len(m.Nodes),
		Elements:       len(m.Elements),
		TotalLengthMM:  m.Params.TotalLength(),
	}
}

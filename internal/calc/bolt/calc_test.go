package bolt

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleParams() Parameters {
	return Parameters{
		HeadDiameter:  20,
		HeadThickness: 5,
		ShankDiameter: 10,
		ShankLength:   30,
		ElementSize:   5,
	}
}

func TestBuildExampleCounts(t *testing.T) {
	m, err := Build(exampleParams())
	require.NoError(t, err)

	assert.Equal(t, 1, m.HeadDiv)
	assert.Equal(t, 6, m.ShankDiv)
	assert.Len(t, m.Rings, 7)
	assert.Len(t, m.Nodes, 7*DefaultSegments)
	assert.Len(t, m.Elements, 6*DefaultSegments)

	st := m.Stats()
	assert.Equal(t, 84, st.Nodes)
	assert.Equal(t, 72, st.Elements)
	assert.InDelta(t, 35.0, st.TotalLengthMM, 1e-9)
}

func TestBuildDenseIDsAndIntegrity(t *testing.T) {
	cases := []Parameters{
		exampleParams(),
		{HeadDiameter: 20, HeadThickness: 8, ShankDiameter: 12, ShankLength: 40, ElementSize: 2},
		{HeadDiameter: 13, HeadThickness: 0.7, ShankDiameter: 8, ShankLength: 3.3, ElementSize: 0.25},
		{HeadDiameter: 5, HeadThickness: 1, ShankDiameter: 1, ShankLength: 1, ElementSize: 50},
	}
	for _, p := range cases {
		m, err := Build(p)
		require.NoError(t, err)
		require.NotEmpty(t, m.Nodes)
		require.NotEmpty(t, m.Elements)

		for i, n := range m.Nodes {
			assert.Equal(t, i+1, n.ID)
		}
		for i, e := range m.Elements {
			assert.Equal(t, i+1, e.ID)
			require.Len(t, e.Nodes, 4)
			for _, id := range e.Nodes {
				_, ok := m.Node(id)
				assert.True(t, ok, "element %d references missing node %d", e.ID, id)
			}
		}
	}
}

func TestBuildSeamless(t *testing.T) {
	m, err := Build(exampleParams())
	require.NoError(t, err)

	for k := 0; k+1 < len(m.Rings); k++ {
		upper := m.RingNodes(k)
		first, last := upper[0], upper[len(upper)-1]
		found := false
		for _, e := range m.Elements {
			if contains(e.Nodes, first) && contains(e.Nodes, last) {
				found = true
				break
			}
		}
		assert.True(t, found, "ring %d has a seam between nodes %d and %d", k, last, first)
	}
}

func TestBuildEveryNodeUsedFourTimesInInteriorRings(t *testing.T) {
	m, err := Build(exampleParams())
	require.NoError(t, err)

	uses := make(map[int]int)
	for _, e := range m.Elements {
		for _, id := range e.Nodes {
			uses[id]++
		}
	}
	for k := range m.Rings {
		want := 4
		if k == 0 || k == len(m.Rings)-1 {
			want = 2
		}
		for _, id := range m.RingNodes(k) {
			assert.Equal(t, want, uses[id], "node %d in ring %d", id, k)
		}
	}
}

func TestBuildGeometry(t *testing.T) {
	p := exampleParams()
	m, err := Build(p)
	require.NoError(t, err)

	assert.InDelta(t, p.HeadThickness, m.Rings[0].Z, 1e-12)
	assert.InDelta(t, -p.ShankLength, m.Rings[len(m.Rings)-1].Z, 1e-12)
	for _, r := range m.Rings {
		if r.Region == RegionHead {
			assert.Greater(t, r.Z, 0.0)
			assert.Equal(t, p.HeadDiameter/2, r.Radius)
		} else {
			assert.Less(t, r.Z, 0.0)
			assert.Equal(t, p.ShankDiameter/2, r.Radius)
		}
		for _, id := range m.RingNodes(r.Index) {
			n, _ := m.Node(id)
			assert.InDelta(t, r.Radius, math.Hypot(n.X, n.Y), 1e-9)
			assert.Equal(t, r.Z, n.Z)
		}
	}
}

func TestBuildOutwardNormals(t *testing.T) {
	m, err := Build(exampleParams())
	require.NoError(t, err)

	for _, e := range m.Elements {
		a, _ := m.Node(e.Nodes[0])
		b, _ := m.Node(e.Nodes[1])
		d, _ := m.Node(e.Nodes[3])
		u := [3]float64{b.X - a.X, b.Y - a.Y, b.Z - a.Z}
		v := [3]float64{d.X - a.X, d.Y - a.Y, d.Z - a.Z}
		n := [3]float64{u[1]*v[2] - u[2]*v[1], u[2]*v[0] - u[0]*v[2], u[0]*v[1] - u[1]*v[0]}
		assert.Greater(t, n[0]*a.X+n[1]*a.Y, 0.0, "element %d faces inward", e.ID)
	}
}

func TestBuildClampsShortSections(t *testing.T) {
	p := Parameters{HeadDiameter: 20, HeadThickness: 2, ShankDiameter: 10, ShankLength: 3, ElementSize: 8}
	m, err := Build(p)
	require.NoError(t, err)

	assert.Equal(t, 1, m.HeadDiv)
	assert.Equal(t, 1, m.ShankDiv)
	assert.Len(t, m.Rings, 2)
	assert.Len(t, m.Elements, DefaultSegments)
}

func TestBuildRegions(t *testing.T) {
	p := Parameters{HeadDiameter: 20, HeadThickness: 8, ShankDiameter: 12, ShankLength: 40, ElementSize: 2}
	m, err := Build(p)
	require.NoError(t, err)

	head := m.ElementsIn(RegionHead)
	shank := m.ElementsIn(RegionShank)
	assert.Len(t, head, m.HeadDiv*m.Segments)
	assert.Len(t, shank, (m.ShankDiv-1)*m.Segments)
	assert.Equal(t, len(m.Elements), len(head)+len(shank))
}

func TestBuildCustomSegments(t *testing.T) {
	m, err := BuildWith(exampleParams(), Options{Segments: 36})
	require.NoError(t, err)
	assert.Len(t, m.Nodes, 7*36)
	assert.Len(t, m.Elements, 6*36)

	_, err = BuildWith(exampleParams(), Options{Segments: 2})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(exampleParams())
	require.NoError(t, err)
	b, err := Build(exampleParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildInvalidParameters(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Parameters)
		field  string
	}{
		"shank wider than head": {func(p *Parameters) { p.ShankDiameter, p.HeadDiameter = 20, 10 }, "shank_diameter"},
		"shank equals head":     {func(p *Parameters) { p.ShankDiameter = p.HeadDiameter }, "shank_diameter"},
		"zero element size":     {func(p *Parameters) { p.ElementSize = 0 }, "element_size"},
		"negative length":       {func(p *Parameters) { p.ShankLength = -1 }, "shank_length"},
		"nan thickness":         {func(p *Parameters) { p.HeadThickness = math.NaN() }, "head_thickness"},
		"infinite diameter":     {func(p *Parameters) { p.HeadDiameter = math.Inf(1) }, "head_diameter"},
		"ratio beyond int":      {func(p *Parameters) { p.ShankLength, p.ElementSize = 1e20, 1 }, "element_size"},
		"tiny element size":     {func(p *Parameters) { p.ElementSize = 1e-15 }, "element_size"},
		"moderate element size": {func(p *Parameters) { p.ElementSize = 1e-6 }, "element_size"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := exampleParams()
			tc.mutate(&p)
			m, err := Build(p)
			assert.Nil(t, m)
			require.ErrorIs(t, err, ErrInvalidParameter)

			var ipe *InvalidParameterError
			require.True(t, errors.As(err, &ipe))
			assert.Equal(t, tc.field, ipe.Field)
		})
	}
}

func TestBuildDivisionLimit(t *testing.T) {
	p := exampleParams()
	p.ShankLength = MaxDivisions
	p.ElementSize = 1
	m, err := Build(p)
	require.NoError(t, err)
	assert.Equal(t, MaxDivisions, m.ShankDiv)

	p.ShankLength = MaxDivisions + 1
	_, err = Build(p)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestBuildSegmentLimit(t *testing.T) {
	_, err := BuildWith(exampleParams(), Options{Segments: MaxSegments + 1})
	var ipe *InvalidParameterError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, "segments", ipe.Field)

	// Both limits pass on their own but the node count does not.
	p := exampleParams()
	p.ShankLength, p.ElementSize = MaxDivisions, 1
	_, err = BuildWith(p, Options{Segments: MaxSegments})
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, "element_size", ipe.Field)
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

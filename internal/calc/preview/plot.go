package preview

import (
	"fmt"
	"image/color"
	"io"

	"boltgen/internal/calc/bolt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type View string

const (
	ViewSide View = "side"
	ViewTop  View = "top"
)

var (
	lineColor  = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	headColor  = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	shankColor = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// Plot projects the mesh onto the XZ plane (side) or the XY plane (top).
func Plot(m *bolt.Model, view View) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "X (mm)"
	switch view {
	case ViewSide:
		p.Title.Text = "Bolt mesh, side view"
		p.Y.Label.Text = "Z (mm)"
	case ViewTop:
		p.Title.Text = "Bolt mesh, top view"
		p.Y.Label.Text = "Y (mm)"
	default:
		return nil, fmt.Errorf("unknown view %q", view)
	}

	project := func(n bolt.Node) plotter.XY {
		if view == ViewTop {
			return plotter.XY{X: n.X, Y: n.Y}
		}
		return plotter.XY{X: n.X, Y: n.Z}
	}

	sc := NewScene(m)
	lines := sc.Meridians
	if view == ViewTop {
		lines = sc.Rings
	}
	for _, ids := range lines {
		pts := make(plotter.XYs, len(ids))
		for i, id := range ids {
			n, _ := m.Node(id)
			pts[i] = project(n)
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(0.5)
		l.LineStyle.Color = lineColor
		p.Add(l)
	}

	for _, region := range []bolt.Region{bolt.RegionHead, bolt.RegionShank} {
		var pts plotter.XYs
		for _, r := range m.Rings {
			if r.Region != region {
				continue
			}
			for _, id := range m.RingNodes(r.Index) {
				n, _ := m.Node(id)
				pts = append(pts, project(n))
			}
		}
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(1.5)
		s.GlyphStyle.Color = headColor
		if region == bolt.RegionShank {
			s.GlyphStyle.Color = shankColor
		}
		p.Add(s)
		p.Legend.Add(string(region), s)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

// WritePNG renders the projection as a PNG image.
func WritePNG(w io.Writer, m *bolt.Model, view View, width, height vg.Length) error {
	p, err := Plot(m, view)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

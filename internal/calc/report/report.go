package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"boltgen/internal/calc/bolt"
	"boltgen/internal/calc/preview"

	"github.com/microcosm-cc/bluemonday"
	"github.com/phpdave11/gofpdf"
	"gonum.org/v1/plot/vg"
)

type Input struct {
	bolt.Parameters
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

// Write renders a one-page A4 summary of the model with its side view.
// A zero date leaves the date line out.
func Write(w io.Writer, in Input, m *bolt.Model, date time.Time) error {
	in = in.plain()
	if in.Title == "" {
		in.Title = "Bolt Model Report"
	}

	var img bytes.Buffer
	if err := preview.WritePNG(&img, m, preview.ViewSide, 4*vg.Inch, 5*vg.Inch); err != nil {
		return fmt.Errorf("side view: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreator("boltgen", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if in.Project != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Project: %s", in.Project))
		pdf.Ln(6)
	}
	if in.Author != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Author: %s", in.Author))
		pdf.Ln(6)
	}
	if !date.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	p := m.Params
	st := m.Stats()
	table(pdf, "Parameters", [][2]string{
		{"Head diameter", mm(p.HeadDiameter)},
		{"Head thickness", mm(p.HeadThickness)},
		{"Shank diameter", mm(p.ShankDiameter)},
		{"Shank length", mm(p.ShankLength)},
		{"Element size", mm(p.ElementSize)},
		{"Total length", mm(p.TotalLength())},
	})
	table(pdf, "Mesh", [][2]string{
		{"Segments per ring", fmt.Sprint(st.Segments)},
		{"Head divisions", fmt.Sprint(st.HeadDivisions)},
		{"Shank divisions", fmt.Sprint(st.ShankDivisions)},
		{"Rings", fmt.Sprint(st.Rings)},
		{"Nodes", fmt.Sprint(st.Nodes)},
		{"Elements", fmt.Sprint(st.Elements)},
	})

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("side", opts, &img)
	pdf.ImageOptions("side", 110, 32, 85, 0, false, opts, 0, "")

	if in.Notes != "" {
		pdf.SetY(150)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, in.Notes, "", "L", false)
	}

	return pdf.Output(w)
}

var strict = bluemonday.StrictPolicy()

// plain strips markup pasted into the free-text fields; the PDF prints them verbatim.
func (in Input) plain() Input {
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
	}
	in.Project = clean(in.Project)
	in.Author = clean(in.Author)
	in.Title = clean(in.Title)
	in.Notes = clean(in.Notes)
	return in
}

func table(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(50, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func mm(v float64) string {
	return fmt.Sprintf("%.2f mm", v)
}

package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"boltgen/internal/calc/bolt"

	"github.com/xuri/excelize/v2"
)

const (
	SheetParameters = "Parameters"
	SheetNodes      = "Nodes"
	SheetElements   = "Elements"
)

// WriteWorkbook exports the parameters, node table and element table.
func WriteWorkbook(w io.Writer, m *bolt.Model) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetParameters); err != nil {
		return err
	}
	p := m.Params
	st := m.Stats()
	rows := [][]interface{}{
		{"Field", "Value"},
		{"head_diameter", p.HeadDiameter},
		{"head_thickness", p.HeadThickness},
		{"shank_diameter", p.ShankDiameter},
		{"shank_length", p.ShankLength},
		{"element_size", p.ElementSize},
		{"total_length", p.TotalLength()},
		{"segments", st.Segments},
		{"rings", st.Rings},
		{"nodes", st.Nodes},
		{"elements", st.Elements},
	}
	if err := setRows(f, SheetParameters, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetNodes); err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(m.Nodes)+1)
	rows = append(rows, []interface{}{"id", "x", "y", "z"})
	for _, n := range m.Nodes {
		rows = append(rows, []interface{}{n.ID, n.X, n.Y, n.Z})
	}
	if err := setRows(f, SheetNodes, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetElements); err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(m.Elements)+1)
	rows = append(rows, []interface{}{"id", "n1", "n2", "n3", "n4", "section"})
	for _, e := range m.Elements {
		row := []interface{}{e.ID}
		for _, id := range e.Nodes {
			row = append(row, id)
		}
		row = append(row, string(e.Section))
		rows = append(rows, row)
	}
	if err := setRows(f, SheetElements, rows); err != nil {
		return err
	}

	return f.Write(w)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// Row is one parameter set read from a spreadsheet. Line is the 1-based
// sheet row so errors can point back at the file.
type Row struct {
	Line   int
	Name   string
	Params bolt.Parameters
	Err    error
}

// ReadRows reads parameter sets from the first sheet. The first row is a
// header; columns are head_diameter, head_thickness, shank_diameter,
// shank_length, element_size and an optional name. Blank rows are skipped.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		out = append(out, parseRow(i+1, rows[i]))
	}
	return out, nil
}

func parseRow(line int, row []string) Row {
	res := Row{Line: line}
	if len(row) < 5 {
		res.Err = fmt.Errorf("expected 5 values, got %d", len(row))
		return res
	}
	dst := []*float64{
		&res.Params.HeadDiameter,
		&res.Params.HeadThickness,
		&res.Params.ShankDiameter,
		&res.Params.ShankLength,
		&res.Params.ElementSize,
	}
	for i, d := range dst {
		v, err := toFloat(row[i])
		if err != nil {
			res.Err = fmt.Errorf("column %d: %q is not a number", i+1, row[i])
			return res
		}
		*d = v
	}
	if len(row) > 5 {
		res.Name = strings.TrimSpace(row[5])
	}
	return res
}

// toFloat accepts a decimal comma as written by some spreadsheet locales.
func toFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boltgen/internal/calc/batch"
	"boltgen/internal/calc/bolt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exampleModel(t *testing.T) *bolt.Model {
	t.Helper()
	m, err := bolt.Build(bolt.Parameters{
		HeadDiameter:  20,
		HeadThickness: 5,
		ShankDiameter: 10,
		ShankLength:   30,
		ElementSize:   5,
	})
	require.NoError(t, err)
	return m
}

func TestWriteWorkbook(t *testing.T) {
	m := exampleModel(t)
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, m))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetParameters, SheetNodes, SheetElements}, f.GetSheetList())

	nodes, err := f.GetRows(SheetNodes)
	require.NoError(t, err)
	assert.Len(t, nodes, len(m.Nodes)+1)
	assert.Equal(t, []string{"id", "x", "y", "z"}, nodes[0])
	assert.Equal(t, "1", nodes[1][0])

	elems, err := f.GetRows(SheetElements)
	require.NoError(t, err)
	assert.Len(t, elems, len(m.Elements)+1)
	assert.Equal(t, []string{"1", "1", "13", "14", "2", "HEAD"}, elems[1])
}

// workbook builds an xlsx with the given rows on its first sheet.
func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, setRows(f, "Sheet1", rows))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadRows(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"head_diameter", "head_thickness", "shank_diameter", "shank_length", "element_size", "name"},
		{20, 5, 10, 30, 5, "M10"},
		{},
		{"12,5", 4, 8, 20, 2},
		{20, "abc", 10, 30, 5},
		{20, 5},
	})
	rows, err := ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "M10", rows[0].Name)
	assert.NoError(t, rows[0].Err)
	assert.Equal(t, 30.0, rows[0].Params.ShankLength)

	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, 12.5, rows[1].Params.HeadDiameter)

	assert.Error(t, rows[2].Err)
	assert.Error(t, rows[3].Err)
}

func TestReadRowsEmpty(t *testing.T) {
	buf := workbook(t, [][]interface{}{{"header"}})
	_, err := ReadRows(buf)
	assert.Error(t, err)

	_, err = ReadRows(strings.NewReader("not a workbook"))
	assert.Error(t, err)
}

func importRequest(t *testing.T, buf *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "bolts.xlsx")
	require.NoError(t, err)
	_, err = part.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/bolt/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h := &Handler{Options: bolt.DefaultOptions()}
	h.Import(rec, req)
	return rec
}

func TestImportHandler(t *testing.T) {
	rec := importRequest(t, workbook(t, [][]interface{}{
		{"head_diameter", "head_thickness", "shank_diameter", "shank_length", "element_size"},
		{20, 5, 10, 30, 5},
		{10, 5, 20, 30, 5},
		{20, 5, 10, 30, 1e-15},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	var res ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 84, res.Results[0].Stats.Nodes)
	assert.Equal(t, 3, res.Results[1].Line)
	assert.Contains(t, res.Results[2].Error, "element_size")
}

func TestImportHandlerTooManyRows(t *testing.T) {
	rows := [][]interface{}{{"head_diameter", "head_thickness", "shank_diameter", "shank_length", "element_size"}}
	for i := 0; i <= batch.MaxItems; i++ {
		rows = append(rows, []interface{}{20, 5, 10, 30, 5})
	}
	rec := importRequest(t, workbook(t, rows))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many rows")
}

func TestExportHandler(t *testing.T) {
	form := "head_diameter=20&head_thickness=5&shank_diameter=10&shank_length=30&element_size=5"
	req := httptest.NewRequest(http.MethodPost, "/api/bolt/xlsx", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h := &Handler{Options: bolt.DefaultOptions()}
	h.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), SheetNodes)
}

package preview

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boltgen/internal/calc/bolt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
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

func TestNewScene(t *testing.T) {
	m := exampleModel(t)
	sc := NewScene(m)

	assert.Len(t, sc.Points, len(m.Nodes))
	assert.Len(t, sc.Rings, 7)
	assert.Len(t, sc.Meridians, bolt.DefaultSegments)

	for _, ring := range sc.Rings {
		require.Len(t, ring, bolt.DefaultSegments+1)
		assert.Equal(t, ring[0], ring[len(ring)-1], "ring is not closed")
	}
	for s, line := range sc.Meridians {
		require.Len(t, line, len(m.Rings))
		assert.Equal(t, s+1, line[0])
	}
	assert.Equal(t, m.Stats(), sc.Stats)
}

func TestSceneBounds(t *testing.T) {
	min, max := NewScene(exampleModel(t)).Bounds()
	assert.InDelta(t, -10, min[0], 1e-9)
	assert.InDelta(t, 10, max[0], 1e-9)
	assert.InDelta(t, -30, min[2], 1e-9)
	assert.InDelta(t, 5, max[2], 1e-9)
}

func TestWritePNG(t *testing.T) {
	m := exampleModel(t)
	for _, view := range []View{ViewSide, ViewTop} {
		var buf bytes.Buffer
		require.NoError(t, WritePNG(&buf, m, view, 3*vg.Inch, 3*vg.Inch))
		_, err := png.Decode(&buf)
		assert.NoError(t, err, "view %s", view)
	}

	_, err := Plot(m, View("iso"))
	assert.Error(t, err)
}

func TestSceneHandler(t *testing.T) {
	h := &Handler{Options: bolt.DefaultOptions()}
	body := `{"head_diameter":20,"head_thickness":5,"shank_diameter":10,"shank_length":30,"element_size":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/bolt/model", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Scene(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var sc Scene
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sc))
	assert.Equal(t, 84, sc.Stats.Nodes)
	assert.Len(t, sc.Points, 84)
}

func TestImageHandlerRejectsInvalid(t *testing.T) {
	h := &Handler{Options: bolt.DefaultOptions()}
	body := `{"head_diameter":10,"head_thickness":5,"shank_diameter":20,"shank_length":30,"element_size":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/bolt/preview.png", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Image(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Package web serves the parameter form page.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"boltgen/internal/calc/presets"
	"boltgen/internal/logger"
)

//go:embed templates/index.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/index.html"))

type field struct {
	Name  string
	Label string
	Value string
}

type pageData struct {
	Catalog *presets.Catalog
	Fields  []field
}

type Handler struct {
	Catalog *presets.Catalog
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	p := h.Catalog.DefaultPreset()
	data := pageData{
		Catalog: h.Catalog,
		Fields: []field{
			{"head_diameter", "Head Diameter", format(p.HeadDiameter)},
			{"head_thickness", "Head Thickness", format(p.HeadThickness)},
			{"shank_diameter", "Shank Diameter", format(p.ShankDiameter)},
			{"shank_length", "Shank Length", format(p.ShankLength)},
			{"element_size", "Element Size", format(p.ElementSize)},
		},
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		logger.Error().Err(err).Msg("render form page")
		http.Error(w, "Page error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

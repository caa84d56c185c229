package preview

import (
	"bytes"
	"encoding/json"
	"net/http"

	"boltgen/internal/calc/bolt"

	"gonum.org/v1/plot/vg"
)

type Handler struct {
	Options bolt.Options
}

func (h *Handler) Scene(w http.ResponseWriter, r *http.Request) {
	bh := bolt.Handler{Options: h.Options}
	m, err := bh.Build(r)
	if err != nil {
		bolt.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NewScene(m))
}

// Image serves a PNG projection; ?view=top switches from the side view.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	view := ViewSide
	if r.URL.Query().Get("view") == string(ViewTop) {
		view = ViewTop
	}
	bh := bolt.Handler{Options: h.Options}
	m, err := bh.Build(r)
	if err != nil {
		bolt.WriteError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, m, view, 6*vg.Inch, 6*vg.Inch); err != nil {
		bolt.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

package solid

import (
	"encoding/json"
	"net/http"

	"boltgen/internal/calc/bolt"
)

type Handler struct {
	Cells int
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	p, err := bolt.DecodeParameters(r)
	if err != nil {
		bolt.WriteError(w, r, err)
		return
	}
	mesh, err := Tessellate(p, h.Cells)
	if err != nil {
		bolt.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mesh)
}

package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"boltgen/internal/calc/batch"
	"boltgen/internal/calc/bolt"
	"boltgen/internal/logger"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Options bolt.Options
}

type ImportItem struct {
	Line int    `json:"line"`
	Name string `json:"name,omitempty"`
	batch.ItemResult
}

type ImportResult struct {
	Count   int          `json:"count"`
	Failed  int          `json:"failed"`
	Results []ImportItem `json:"results"`
}

// Export returns the mesh of the requested bolt as an xlsx workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	bh := bolt.Handler{Options: h.Options}
	m, err := bh.Build(r)
	if err != nil {
		bolt.WriteError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, m); err != nil {
		bolt.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"bolt_model.xlsx\"")
	w.Write(buf.Bytes())
}

// Import builds every parameter row of an uploaded workbook and reports
// per-row stats or errors.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		http.Error(w, "File too big", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ReadRows(file)
	if err != nil {
		logger.Warn().Err(err).Msg("workbook import rejected")
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	if len(rows) > batch.MaxItems {
		http.Error(w, fmt.Sprintf("Too many rows: %d > %d", len(rows), batch.MaxItems), http.StatusBadRequest)
		return
	}

	res := ImportResult{Results: make([]ImportItem, 0, len(rows))}
	for i, row := range rows {
		item := ImportItem{Line: row.Line, Name: row.Name}
		if row.Err != nil {
			item.ItemResult = batch.ItemResult{Index: i, Error: row.Err.Error()}
		} else {
			item.ItemResult = batch.Run(i, row.Params, h.Options)
		}
		if item.Error != "" {
			res.Failed++
		}
		res.Results = append(res.Results, item)
	}
	res.Count = len(res.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"boltgen/internal/calc/bolt"
)

type Handler struct {
	Options bolt.Options
	Now     func() time.Time
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		bolt.WriteError(w, r, err)
		return
	}
	m, err := bolt.BuildWith(input.Parameters, h.Options)
	if err != nil {
		bolt.WriteError(w, r, err)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	var buf bytes.Buffer
	if err := Write(&buf, input, m, now()); err != nil {
		bolt.WriteError(w, r, fmt.Errorf("report generation: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"bolt_report.pdf\"")
	w.Write(buf.Bytes())
}

func decodeInput(r *http.Request) (Input, error) {
	var input Input
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&input); err != nil {
			return Input{}, fmt.Errorf("%w: %v", bolt.ErrBadPayload, err)
		}
		return input, nil
	}
	p, err := bolt.DecodeParameters(r)
	if err != nil {
		return Input{}, err
	}
	input.Parameters = p
	input.Project = r.FormValue("project")
	input.Author = r.FormValue("author")
	input.Title = r.FormValue("title")
	input.Notes = r.FormValue("notes")
	return input, nil
}

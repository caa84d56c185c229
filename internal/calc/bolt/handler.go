package bolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"boltgen/internal/logger"
)

// ErrBadPayload marks a request body that could not be read as parameters.
var ErrBadPayload = errors.New("invalid request payload")

const maxBodySize = 1 << 20

type Handler struct {
	Options Options
}

type CalcResult struct {
	Stats Stats  `json:"stats"`
	Model *Model `json:"model"`
}

// Calc returns the whole mesh as JSON.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	m, err := h.Build(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CalcResult{Stats: m.Stats(), Model: m})
}

// Build decodes the request parameters and meshes them with h.Options.
func (h *Handler) Build(r *http.Request) (*Model, error) {
	p, err := DecodeParameters(r)
	if err != nil {
		return nil, err
	}
	return BuildWith(p, h.Options)
}

// DecodeParameters reads Parameters from a JSON body or from form fields.
func DecodeParameters(r *http.Request) (Parameters, error) {
	var p Parameters
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
		if err := dec.Decode(&p); err != nil {
			return Parameters{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		return p, nil
	}

	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodySize); err != nil {
			return Parameters{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
	} else if err := r.ParseForm(); err != nil {
		return Parameters{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	fields := []struct {
		name string
		dst  *float64
	}{
		{"head_diameter", &p.HeadDiameter},
		{"head_thickness", &p.HeadThickness},
		{"shank_diameter", &p.ShankDiameter},
		{"shank_length", &p.ShankLength},
		{"element_size", &p.ElementSize},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(r.FormValue(f.name))
		if raw == "" {
			return Parameters{}, fmt.Errorf("%w: missing field %s", ErrBadPayload, f.name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Parameters{}, fmt.Errorf("%w: field %s is not a number", ErrBadPayload, f.name)
		}
		*f.dst = v
	}
	return p, nil
}

// WriteError maps builder and decoding failures to HTTP responses.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidParameter):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrBadPayload):
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("bolt calculation failed")
		http.Error(w, "Calculation error", http.StatusInternalServerError)
	}
}

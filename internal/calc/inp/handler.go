package inp

import (
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"

	"boltgen/internal/calc/bolt"

	"golang.org/x/crypto/blake2b"
)

const FileName = "bolt_model.inp"

type Handler struct {
	Options bolt.Options
}

// Download builds the model from the request and returns the input file
// as an attachment. Identical parameters give identical bytes, so the
// digest doubles as a strong ETag.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	bh := bolt.Handler{Options: h.Options}
	m, err := bh.Build(r)
	if err != nil {
		bolt.WriteError(w, r, err)
		return
	}
	text, err := Serialize(m)
	if err != nil {
		bolt.WriteError(w, r, err)
		return
	}

	etag := ETag(text)
	if noneMatch(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+FileName+"\"")
	w.Header().Set("Content-Length", strconv.Itoa(len(text)))
	w.Header().Set("ETag", etag)
	w.Write([]byte(text))
}

// noneMatch reports whether an If-None-Match header lists etag. The
// comparison is weak: a W/ prefix on either side is ignored.
func noneMatch(header, etag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(tag), "W/") == want {
			return true
		}
	}
	return false
}

func ETag(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

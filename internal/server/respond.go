package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/bstardust/geophoto/internal/metadata"
)

// multipartOverhead is headroom for multipart boundaries and form fields
// on top of the image size ceiling.
const multipartOverhead = 1 << 20

// parse decodes the incoming request body as a JSON object, bounded by limit.
func parse(w http.ResponseWriter, r *http.Request, data interface{}, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return json.NewDecoder(r.Body).Decode(data)
}

// respond writes the output with JSON format.
func respond(w http.ResponseWriter, status int, data interface{}) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	return err
}

// render executes the page template into a buffer first, so a template
// failure can still produce a clean error response.
func (s *Server) render(w http.ResponseWriter, status int, page *pageData) error {
	if page.Categories == nil {
		page.Categories = metadata.Categories
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

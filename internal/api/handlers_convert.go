package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/doctext/doctext/docstring"
	"github.com/doctext/doctext/internal/extract"
)

// convertOptions carries per-request option overrides. Pointer fields
// distinguish "unset" from an explicit false/zero; unset fields fall back to
// the server defaults.
type convertOptions struct {
	IndentEmptyLines *bool   `json:"indent_empty_lines,omitempty"`
	MinimizeIndents  *bool   `json:"minimize_indents,omitempty"`
	ListWithIndent   *bool   `json:"list_with_indent,omitempty"`
	ListNoIndent     *bool   `json:"list_no_indent,omitempty"`
	TabSize          *int    `json:"tab_size,omitempty"`
	InBullets        *string `json:"in_bullets,omitempty"`
	OutBullets       *string `json:"out_bullets,omitempty"`
}

func (o convertOptions) apply(base docstring.Options) docstring.Options {
	if o.IndentEmptyLines != nil {
		base.IndentEmptyLines = *o.IndentEmptyLines
	}
	if o.MinimizeIndents != nil {
		base.MinimizeIndents = *o.MinimizeIndents
	}
	if o.ListWithIndent != nil {
		base.ListWithIndent = *o.ListWithIndent
	}
	if o.ListNoIndent != nil {
		base.ListNoIndent = *o.ListNoIndent
	}
	if o.TabSize != nil {
		base.TabSize = *o.TabSize
	}
	if o.InBullets != nil {
		base.InBullets = *o.InBullets
	}
	if o.OutBullets != nil {
		base.OutBullets = *o.OutBullets
	}
	return base
}

type convertRequest struct {
	Text    string         `json:"text"`
	Options convertOptions `json:"options"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req convertRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	conv, err := s.pool.Get(req.Options.apply(s.cfg.Convert))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"text": conv.Convert(req.Text)})
}

func (s *Server) handleConvertFile(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts, err := formOptions(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	conv, err := s.pool.Get(opts.apply(s.cfg.Convert))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename, data, status, err := s.readUpload(r, "file")
	if err != nil {
		jsonError(w, err.Error(), status)
		return
	}

	ex, err := extract.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pdfEx, ok := ex.(*extract.PDFExtractor); ok {
		pdfEx.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}
	text, err := ex.Extract(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "extract: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"filename": filename,
		"text":     conv.Convert(text),
	})
}

// readUpload pulls one uploaded file out of an already-parsed multipart
// form, enforcing the name and size limits.
func (s *Server) readUpload(r *http.Request, field string) (string, []byte, int, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, http.StatusBadRequest, fmt.Errorf("%s is required: %w", field, err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extract.IsSupportedExtension(filename) {
		return "", nil, http.StatusBadRequest, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", nil, http.StatusInternalServerError, fmt.Errorf("failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", nil, http.StatusRequestEntityTooLarge,
			fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return filename, data, 0, nil
}

// formOptions reads option overrides from multipart form values.
func formOptions(r *http.Request) (convertOptions, error) {
	var o convertOptions
	boolField := func(name string, dst **bool) error {
		v := r.FormValue(name)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = &b
		return nil
	}
	for name, dst := range map[string]**bool{
		"indent_empty_lines": &o.IndentEmptyLines,
		"minimize_indents":   &o.MinimizeIndents,
		"list_with_indent":   &o.ListWithIndent,
		"list_no_indent":     &o.ListNoIndent,
	} {
		if err := boolField(name, dst); err != nil {
			return o, err
		}
	}
	if v := r.FormValue("tab_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return o, fmt.Errorf("tab_size: %w", err)
		}
		o.TabSize = &n
	}
	if v := r.FormValue("in_bullets"); v != "" {
		o.InBullets = &v
	}
	if v := r.FormValue("out_bullets"); v != "" {
		o.OutBullets = &v
	}
	return o, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

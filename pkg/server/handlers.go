package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/balajikasiraj07/sqlonline/pkg/format"
	"github.com/pkg/errors"
)

const (
	fieldQuery       = "input-query"
	fieldIndentation = "indentation"

	errPrefix = "Error processing request: "
)

type (
	validateResponse struct {
		Valid       bool                `json:"valid"`
		Diagnostics []format.Diagnostic `json:"diagnostics"`
	}

	healthResponse struct {
		Status string `json:"status"`
	}
)

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	if status, err := s.parseForm(w, r); err != nil {
		writeError(w, status, err.Error())
		return
	}

	query := r.PostForm.Get(fieldQuery)
	if strings.TrimSpace(query) == "" {
		writeText(w, http.StatusBadRequest, "Input query is required")
		return
	}

	opts := s.cfg.FormatterOptions()
	if indent := r.PostForm.Get(fieldIndentation); indent != "" {
		opts.IndentUnit = indent
	}

	out, err := format.FormatString(opts, query)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Failed to format query",
			"err", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeText(w, http.StatusOK, out)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if status, err := s.parseForm(w, r); err != nil {
		writeError(w, status, err.Error())
		return
	}

	query := r.PostForm.Get(fieldQuery)
	if strings.TrimSpace(query) == "" {
		writeText(w, http.StatusBadRequest, "Input query is required")
		return
	}

	if limit := s.cfg.Format.MaxQuerySize; len(query) > limit {
		err := &format.SizeLimitError{Size: len(query), Limit: limit}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	diagnostics := format.Diagnose(query)
	if diagnostics == nil {
		diagnostics = []format.Diagnostic{}
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Valid:       len(diagnostics) == 0,
		Diagnostics: diagnostics,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// parseForm reads a urlencoded or multipart body no larger than the
// configured limit.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) (int, error) {
	limit := s.cfg.Server.MaxBodyBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	var err error
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(limit)
	} else {
		err = r.ParseForm()
	}

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, errors.New("request body too large")
		}
		return http.StatusBadRequest, errors.Wrap(err, "failed to parse form")
	}

	return 0, nil
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeText(w, status, errPrefix+msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

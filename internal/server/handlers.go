package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/sandboxer/pkg/button"
	"github.com/matzehuels/sandboxer/pkg/deps"
	"github.com/matzehuels/sandboxer/pkg/errors"
	"github.com/matzehuels/sandboxer/pkg/pipeline"
	"github.com/matzehuels/sandboxer/pkg/story"
)

// ResolveRequest is the body of POST /api/v1/resolve.
type ResolveRequest struct {
	Source string   `json:"source"`
	Base   deps.Map `json:"base"`
}

// ResolveResponse is the result of POST /api/v1/resolve.
type ResolveResponse struct {
	Dependencies deps.Map               `json:"dependencies"`
	Sources      map[string]deps.Source `json:"sources"`
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes an error.
type ErrorDetail struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	c, err := s.readStory(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.opts
	opts.Refresh = r.URL.Query().Get("refresh") == "true"

	res, err := s.runner.Export(r.Context(), *c, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if !res.OK() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (s *Server) handleButton(w http.ResponseWriter, r *http.Request) {
	c, err := s.readStory(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	a, _, err := button.Decorate(r.Context(), s.runner, *c, s.opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if a == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	html, err := a.HTML()
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render button"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := deps.ResolveDetailed(req.Source, req.Base, s.opts.Deps)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ResolveResponse{Dependencies: res.Dependencies, Sources: res.Sources})
}

func (s *Server) readStory(w http.ResponseWriter, r *http.Request) (*story.Context, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return story.DecodeJSON(data)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "error", err)
	}
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPackage, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeMissingSource, errors.ErrCodeMissingConfiguration, errors.ErrCodeUnresolvedRelativeImport:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

var _ button.Exporter = (*pipeline.Runner)(nil)

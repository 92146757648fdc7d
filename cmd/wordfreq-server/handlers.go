package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/cognicore/wordfreq/internal/source"
	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/rank"
	"github.com/cognicore/wordfreq/pkg/wordfreq/session"
	"github.com/cognicore/wordfreq/pkg/wordfreq/table"
)

const maxBodyBytes = 8 << 20

// ---- JSON types ---------------------------------------------------------

type countRequest struct {
	Text           string `json:"text"`
	HideSingletons bool   `json:"hide_singletons"`
}

type countResponse struct {
	Entries []rank.Entry `json:"entries"`
	Table   string       `json:"table"`
	Total   int          `json:"total"`
}

type sessionResponse struct {
	ID             string       `json:"id"`
	Counted        bool         `json:"counted"`
	HideSingletons bool         `json:"hide_singletons"`
	Entries        []rank.Entry `json:"entries"`
	Table          string       `json:"table"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- server -------------------------------------------------------------

type server struct {
	counter  session.Counter
	sessions *session.Manager
	logger   *zap.Logger
}

func newServer(counter session.Counter, logger *zap.Logger) *server {
	return &server{
		counter:  counter,
		sessions: session.NewManager(counter),
		logger:   logger,
	}
}

// routes returns the API handler wrapped in CORS and request logging.
func (s *server) routes(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/count", s.handleCount)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/count", s.handleSessionCount)
	mux.HandleFunc("POST /api/sessions/{id}/toggle", s.handleToggle)
	mux.HandleFunc("GET /api/sessions/{id}/export.csv", s.handleExport)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	})
	return c.Handler(s.logRequests(mux))
}

// ---- helpers ------------------------------------------------------------

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", zap.Error(err))
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeFailure maps an error to a status code.
func (s *server) writeFailure(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		s.writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, internalerr.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, internalerr.ErrNoResults):
		s.writeError(w, http.StatusConflict, "no results to export; count some text first")
	case errors.Is(err, internalerr.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// readCount decodes a count request. JSON bodies carry the text and toggle;
// text/html bodies are reduced to their text; anything else is raw text.
func readCount(r *http.Request) (countRequest, error) {
	var req countRequest
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, fmt.Errorf("read body: %w", err)
		}
		return req, errors.Join(err, internalerr.ErrInvalidInput)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json", "":
		if len(bytes.TrimSpace(body)) == 0 {
			return req, nil
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return req, errors.Join(errors.New("body must be JSON with a 'text' field"), internalerr.ErrInvalidInput)
		}
	case "text/html":
		req.Text, err = source.FromHTML(bytes.NewReader(body))
		if err != nil {
			return req, errors.Join(err, internalerr.ErrInvalidInput)
		}
	default:
		req.Text = string(body)
	}
	return req, nil
}

func viewOf(id string, sess *session.Session) sessionResponse {
	entries := sess.Visible()
	if entries == nil {
		entries = []rank.Entry{}
	}
	return sessionResponse{
		ID:             id,
		Counted:        sess.Counted(),
		HideSingletons: sess.HideSingletons(),
		Entries:        entries,
		Table:          sess.Render(),
	}
}

// ---- handlers -----------------------------------------------------------

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
}

func (s *server) handleCount(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := readCount(r)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	entries, err := s.counter.Count(req.Text)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	total := rank.Total(entries)
	if req.HideSingletons {
		entries = rank.FilterSingletons(entries)
	}
	s.writeJSON(w, http.StatusOK, countResponse{
		Entries: entries,
		Table:   table.Format(entries),
		Total:   total,
	})
}

func (s *server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := s.sessions.Create()
	var view sessionResponse
	err := s.sessions.With(id, func(sess *session.Session) error {
		view = viewOf(id, sess)
		return nil
	})
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	w.Header().Set("Location", "/api/sessions/"+id)
	s.writeJSON(w, http.StatusCreated, view)
}

func (s *server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var view sessionResponse
	err := s.sessions.With(id, func(sess *session.Session) error {
		view = viewOf(id, sess)
		return nil
	})
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSessionCount(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := readCount(r)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	id := r.PathValue("id")
	var view sessionResponse
	err = s.sessions.With(id, func(sess *session.Session) error {
		if err := sess.Count(req.Text); err != nil {
			return err
		}
		view = viewOf(id, sess)
		return nil
	})
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var view sessionResponse
	err := s.sessions.With(id, func(sess *session.Session) error {
		sess.ToggleSingletons()
		view = viewOf(id, sess)
		return nil
	})
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := s.sessions.With(r.PathValue("id"), func(sess *session.Session) error {
		return sess.ExportCSV(&buf)
	})
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="wordfreq.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ---- middleware ---------------------------------------------------------

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

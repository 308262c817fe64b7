package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/dialect"
)

// Client-facing error messages.
const (
	MsgRequiredMissing = "Required field(s) missing"
	MsgNoText          = "No text to translate"
	MsgTooManyTexts    = "Too many texts"
)

type errorResponse struct {
	Error string `json:"error"`
}

type translateRequest struct {
	Text   *string `json:"text"`
	Locale string  `json:"locale"`
}

type translateResponse struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

type batchRequest struct {
	Texts  []string `json:"texts"`
	Locale string   `json:"locale"`
}

type batchItem struct {
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
	Error       string `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

type healthResponse struct {
	Status            string `json:"status"`
	Version           string `json:"version"`
	TablesFingerprint string `json:"tables_fingerprint"`
	Rules             int    `json:"rules"`
}

func (s *Server) routes(reg *prometheus.Registry) {
	s.router.HandleFunc("POST /api/translate", s.handleTranslate)
	s.router.HandleFunc("POST /api/translate/batch", s.handleBatch)
	s.router.HandleFunc("GET /healthz", s.handleHealth)
	s.router.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
}

// handleTranslate answers every outcome, validation failures included, with
// status 200 and a JSON body.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTranslate(w, r)
	if !ok || req.Text == nil || req.Locale == "" {
		writeJSON(w, http.StatusOK, errorResponse{Error: MsgRequiredMissing})
		return
	}
	if *req.Text == "" {
		writeJSON(w, http.StatusOK, errorResponse{Error: MsgNoText})
		return
	}
	dir, err := dialect.ParseDirection(req.Locale)
	if err != nil {
		writeJSON(w, http.StatusOK, errorResponse{Error: dialect.InvalidLocaleMessage})
		return
	}

	result := s.translate(r, *req.Text, dir)
	writeJSON(w, http.StatusOK, translateResponse{Text: *req.Text, Translation: translation(result)})
}

func (s *Server) decodeTranslate(w http.ResponseWriter, r *http.Request) (translateRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	var req translateRequest
	if mediaType := contentType(r); mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := parseForm(r, mediaType, s.cfg.Server.MaxBodyBytes); err != nil {
			s.logDecodeError(r, err)
			return req, false
		}
		if values, ok := r.PostForm["text"]; ok && len(values) > 0 {
			req.Text = &values[0]
		}
		req.Locale = r.PostForm.Get("locale")
		return req, true
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logDecodeError(r, err)
		return req, false
	}
	return req, true
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logDecodeError(r, err)
		writeJSON(w, http.StatusOK, errorResponse{Error: MsgRequiredMissing})
		return
	}
	if req.Texts == nil || req.Locale == "" {
		writeJSON(w, http.StatusOK, errorResponse{Error: MsgRequiredMissing})
		return
	}
	if len(req.Texts) == 0 {
		writeJSON(w, http.StatusOK, errorResponse{Error: MsgNoText})
		return
	}
	if len(req.Texts) > s.cfg.Server.MaxBatch {
		writeJSON(w, http.StatusOK, errorResponse{Error: MsgTooManyTexts})
		return
	}
	dir, err := dialect.ParseDirection(req.Locale)
	if err != nil {
		writeJSON(w, http.StatusOK, errorResponse{Error: dialect.InvalidLocaleMessage})
		return
	}

	start := time.Now()
	results, err := s.translator.TranslateBatch(r.Context(), req.Texts, dir)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Int("texts", len(req.Texts)).Msg("batch translation aborted")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Translation aborted"})
		return
	}
	s.metrics.TranslationDuration.WithLabelValues(dir.String()).Observe(time.Since(start).Seconds())

	resp := batchResponse{Results: make([]batchItem, len(req.Texts))}
	for i, text := range req.Texts {
		item := batchItem{Text: text}
		if text == "" {
			item.Error = MsgNoText
		} else {
			s.metrics.Translations.WithLabelValues(dir.String(), string(results[i].Outcome)).Inc()
			item.Translation = translation(results[i])
		}
		resp.Results[i] = item
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "ok",
		Version:           dialect.FullVersion(),
		TablesFingerprint: s.translator.Fingerprint(),
		Rules:             s.translator.Tables().Len(),
	})
}

func (s *Server) translate(r *http.Request, text string, dir dialect.Direction) dialect.Result {
	start := time.Now()
	result := s.translator.Translate(r.Context(), text, dir)
	s.metrics.TranslationDuration.WithLabelValues(dir.String()).Observe(time.Since(start).Seconds())
	s.metrics.Translations.WithLabelValues(dir.String(), string(result.Outcome)).Inc()
	return result
}

func (s *Server) logDecodeError(r *http.Request, err error) {
	event := zerolog.Ctx(r.Context()).Debug()
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		event = zerolog.Ctx(r.Context()).Warn().Int64("limit", tooLarge.Limit)
	}
	event.Err(err).Msg("decoding request body")
}

// translation is the reply text for result: the highlighted output, or the
// fixed message when nothing changed.
func translation(result dialect.Result) string {
	if !result.Changed() {
		return dialect.NoChangeMessage
	}
	return result.Highlighted
}

func contentType(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}

func parseForm(r *http.Request, mediaType string, maxMemory int64) error {
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxMemory)
	}
	return r.ParseForm()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

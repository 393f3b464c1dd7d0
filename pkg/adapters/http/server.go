// Package http exposes a jza engine as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/jza"
	"github.com/aretw0/jza/internal/logging"
	"github.com/aretw0/jza/internal/presentation/graph"
	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/observability"
)

// Engine defines what the server needs from the jza engine.
type Engine interface {
	Parse(symbols ...string) ([]domain.Symbol, error)
	Diagnose(symbols []domain.Symbol) *jza.Failure
	Analyze(symbols []domain.Symbol) [][]string
	Generate(req jza.GenerateRequest) (*automaton.Sequence, error)
	Reharmonize(symbols []domain.Symbol, index int) (*automaton.Sequence, error)
	StateProbabilities(sym domain.Symbol) automaton.Distribution
	Stats() jza.Stats
	Read(fn func(a *automaton.Automaton) error) error
}

// Server holds the HTTP handlers.
type Server struct {
	Engine  Engine
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records request metrics and serves them on /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/validate", s.Validate)
	r.Post("/analyze", s.Analyze)
	r.Post("/generate", s.Generate)
	r.Post("/reharmonize", s.Reharmonize)
	r.Get("/probabilities/{symbol}", s.GetProbabilities)
	r.Get("/graph", s.GetGraph)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(status), time.Since(start))
		}
		s.logger.Debug("request served", "method", r.Method, "route", route, "status", status, "duration", time.Since(start))
	})
}

// SymbolsRequest carries a chord progression in Mehegan notation.
type SymbolsRequest struct {
	Symbols []string `json:"symbols"`
	Index   int      `json:"index,omitempty"`
}

// GenerateRequest is the body of POST /generate. A zero length samples a walk
// of any length.
type GenerateRequest struct {
	Length int    `json:"length"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Key    string `json:"key,omitempty"`
}

// SequenceResponse describes a walk.
type SequenceResponse struct {
	Symbols []string `json:"symbols"`
	States  []string `json:"states"`
	Chords  []string `json:"chords,omitempty"`
}

// FailureResponse describes where a progression stops being readable.
type FailureResponse struct {
	Index           int      `json:"index"`
	Symbol          string   `json:"symbol,omitempty"`
	InvalidEndState bool     `json:"invalidEndState"`
	PreviousStates  []string `json:"previousStates"`
}

// ValidateResponse is the body returned by POST /validate.
type ValidateResponse struct {
	Accepted bool             `json:"accepted"`
	Failure  *FailureResponse `json:"failure,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSymbol), errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, domain.ErrEmptySequence):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnreachableSymbol), errors.Is(err, domain.ErrGenerationFailed),
		errors.Is(err, domain.ErrNoViableChoice):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Warn(op+" rejected", "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

func (s *Server) symbols(w http.ResponseWriter, r *http.Request) (SymbolsRequest, []domain.Symbol, bool) {
	var body SymbolsRequest
	if !s.decode(w, r, &body) {
		return body, nil, false
	}
	syms, err := s.Engine.Parse(body.Symbols...)
	if err != nil {
		s.writeError(w, "parse", err)
		return body, nil, false
	}
	return body, syms, true
}

func sequenceResponse(seq *automaton.Sequence, key string) (SequenceResponse, error) {
	resp := SequenceResponse{}
	for _, sym := range seq.Symbols() {
		resp.Symbols = append(resp.Symbols, sym.String())
	}
	for _, st := range seq.States() {
		resp.States = append(resp.States, st.Name)
	}
	if key != "" {
		chords, err := seq.Chords(key)
		if err != nil {
			return resp, err
		}
		resp.Chords = chords
	}
	return resp, nil
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":     "jza-http",
		"version": strings.TrimSpace(jza.Version),
		"model":   s.Engine.Stats(),
	})
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	_, syms, ok := s.symbols(w, r)
	if !ok {
		return
	}

	report := s.Engine.Diagnose(syms)
	if report == nil {
		s.writeJSON(w, http.StatusOK, ValidateResponse{Accepted: true})
		return
	}

	failure := &FailureResponse{
		Index:           report.Index,
		InvalidEndState: report.InvalidEndState,
		PreviousStates:  report.PreviousStates,
	}
	if report.Symbol != nil {
		failure.Symbol = report.Symbol.String()
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{Failure: failure})
}

// Analyze handles the POST /analyze request.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	_, syms, ok := s.symbols(w, r)
	if !ok {
		return
	}
	paths := s.Engine.Analyze(syms)
	if paths == nil {
		paths = [][]string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"paths": paths})
}

// Generate handles the POST /generate request.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if !s.decode(w, r, &body) {
		return
	}
	ends, err := s.Engine.Parse(body.Start, body.End)
	if err != nil {
		s.writeError(w, "generate", err)
		return
	}

	seq, err := s.Engine.Generate(jza.GenerateRequest{Length: body.Length, Start: ends[0], End: ends[1]})
	if err != nil {
		s.writeError(w, "generate", err)
		return
	}
	resp, err := sequenceResponse(seq, body.Key)
	if err != nil {
		s.writeError(w, "generate", err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// Reharmonize handles the POST /reharmonize request.
func (s *Server) Reharmonize(w http.ResponseWriter, r *http.Request) {
	body, syms, ok := s.symbols(w, r)
	if !ok {
		return
	}
	seq, err := s.Engine.Reharmonize(syms, body.Index)
	if err != nil {
		s.writeError(w, "reharmonize", err)
		return
	}
	resp, err := sequenceResponse(seq, "")
	if err != nil {
		s.writeError(w, "reharmonize", err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetProbabilities handles the GET /probabilities/{symbol} request.
func (s *Server) GetProbabilities(w http.ResponseWriter, r *http.Request) {
	syms, err := s.Engine.Parse(chi.URLParam(r, "symbol"))
	if err != nil {
		s.writeError(w, "probabilities", err)
		return
	}
	d := s.Engine.StateProbabilities(syms[0])
	if d == nil {
		d = automaton.Distribution{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"symbol": syms[0].String(), "states": d})
}

// GetGraph handles the GET /graph request. It returns a Mermaid flowchart;
// ?trained=true drops untrained edges and ?probabilities=true labels edges.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := graph.Options{
		TrainedOnly:   q.Get("trained") == "true",
		Probabilities: q.Get("probabilities") == "true",
	}

	var out string
	_ = s.Engine.Read(func(a *automaton.Automaton) error {
		out = graph.GenerateMermaid(a, opts, nil)
		return nil
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprint(w, out); err != nil {
		s.logger.Error("graph write failed", "err", err)
	}
}

package jza

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/aretw0/jza/internal/logging"
	"github.com/aretw0/jza/pkg/adapters/memory"
	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/builder"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/ports"
	"github.com/aretw0/jza/pkg/symbol"
)

// Version is the release of the jza engine.
const Version = "0.3.0"

// DefaultModel is the store name used when none is configured.
const DefaultModel = "default"

// Engine is the high-level entry point of the library. It serializes training
// and model loading against concurrent reads and generation.
type Engine struct {
	mu        sync.RWMutex
	automaton *automaton.Automaton

	store        ports.ModelStore
	table        *symbol.Table
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	rng          automaton.Rand
	autoOpts     []automaton.Option
	operations   []string
	allowRepeats bool

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets the model store used by Load and Save. Defaults to memory.
func WithStore(store ports.ModelStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets a custom structured logger for the engine and its automaton.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks on the automaton.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithName sets the model name used in the store.
func WithName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.Name = name
		}
	}
}

// WithSeed makes generation deterministic for a given sequence of calls.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = automaton.Synchronized(automaton.NewSeededRand(seed))
	}
}

// WithLimits bounds retries and walk lengths of generation.
func WithLimits(maxRetries, maxSteps int) Option {
	return func(e *Engine) {
		e.autoOpts = append(e.autoOpts, automaton.WithMaxRetries(maxRetries), automaton.WithMaxSteps(maxSteps))
	}
}

// WithOperations selects the builder operations applied to a fresh model.
// Defaults to builder.DefaultOrder.
func WithOperations(names ...string) Option {
	return func(e *Engine) {
		e.operations = names
	}
}

// WithAllowRepeats lets edits place the same symbol twice in a row.
func WithAllowRepeats(allow bool) Option {
	return func(e *Engine) {
		e.allowRepeats = allow
	}
}

// New creates an engine holding a freshly built, untrained automaton.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		store:      memory.NewStore(),
		table:      symbol.NewTable(),
		logger:     logging.NewNop(),
		operations: builder.DefaultOrder,
		Name:       DefaultModel,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("model", e.Name)

	a, err := e.build()
	if err != nil {
		return nil, err
	}
	e.automaton = a
	return e, nil
}

func (e *Engine) automatonOptions() []automaton.Option {
	opts := []automaton.Option{
		automaton.WithLogger(e.logger),
		automaton.WithHooks(e.hooks),
	}
	if e.rng != nil {
		opts = append(opts, automaton.WithRand(e.rng))
	}
	return append(opts, e.autoOpts...)
}

func (e *Engine) build() (*automaton.Automaton, error) {
	a := automaton.New(e.automatonOptions()...)
	if err := builder.DefaultRegistry(builder.WithLogger(e.logger)).Apply(a, e.operations...); err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	return a, nil
}

// Reset replaces the model with a freshly built, untrained one.
func (e *Engine) Reset() error {
	a, err := e.build()
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.automaton = a
	e.mu.Unlock()
	e.logger.Info("model reset", "states", a.Len(), "transitions", a.NumTransitions())
	return nil
}

// Load replaces the model with the one stored under the engine name.
func (e *Engine) Load(ctx context.Context) error {
	doc, err := e.store.Load(ctx, e.Name)
	if err != nil {
		return err
	}
	a, err := automaton.Load(doc, e.table.Of, e.automatonOptions()...)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.automaton = a
	e.mu.Unlock()
	e.logger.Info("model loaded", "states", a.Len(), "transitions", a.NumTransitions())
	return nil
}

// Open loads the stored model, keeping the freshly built one when the store
// has none. It reports whether a stored model was found.
func (e *Engine) Open(ctx context.Context) (bool, error) {
	err := e.Load(ctx)
	if errors.Is(err, domain.ErrModelNotFound) {
		e.logger.Debug("no stored model, using default topology")
		return false, nil
	}
	return err == nil, err
}

// Save writes the model to the store under the engine name.
func (e *Engine) Save(ctx context.Context) error {
	e.mu.RLock()
	doc := e.automaton.Serialize()
	e.mu.RUnlock()
	if err := e.store.Save(ctx, e.Name, doc); err != nil {
		return fmt.Errorf("failed to save model %s: %w", e.Name, err)
	}
	e.logger.Info("model saved", "transitions", len(doc.Transitions))
	return nil
}

// Read runs fn with shared access to the automaton. fn must not modify it.
func (e *Engine) Read(fn func(a *automaton.Automaton) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.automaton)
}

// Parse reads Mehegan symbols such as "IIm" or "bVIIx".
func (e *Engine) Parse(symbols ...string) ([]domain.Symbol, error) {
	return e.table.ParseAll(symbols...)
}

// ParseLine reads whitespace separated Mehegan symbols.
func (e *Engine) ParseLine(line string) ([]domain.Symbol, error) {
	return e.Parse(strings.Fields(line)...)
}

// Train credits every sequence that the model accepts and returns how many
// were accepted. Rejections are joined into the returned error.
func (e *Engine) Train(sequences ...[]domain.Symbol) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.automaton.TrainSequences(sequences)
}

// TrainOptions selects how a corpus is split into training sequences.
type TrainOptions struct {
	BySection      bool
	MinSectionSize int
	WrapAround     bool
}

// TrainCorpus trains on every song, or every section, of c.
func (e *Engine) TrainCorpus(c automaton.Corpus, opts TrainOptions) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if opts.BySection {
		minSize := opts.MinSectionSize
		if minSize <= 0 {
			minSize = automaton.DefaultMinSectionSize
		}
		return e.automaton.TrainCorpusBySection(c, minSize, opts.WrapAround)
	}
	return e.automaton.TrainCorpusBySong(c, opts.WrapAround)
}

// Validate returns nil when symbols are accepted, or the failure point.
func (e *Engine) Validate(symbols []domain.Symbol) *automaton.FailureReport {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.automaton.FindFailurePoint(symbols)
}

// Failure describes where a progression stops being readable.
type Failure struct {
	Index           int
	Symbol          domain.Symbol
	InvalidEndState bool
	// PreviousStates names the states reached just before Index, or the final
	// states when InvalidEndState is set.
	PreviousStates []string
}

// Diagnose returns nil when symbols are accepted, or the failure point with
// its states named from the same model snapshot.
func (e *Engine) Diagnose(symbols []domain.Symbol) *Failure {
	e.mu.RLock()
	defer e.mu.RUnlock()

	report := e.automaton.FindFailurePoint(symbols)
	if report == nil {
		return nil
	}
	f := &Failure{
		Index:           report.Index,
		Symbol:          report.Symbol,
		InvalidEndState: report.InvalidEndState,
		PreviousStates:  make([]string, 0, len(report.PreviousStates)),
	}
	for _, id := range report.PreviousStates {
		f.PreviousStates = append(f.PreviousStates, e.automaton.State(id).Name)
	}
	return f
}

// Analyze lists every functional reading of symbols as state names.
func (e *Engine) Analyze(symbols []domain.Symbol) [][]string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	paths := e.automaton.Analyze(symbols)
	out := make([][]string, len(paths))
	for i, path := range paths {
		out[i] = make([]string, len(path))
		for j, id := range path {
			out[i][j] = e.automaton.State(id).Name
		}
	}
	return out
}

// GenerateRequest describes a generated sequence. Length 0 generates a walk
// of any length closing with End; otherwise exactly Length transitions.
type GenerateRequest struct {
	Length int
	Start  domain.Symbol
	End    domain.Symbol
}

// Generate samples a new sequence from the trained model.
func (e *Engine) Generate(req GenerateRequest) (*automaton.Sequence, error) {
	if req.Start == nil || req.End == nil {
		return nil, fmt.Errorf("%w: start and end symbols are required", domain.ErrGenerationFailed)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if req.Length > 0 {
		return e.automaton.GenerateNLengthSequence(req.Length, req.Start, req.End)
	}
	return e.automaton.GenerateFromStartAndEnd(req.Start, req.End)
}

// Realize samples one accepting walk that reads symbols.
func (e *Engine) Realize(symbols []domain.Symbol) (*automaton.Sequence, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.automaton.Realize(symbols)
}

// Reharmonize reads symbols as a walk and replaces the phrase around index.
func (e *Engine) Reharmonize(symbols []domain.Symbol, index int) (*automaton.Sequence, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	seq, err := e.automaton.Realize(symbols)
	if err != nil {
		return nil, err
	}
	return seq.ReharmonizeAtIndex(index, e.allowRepeats)
}

// MostCommon generates n walks from first to last and counts the results.
func (e *Engine) MostCommon(first, last domain.Symbol, n int) []automaton.SequenceCount {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.automaton.MostCommonGeneratedSequences(first, last, n)
}

// StateProbabilities returns where sym leads, by target state.
func (e *Engine) StateProbabilities(sym domain.Symbol) automaton.Distribution {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.automaton.StateProbabilitiesGivenSymbol(sym)
}

// PatternProbabilities returns the distribution of transitions leaving the
// states whose name matches pattern, grouped by key.
func (e *Engine) PatternProbabilities(pattern string, key automaton.KeyType) (automaton.Distribution, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid state pattern: %w", err)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.automaton.TransitionProbabilitiesGivenStatePattern(re, key), nil
}

// ArrivalProbabilities returns which symbols lead into the states whose name
// matches pattern.
func (e *Engine) ArrivalProbabilities(pattern string) (automaton.Distribution, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid state pattern: %w", err)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.automaton.SymbolProbabilitiesGivenStatePattern(re), nil
}

// Stats summarizes the size and training of the model.
type Stats struct {
	States      int     `json:"states"`
	Transitions int     `json:"transitions"`
	Trained     int     `json:"trained"`
	TotalCount  float64 `json:"totalCount"`
}

// Stats returns the current model summary.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := Stats{States: e.automaton.Len(), Transitions: e.automaton.NumTransitions()}
	for _, t := range e.automaton.Transitions() {
		if t.Count > 0 {
			st.Trained++
			st.TotalCount += t.Count
		}
	}
	return st
}

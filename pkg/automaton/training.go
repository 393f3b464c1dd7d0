package automaton

import (
	"errors"
	"fmt"

	"github.com/aretw0/jza/pkg/domain"
)

// Corpus supplies training material.
type Corpus interface {
	// SongSymbols returns one symbol list per song.
	SongSymbols(wrapAround bool) [][]domain.Symbol
	// SectionSymbols returns one symbol list per section of every song.
	SectionSymbols(wrapAround bool) [][]domain.Symbol
}

// DefaultMinSectionSize is the shortest section trained by TrainCorpusBySection.
const DefaultMinSectionSize = 2

// TrainSequence credits every transition on an accepting walk of symbols.
// Each layer splits one unit of count evenly among its transitions. When the
// symbols are not accepted nothing is credited and a wrapped
// ErrUnreachableSymbol is returned.
func (a *Automaton) TrainSequence(symbols []domain.Symbol) error {
	if len(symbols) == 0 {
		return domain.ErrEmptySequence
	}

	layers := a.Pathways(symbols)
	if hasEmptyLayer(layers) {
		err := a.unreachable(symbols)
		a.logger.Debug("training sequence rejected", "symbols", len(symbols), "err", err)
		a.emitTrain(&domain.TrainEvent{Symbols: len(symbols), Layers: len(layers)})
		return err
	}

	for _, layer := range layers {
		credit := 1 / float64(len(layer))
		for _, t := range layer {
			t.Count += credit
		}
	}
	a.emitTrain(&domain.TrainEvent{Symbols: len(symbols), Layers: len(layers), Accepted: true})
	return nil
}

func (a *Automaton) unreachable(symbols []domain.Symbol) error {
	report := a.failurePoint(symbols)
	if report == nil {
		// Forward reachability succeeded but pruning emptied a layer.
		return fmt.Errorf("%w: no accepting walk", domain.ErrUnreachableSymbol)
	}
	if report.InvalidEndState {
		return fmt.Errorf("%w: %s at index %d does not reach an end state", domain.ErrUnreachableSymbol, report.Symbol, report.Index)
	}
	return fmt.Errorf("%w: %s at index %d", domain.ErrUnreachableSymbol, report.Symbol, report.Index)
}

// TrainSequences trains each list of symbols in turn. It returns how many were
// accepted and the joined errors of those that were not.
func (a *Automaton) TrainSequences(sequences [][]domain.Symbol) (int, error) {
	var (
		accepted int
		errs     []error
	)
	for i, symbols := range sequences {
		if err := a.TrainSequence(symbols); err != nil {
			errs = append(errs, fmt.Errorf("sequence %d: %w", i, err))
			continue
		}
		accepted++
	}
	return accepted, errors.Join(errs...)
}

// TrainCorpusBySong trains one sequence per song.
func (a *Automaton) TrainCorpusBySong(c Corpus, wrapAround bool) (int, error) {
	return a.TrainSequences(c.SongSymbols(wrapAround))
}

// TrainCorpusBySection trains one sequence per section, skipping sections with
// fewer than minSectionSize symbols. A non-positive size means DefaultMinSectionSize.
func (a *Automaton) TrainCorpusBySection(c Corpus, minSectionSize int, wrapAround bool) (int, error) {
	if minSectionSize <= 0 {
		minSectionSize = DefaultMinSectionSize
	}
	var sections [][]domain.Symbol
	for _, symbols := range c.SectionSymbols(wrapAround) {
		if len(symbols) >= minSectionSize {
			sections = append(sections, symbols)
		}
	}
	return a.TrainSequences(sections)
}

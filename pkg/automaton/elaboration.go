package automaton

import (
	"fmt"

	"github.com/aretw0/jza/pkg/domain"
)

// Elaborations holds the detours available for a transition A->B. Layers[i]
// contains the candidate i-th steps of every 2-hop and 3-hop path from A to B.
type Elaborations struct {
	Transition *Transition
	Layers     [][]*Transition
}

// Empty reports whether no detour exists.
func (e *Elaborations) Empty() bool {
	return len(e.Layers) == 0
}

// FindElaborations lists the 2-hop and 3-hop paths that may stand in for t.
// Intermediate steps never pass through an end state, never return to t.From
// and never reach t.To early.
func (a *Automaton) FindElaborations(t *Transition) *Elaborations {
	return a.findElaborations(t)
}

func (a *Automaton) findElaborations(t *Transition, keep ...Filter) *Elaborations {
	src, dst := t.From, t.To

	leaving := a.TransitionsWhere(append([]Filter{FromState(src), Not(ToIsEnd()), Not(ToState(dst))}, keep...)...)
	arriving := a.TransitionsWhere(append([]Filter{ToState(dst), Not(FromIsEnd()), Not(FromState(src))}, keep...)...)

	mids := toSet(leaving)
	closing := make([]*Transition, 0, len(arriving))
	for _, at := range arriving {
		if mids[at.From] {
			closing = append(closing, at)
		}
	}
	twoHop := removeDeadEnds([][]*Transition{leaving, closing})

	opens := fromSet(arriving)
	var middle []*Transition
	for _, m := range toStates(leaving) {
		for _, mt := range a.states[m].transitions {
			if opens[mt.To] && a.match(mt, keep) {
				middle = append(middle, mt)
			}
		}
	}
	reached := toSet(middle)
	var last []*Transition
	for _, at := range arriving {
		if reached[at.From] {
			last = append(last, at)
		}
	}
	threeHop := removeDeadEnds([][]*Transition{leaving, middle, last})

	e := &Elaborations{Transition: t}
	for _, family := range [][][]*Transition{twoHop, threeHop} {
		if hasEmptyLayer(family) {
			continue
		}
		for i, layer := range family {
			if i == len(e.Layers) {
				e.Layers = append(e.Layers, nil)
			}
			e.Layers[i] = mergeUnique(e.Layers[i], layer)
		}
	}
	return e
}

func mergeUnique(dst, src []*Transition) []*Transition {
	seen := make(map[*Transition]bool, len(dst))
	for _, t := range dst {
		seen[t] = true
	}
	for _, t := range src {
		if !seen[t] {
			seen[t] = true
			dst = append(dst, t)
		}
	}
	return dst
}

// Elaborate samples a weighted path from t.From to t.To through t's
// detours. Unless mustElaborate is set the direct edge t is itself a
// candidate for the first step.
func (a *Automaton) Elaborate(t *Transition, mustElaborate bool) ([]*Transition, error) {
	e := a.findElaborations(t, Positive())
	if mustElaborate && e.Empty() {
		return nil, fmt.Errorf("%w: no elaboration for %s", domain.ErrNoViableChoice, a.FormatTransition(t))
	}

	layers := e.Layers
	if !mustElaborate {
		layers = make([][]*Transition, max(len(e.Layers), 1))
		copy(layers, e.Layers)
		layers[0] = append([]*Transition{t}, e.firstSteps()...)
	}

	var path []*Transition
	cur := t.From
	for _, layer := range layers {
		next, err := a.SampleByProbability(a.filter(layer, FromState(cur)))
		if err != nil {
			return nil, err
		}
		path = append(path, next)
		if next.To == t.To {
			return path, nil
		}
		cur = next.To
	}
	return nil, fmt.Errorf("%w: elaboration of %s did not close", domain.ErrNoViableChoice, a.FormatTransition(t))
}

func (e *Elaborations) firstSteps() []*Transition {
	if e.Empty() {
		return nil
	}
	return e.Layers[0]
}

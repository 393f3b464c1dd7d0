/*
Package automaton implements a weighted, nondeterministic finite automaton over
opaque symbols, together with the algorithms that train, validate and sample it.

States are stored in an arena and addressed by StateID. Each State owns its
outgoing Transitions; a Transition carries a symbol label and a non-negative
count, and its probability is the count divided by the total count leaving its
source state.

# Walks

A walk is a connected list of transitions. Its first transition must be an
entry transition: one that leaves or lands on a state marked as start. A walk
is complete when its last transition lands on a state marked as end.

# Pathway search

Pathways matches a symbol sequence against the automaton layer by layer: layer
0 holds every entry transition labeled with the first symbol, layer i every
transition labeled with symbol i leaving a state reached by layer i-1. The last
layer is restricted to end states and dead ends are then pruned backwards.
Training credits every surviving transition of a layer with 1/len(layer), so an
ambiguous symbol splits its weight across all consistent interpretations.

# Sequences

Sequence is an immutable, connectivity-checked walk. Its edit operations (Add,
PrependFull, ReharmonizeAtIndex, MakeUnique, ...) never touch the receiver or
the automaton; each returns a new Sequence.

# Concurrency

An Automaton is not safe for concurrent mutation. Read-only operations,
including every Sequence edit, may run concurrently as long as nothing trains
or grows the automaton at the same time. The default random source is the
concurrency-safe global source of math/rand/v2; a source installed with WithRand
is used as-is.
*/
package automaton

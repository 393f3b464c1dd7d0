// Package builder populates an automaton with the default jazz chord-function
// topology.
//
// The topology starts from primitive tonic, subdominant and dominant states and
// is enriched by a fixed list of named operations (tonicization, applied
// dominants, tritone substitutions and so on). Each operation reads the edges
// already present and adds helper states and zero-count transitions around
// them, so the order in which operations run matters. DefaultOrder is the order
// used by Default.
package builder

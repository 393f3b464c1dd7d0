/*
Package domain contains the shared vocabulary of the jza automaton.

It defines the opaque Symbol contract consumed by the automaton engine, the
sentinel errors surfaced by every layer, the persisted document layout of a
model and the lifecycle events emitted while training, validating and
generating. The package has no dependencies beyond the standard library so
that adapters (stores, HTTP, metrics) can import it without pulling in the
engine.

# Key Entities

  - Symbol: a harmonic-function token with equality, quality and numeral.
  - Document: the serialized layout of an automaton (states + indexed transitions).
  - LifecycleHooks: callbacks used by observability adapters.
*/
package domain

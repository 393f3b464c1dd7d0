package domain

import "errors"

// ErrInvalidSequence is returned when a chain of transitions is not contiguous.
var ErrInvalidSequence = errors.New("invalid sequence")

// ErrNoViableChoice is returned when weighted sampling is asked to choose among
// candidates whose total weight is zero.
var ErrNoViableChoice = errors.New("no viable choice")

// ErrGenerationFailed is returned when a bounded construction gives up.
var ErrGenerationFailed = errors.New("could not construct sequence")

// ErrUnreachableSymbol is returned when a symbol sequence cannot be matched
// against the automaton.
var ErrUnreachableSymbol = errors.New("unreachable symbol")

// ErrIndexOutOfRange is returned when an edit targets an index outside the sequence.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrEmptySequence is returned when an edit needs at least one transition.
var ErrEmptySequence = errors.New("empty sequence")

// ErrModelNotFound is returned when a model name cannot be found in a store.
var ErrModelNotFound = errors.New("model not found")

// ErrInvalidDocument is returned when a serialized model references unknown states.
var ErrInvalidDocument = errors.New("invalid model document")

// ErrInvalidSymbol is returned when a symbol cannot be parsed.
var ErrInvalidSymbol = errors.New("invalid symbol")

/*
Package symbol implements Mehegan roman-numeral chord symbols.

A Mehegan symbol is a scale degree relative to the tonic (I, bII, ... VII)
paired with a chord quality:

	M  major seventh       m  minor seventh
	x  dominant seventh    ø  half-diminished seventh
	o  diminished seventh  s  suspended dominant

Symbols are small comparable values. Parse accepts the explicit form
("bVIIx", "IIIø") and the shorthand form, where an upper-case numeral without
a quality is major (dominant for V) and a lower-case numeral is minor
(half-diminished for vii).

Mehegan implements domain.Symbol and domain.ChordRenderer, so it can be used
directly as the token type of an automaton.
*/
package symbol

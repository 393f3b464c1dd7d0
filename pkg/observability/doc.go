/*
Package observability provides tools for monitoring the jza engine.

It exposes Prometheus metrics fed by automaton lifecycle hooks and lets several
hook sets observe the same automaton.
*/
package observability

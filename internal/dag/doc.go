// Package dag provides a small, string-keyed directed acyclic graph used to
// order auxiliary expression rows by their references to one another. It
// detects cycles and produces a deterministic topological order.
package dag

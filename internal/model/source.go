// Package model defines the data structures shared by the rewriting engine.
package model

// Path represents a file system path.
type Path string

// Source represents one input file handed to the rewriting pipeline.
// The engine never mutates the file; it reads the buffer once and produces
// a new buffer through the patch applier.
type Source struct {
	Origin Path
	Hash   string
}

// Candidate holds the per-file candidate count produced by a scan-only run.
type Candidate struct {
	Origin Path
	Count  int
}

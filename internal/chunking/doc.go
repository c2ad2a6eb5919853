// Package chunking splits document text into retrievable fragments.
//
// Two interchangeable strategies are provided: fixed-size word windows
// with overlap, and sentence-bounded packing. Strategies are selected
// by string key; unknown keys silently fall back to fixed-size.
package chunking

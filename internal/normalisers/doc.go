// Package normalisers provides implementations of the TextExtractor
// interface for various upload formats. Each extractor knows how to pull
// plain text out of a specific set of file extensions.
package normalisers

// Package sqlite implements the catalogue index on SQLite using the
// pure-Go modernc driver. One database per catalogue holds the
// inverted index (term -> posting list with frequencies and
// positions), per-document length statistics, the raw stored
// documents, and build metadata including the corpus fingerprint.
//
// The index is rebuilt wholesale from a staged corpus file, never
// patched incrementally. Scoring is BM25 with corpus-tuned k1/b.
package sqlite

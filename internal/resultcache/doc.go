// Package resultcache persists finished transcription documents in SQLite so
// repeat runs over identical audio can skip decoding.
//
// Entries are keyed by the input file's SHA-256 digest, the model size, and
// the engine's decode policy revision; any change to those inputs misses the
// cache. The store keeps a bounded number of entries, pruning the oldest
// rows first.
package resultcache

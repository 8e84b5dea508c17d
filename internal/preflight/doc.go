// Package preflight verifies that the directories a transcription run writes
// to are present and accessible before any work starts.
package preflight

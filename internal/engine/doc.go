// Package engine invokes the faster-whisper recognition engine through an
// embedded Python helper and exposes its output as a forward-only segment
// stream.
//
// This package handles:
//   - Availability probing (interpreter lookup, platform support, package
//     import) with user-facing failure messages
//   - Decode invocation under a fixed CPU policy
//   - Lazy NDJSON iteration over segments and their words
//
// Timing and probability fields on stream records are deliberately untyped;
// sanitization happens downstream during result assembly.
package engine

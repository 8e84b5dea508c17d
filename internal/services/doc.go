// Package services defines shared utilities consumed by the transcription
// pipeline and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and component names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent process exit codes.
//
// Use these helpers when wiring new components so operational behaviour
// (error handling, observability) stays uniform across the tool.
package services

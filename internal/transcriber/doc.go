// Package transcriber orchestrates a single transcription run: input
// validation, model selection, result cache consultation, engine invocation,
// normalization, and output writing.
//
// The service is synchronous; one Run call performs one decode on the calling
// goroutine. Failures carry the shared error markers so the CLI can map them
// to exit codes.
package transcriber

// Package transcript turns raw engine segment streams into schema-stable
// transcription documents.
//
// The package owns the normalization contract: every emitted word has a
// strictly positive duration, a confidence within [0, 1], and non-empty text,
// regardless of what the engine produced. Assembly is a single forward pass
// over the segment stream; nothing is buffered beyond the record in flight.
//
// Writing goes through an atomic temp-file-and-rename so a failed run never
// leaves a partial document at the output path.
package transcript

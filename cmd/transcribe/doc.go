// Command transcribe converts an audio file into a word-level timestamped
// JSON transcription using the faster-whisper engine.
//
// The command is flag-driven and one-shot: --input and --output name the
// audio source and JSON destination, --model-size selects the model, and
// --check probes engine availability without transcribing. Exit codes: 0 on
// success, 1 on decode failure or an unavailable engine, 2 when the input
// file does not exist.
package main

// Package deps inspects the external binaries the transcription tool shells
// out to and reports their availability for the check command.
package deps

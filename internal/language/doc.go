// Package language maps whisper language codes to ISO 639 forms and
// human-readable names for logs and cache rows.
package language

// Package config loads, normalizes, and validates transcription tool
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// WHISPER_MODEL_SIZE. The Config type centralizes every knob the CLI needs,
// allowing cache directories and engine settings to be discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

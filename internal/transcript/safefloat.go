package transcript

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// SafeFloat converts an arbitrary engine-supplied value to a float64. It is
// total: conversion failures, absent values, and NaN all yield fallback.
// Engine JSON decodes numbers as float64 and leaves everything else as
// strings, json.Number, or nil, so those are the kinds handled here.
func SafeFloat(value any, fallback float64) float64 {
	switch v := value.(type) {
	case nil:
		return fallback
	case float64:
		if math.IsNaN(v) {
			return fallback
		}
		return v
	case float32:
		f := float64(v)
		if math.IsNaN(f) {
			return fallback
		}
		return f
	case json.Number:
		f, err := v.Float64()
		if err != nil || math.IsNaN(f) {
			return fallback
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) {
			return fallback
		}
		return f
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return fallback
	}
}

// clamp bounds value to [low, high].
func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

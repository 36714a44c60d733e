// Package defaults provides centralized configuration constants for the exoframe CLI.
//
// This package defines timeout values, stream limits, terminal UI intervals,
// and the label/network names shared with the exoframe server. Centralizing
// these values keeps the client and its tests consistent.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.HTTPClientTimeout)
//	defer cancel()
package defaults

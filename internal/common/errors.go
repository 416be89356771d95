// Package common provides shared utilities and types used across the engine.
package common

import "errors"

// Common engine errors.
var (
	// ErrInvalidPattern marks a regex pattern that failed to compile.
	ErrInvalidPattern = errors.New("invalid regex pattern")
	// ErrNoValidPatterns marks a category left without usable patterns.
	ErrNoValidPatterns = errors.New("category has no valid patterns")
)

// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (analysis.go, score.go, surface.go, errors.go)
// with shared types and cross-cutting interfaces. No I/O - just contracts and value parsing.
// Prevents circular imports by keeping interfaces on the consumer side.
package domain

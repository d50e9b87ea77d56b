// Package app provides the application service layer.
//
// Orchestrates use cases: surface creation, analysis (translate, score, present) and idle surface cleanup.
// Sits between the HTTP handlers / CLI and the domain collaborators. Depends on domain interfaces, not concrete clients.
package app

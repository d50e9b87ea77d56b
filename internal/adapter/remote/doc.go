// Package remote implements the HTTP clients for the two text-analysis collaborators.
//
// Requests are JSON, responses are plain text. Every failure is reported as a
// *domain.TransportError; there is no retry. An optional circuit breaker fails
// fast while a collaborator keeps failing.
package remote

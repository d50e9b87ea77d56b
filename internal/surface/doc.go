// Package surface provides display surfaces that render an analysis: an
// in-memory surface backing the HTTP snapshot endpoint and a terminal
// surface for the CLI widget.
package surface

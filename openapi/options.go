package openapi

import "fmt"

// Options controls import behavior.
type Options struct {
	// Select is a JSONPath expression locating the schema inside a larger
	// document, for example "$.components.schemas.User". Empty means the
	// document root (after unwrapping openAPIV3Schema or a CRD).
	Select string

	// StrictRefs turns unresolvable $ref values into an import error
	// instead of a warning and an Any leaf.
	StrictRefs bool

	// Document picks one document of a multi-document YAML stream,
	// counting from 1. Zero means the first document Select matches (or the
	// first mapping when Select is empty).
	Document int
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }

// Package planerr defines the error taxonomy of the coverage pipeline: a
// small bitmask type distinguishing fatal failures from the two
// recoverable kinds the pipeline can log a warning for and continue past.
package planerr

import "fmt"

// Kind identifies which of the seven error kinds a Status carries.
type Kind uint32

const (
	// Fatal kinds: reported to the caller, pipeline aborts.
	InvalidMap Kind = 1 << iota
	DegeneratePolygon
	DecompositionFailure
	StartOutOfRegion
	InvalidParameter

	// Recoverable kinds: logged as a warning, pipeline continues.
	NumericDegenerate
	SweepEmpty
)

var names = map[Kind]string{
	InvalidMap:           "invalid map",
	DegeneratePolygon:    "degenerate polygon",
	DecompositionFailure: "decomposition failure",
	StartOutOfRegion:     "start outside free region",
	InvalidParameter:     "invalid parameter",
	NumericDegenerate:    "numeric degeneracy in sweep direction",
	SweepEmpty:           "sweep produced zero points",
}

// Recoverable reports whether k is one of the two kinds the pipeline may
// recover from instead of aborting.
func (k Kind) Recoverable() bool {
	return k == NumericDegenerate || k == SweepEmpty
}

// Status is a Kind bound to the offending component and input, surfaced to
// the user via the standard error channel. It implements error.
type Status struct {
	Kind      Kind
	Component string // e.g. "bcd", "visibility", "imaging"
	Detail    string // human-readable description of the offending input
}

// New builds a Status error.
func New(k Kind, component, detail string) *Status {
	return &Status{Kind: k, Component: component, Detail: detail}
}

func (s *Status) Error() string {
	name, ok := names[s.Kind]
	if !ok {
		name = fmt.Sprintf("unspecified error kind 0x%x", uint32(s.Kind))
	}
	if s.Detail == "" {
		return fmt.Sprintf("%s: %s", s.Component, name)
	}
	return fmt.Sprintf("%s: %s: %s", s.Component, name, s.Detail)
}

// Is supports errors.Is comparisons against a bare Kind wrapped in a Status.
func (s *Status) Is(target error) bool {
	t, ok := target.(*Status)
	if !ok {
		return false
	}
	return s.Kind == t.Kind
}

package mfacet

import "fmt"

// Hook is a declarative recipe for building one Facet: which kind it
// produces, what it must attach to before it can be built, and whether a
// later Hook of the same kind is allowed to overwrite it. Every Hook in a
// build plan is unconditionally mandatory — a failing factory, contract
// check or init always aborts and rolls back the whole build; there is
// no notion of an optional hook whose failure the builder tolerates.
type Hook struct {
	// Kind names the facet contract this hook builds (e.g. "router").
	Kind string
	// Overwrite lets this hook replace an earlier hook with the same Kind
	// in the same build plan; without it, a duplicate Kind fails planning
	// with a DependencyError.
	Overwrite bool
	// Attach lists the kinds this hook's facet must be built after and
	// have available (by kind) when Factory runs.
	Attach []string
	// Source is a free-form diagnostic tag identifying where the hook
	// was registered from (test name, component name, ...).
	Source string
	// Factory builds the bare Facet once every kind in Attach has
	// already been built (Attach only orders construction; it never
	// hands the factory those facets' values). A facet whose behavior
	// depends on another facet gets it through DepsAttacher instead,
	// called separately once every Attach kind exists.
	Factory func() (Facet, error)
}

// DepsAttacher is implemented by a facet whose behavior depends on other
// already-built facets named in its own hook's Attach list (e.g. a
// processor needs its router and queue). The builder calls AttachDeps
// once, after Factory returns and before Init, with exactly the facets
// named in Attach — never from inside Factory itself, so a factory can
// never reach into another facet mid-construction.
type DepsAttacher interface {
	AttachDeps(deps map[string]Facet) error
}

// Signature returns a value stable across runs with the same Kind,
// Overwrite and Attach set, used as the DependencyGraphCache key. Source
// and Factory are excluded: two hooks differing only in where they came
// from or in closure identity still order identically.
func (h Hook) Signature() string {
	s := fmt.Sprintf("%s|%t|", h.Kind, h.Overwrite)
	for _, a := range h.Attach {
		s += a + ","
	}

	return s
}

// Validate reports whether the hook is internally well-formed: it must
// name a Kind and must not attach to itself.
func (h Hook) Validate() error {
	if h.Kind == "" {
		return ValidationError("hook has no kind")
	}

	for _, a := range h.Attach {
		if a == h.Kind {
			return ValidationError(fmt.Sprintf("hook %q cannot attach to itself", h.Kind))
		}
	}

	if h.Factory == nil {
		return ValidationError(fmt.Sprintf("hook %q has no factory", h.Kind))
	}

	return nil
}

// ValidationError is a lightweight string error used for hook-shape
// failures that never leave this package; SubsystemBuilder wraps these
// into common.ValidationError before returning them to callers.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

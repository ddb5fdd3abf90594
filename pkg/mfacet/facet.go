// Package mfacet implements the facet lifecycle engine: Hooks describe how
// to build a Facet, a FacetManager holds the built set for one Subsystem
// and supports transactional mutation, and a FacetContractRegistry maps
// well-known facet kinds to the interfaces a Subsystem expects them to
// satisfy.
package mfacet

import (
	"context"

	"github.com/iancoleman/strcase"
)

// Facet is the runtime unit attached to a Subsystem. Implementations embed
// Base and add whatever behavior their contract requires (router, queue,
// processor, ...). Once Init has returned successfully the builder seals
// the Facet and Sealed reports true from then on; FacetManager does not
// consult the seal.
type Facet interface {
	Kind() string
	Source() string
	ShouldAttach(candidate Facet) bool
	Init(ctx context.Context) error
	Dispose(ctx context.Context) error
	Sealed() bool
}

// Base provides the bookkeeping every Facet implementation needs so
// concrete facets only have to implement the behavior specific to their
// contract.
type Base struct {
	kind     string
	source   string
	sealed   bool
	disposed bool
}

// NewBase constructs a Base for the given kind, normalizing the
// diagnostic source tag into snake_case so facets originating from
// different call sites (factories, tests, demo wiring) read consistently
// in logs.
func NewBase(kind, source string) Base {
	return Base{kind: kind, source: strcase.ToSnake(source)}
}

func (b *Base) Kind() string   { return b.kind }
func (b *Base) Source() string { return b.source }
func (b *Base) Sealed() bool   { return b.sealed }

// Seal marks the facet sealed. Called by SubsystemBuilder once Init succeeds.
func (b *Base) Seal() { b.sealed = true }

// ShouldAttach is the default attach predicate: it accepts every
// candidate. Contracts that need selective attachment (e.g. a
// Hierarchy facet that only attaches to a parent of the same contract)
// override this on their own type.
func (b *Base) ShouldAttach(Facet) bool { return true }

// Init is a no-op default; facets with real setup work override it.
func (b *Base) Init(context.Context) error { return nil }

// Dispose only marks the facet disposed; facets holding resources
// override it.
func (b *Base) Dispose(context.Context) error {
	b.disposed = true
	return nil
}

package mdispatch

import "github.com/LerianStudio/mdispatch/pkg/mfacet"

// HierarchyFacet is an optional override of a Subsystem's built-in
// parent/child bookkeeping. Per the "delegation with fallback" design:
// a Subsystem's default behavior is its own AddChild/RemoveChild
// implementation; attaching a HierarchyFacet that overrides a given
// method routes that operation through the facet instead, while every
// other hierarchy method still falls back to the Subsystem's built-in.
//
// A HierarchyFacet with OverridesAddChild()==false, for instance, is a
// pure observer: Subsystem still does its own bookkeeping and simply
// never calls AddChild on this facet.
type HierarchyFacet struct {
	mfacet.Base

	onAddChild    func(name string, child any) error
	onRemoveChild func(name string)
}

// NewHierarchyFacet returns a factory for the "hierarchy" kind.
// onAddChild/onRemoveChild may be nil, in which case the corresponding
// operation is not overridden and the Subsystem's built-in applies.
func NewHierarchyFacet(source string, onAddChild func(name string, child any) error, onRemoveChild func(name string)) func() (mfacet.Facet, error) {
	return func() (mfacet.Facet, error) {
		return &HierarchyFacet{
			Base:          mfacet.NewBase("hierarchy", source),
			onAddChild:    onAddChild,
			onRemoveChild: onRemoveChild,
		}, nil
	}
}

// OverridesAddChild reports whether AddChild should route through this
// facet instead of the Subsystem's built-in bookkeeping.
func (h *HierarchyFacet) OverridesAddChild() bool { return h.onAddChild != nil }

// AddChild runs the override. Callers must check OverridesAddChild first.
func (h *HierarchyFacet) AddChild(name string, child any) error { return h.onAddChild(name, child) }

// OverridesRemoveChild reports whether RemoveChild should route through
// this facet instead of the Subsystem's built-in bookkeeping.
func (h *HierarchyFacet) OverridesRemoveChild() bool { return h.onRemoveChild != nil }

// RemoveChild runs the override. Callers must check OverridesRemoveChild
// first.
func (h *HierarchyFacet) RemoveChild(name string) { h.onRemoveChild(name) }

// Package msubsystem implements the Subsystem tree: a node owning a
// FacetManager, an ordered Hook list, lifecycle callbacks and a
// parent/children back-reference structure, built and torn down through
// a SubsystemBuilder.
package msubsystem

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
	"github.com/LerianStudio/mdispatch/common/mlog"
	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// synchronousKind and processorKind name the two facet kinds eligible to
// become a Subsystem's coreProcessor; synchronous, when present, is
// preferred as a drop-in replacement for the queued processor.
const (
	synchronousKind = "synchronous"
	processorKind   = "processor"
	schedulerKind   = "scheduler"
)

// pausable is satisfied by any facet kind that gates its own work on a
// Pause/Resume toggle (e.g. the dispatch-core scheduler facet). Subsystem
// only needs the method names, not the facet's concrete type, so it
// type-asserts against this local interface rather than importing the
// package that defines the facet.
type pausable interface {
	Pause()
	Resume()
}

// Subsystem is one node in the dispatch tree. It owns the facets built
// from its Hooks, a set of named children it owns exclusively, and a
// weak back-reference to its parent.
type Subsystem struct {
	mu sync.Mutex

	name   string
	ctx    map[string]any
	hooks  []mfacet.Hook
	onInit []func(api *mfacet.FacetManager, ctx map[string]any) error
	onDisp []func(ctx map[string]any)

	manager *mfacet.FacetManager
	parent  *Subsystem
	children map[string]*Subsystem

	coreProcessor mfacet.Facet

	builder *SubsystemBuilder
	isBuilt bool
	paused  bool

	logger mlog.Logger
}

// New constructs a Subsystem with the given name, initially unbuilt and
// rootless. name must be non-empty.
func New(name string, logger mlog.Logger) (*Subsystem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.ValidationError{
			Code:    cn.ErrBadRequest.Error(),
			Title:   "Invalid Subsystem Name",
			Message: "subsystem name must be non-empty",
		}
	}

	if logger == nil {
		logger = &mlog.NoneLogger{}
	}

	s := &Subsystem{
		name:     name,
		ctx:      make(map[string]any),
		manager:  mfacet.NewFacetManager(logger),
		children: make(map[string]*Subsystem),
		logger:   logger,
	}
	s.builder = NewSubsystemBuilder(s)

	return s, nil
}

// Name returns the subsystem's own (non-hierarchical) name.
func (s *Subsystem) Name() string { return s.name }

// Use appends hook to the subsystem's hook list and invalidates any
// cached plan, returning the subsystem for chaining.
func (s *Subsystem) Use(hook mfacet.Hook) *Subsystem {
	s.mu.Lock()
	s.hooks = append(s.hooks, hook)
	s.mu.Unlock()

	s.builder.Invalidate()

	return s
}

// OnInit registers a callback invoked with (api, resolvedCtx) after a
// successful build, in registration order.
func (s *Subsystem) OnInit(cb func(api *mfacet.FacetManager, ctx map[string]any) error) *Subsystem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onInit = append(s.onInit, cb)

	return s
}

// OnDispose registers a callback invoked during dispose, after children
// and facets have been torn down. It receives the subsystem's own ctx;
// the builder's WithCtx overlay is not merged into it.
func (s *Subsystem) OnDispose(cb func(ctx map[string]any)) *Subsystem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onDisp = append(s.onDisp, cb)

	return s
}

// SetParent sets the subsystem's parent back-reference. Passing nil
// detaches the subsystem from its parent; per the documented asymmetry,
// this mutates only this side — the former parent's children map is left
// untouched, so callers that want full detachment must also call
// RemoveChild on the former parent.
func (s *Subsystem) SetParent(parent *Subsystem) *Subsystem {
	s.mu.Lock()
	s.parent = parent
	s.mu.Unlock()

	return s
}

// GetParent returns the subsystem's parent, or nil if it is a root.
func (s *Subsystem) GetParent() *Subsystem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.parent
}

// IsRoot reports whether the subsystem has no parent.
func (s *Subsystem) IsRoot() bool {
	return s.GetParent() == nil
}

// GetRoot walks parent references to the root of the tree.
func (s *Subsystem) GetRoot() *Subsystem {
	cur := s
	for {
		p := cur.GetParent()
		if p == nil {
			return cur
		}

		cur = p
	}
}

// hierarchyAddOverride and hierarchyRemoveOverride let an attached
// HierarchyFacet take over AddChild/RemoveChild bookkeeping, per the
// "delegation with fallback" design: a Subsystem consults its hierarchy
// facet (if any and if it overrides the operation) before falling back
// to its own built-in map mutation.
type hierarchyAddOverride interface {
	OverridesAddChild() bool
	AddChild(name string, child any) error
}

type hierarchyRemoveOverride interface {
	OverridesRemoveChild() bool
	RemoveChild(name string)
}

// AddChild registers child under name, exclusively owned by s, and sets
// child's parent back-reference to s. A duplicate name is a
// ValidationError. If a hierarchy facet is attached and overrides
// AddChild, the registration is delegated to it instead of the built-in
// map.
func (s *Subsystem) AddChild(name string, child *Subsystem) error {
	if f, ok := s.manager.Find("hierarchy"); ok {
		if h, ok := f.(hierarchyAddOverride); ok && h.OverridesAddChild() {
			if err := h.AddChild(name, child); err != nil {
				return err
			}

			child.SetParent(s)

			return nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.children[name]; exists {
		return common.ValidationError{
			EntityType: name,
			Code:       cn.ErrBadRequest.Error(),
			Title:      "Duplicate Child Name",
			Message:    fmt.Sprintf("a child named %q already exists", name),
		}
	}

	s.children[name] = child
	child.SetParent(s)

	return nil
}

// RemoveChild deletes the child registered under name, if any. It does
// not dispose it; callers wanting a clean teardown should dispose the
// child first. Delegates to an overriding hierarchy facet if attached.
func (s *Subsystem) RemoveChild(name string) {
	if f, ok := s.manager.Find("hierarchy"); ok {
		if h, ok := f.(hierarchyRemoveOverride); ok && h.OverridesRemoveChild() {
			h.RemoveChild(name)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.children, name)
}

// Children returns the child names in a deterministic (sorted) order.
func (s *Subsystem) Children() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.children))
	for n := range s.children {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Child returns the child registered under name, if any.
func (s *Subsystem) Child(name string) (*Subsystem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.children[name]

	return c, ok
}

// GetNameString returns the hierarchical name, bit-exact per the
// documented format: "<root>://" for a root, "<root>://<seg1>/<seg2>"
// for descendants, with no trailing slash on a non-root leaf and no "//"
// other than the protocol separator.
func (s *Subsystem) GetNameString() string {
	var segs []string

	cur := s
	for {
		p := cur.GetParent()
		if p == nil {
			root := cur.name

			if len(segs) == 0 {
				return root + "://"
			}

			// reverse segs into root-to-leaf order
			for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
				segs[i], segs[j] = segs[j], segs[i]
			}

			return root + "://" + strings.Join(segs, "/")
		}

		segs = append(segs, cur.name)
		cur = p
	}
}

// Find returns the facet registered under kind, if the subsystem has
// been built.
func (s *Subsystem) Find(kind string) (mfacet.Facet, bool) {
	return s.manager.Find(kind)
}

// Manager exposes the subsystem's FacetManager for package-internal
// collaborators (the builder, and the dispatch-core package when wiring
// a coreProcessor).
func (s *Subsystem) Manager() *mfacet.FacetManager { return s.manager }

// CoreProcessor returns the facet chosen at build time to receive
// accept/processMessage calls: the synchronous facet if present, else
// the processor facet, else nil.
func (s *Subsystem) CoreProcessor() mfacet.Facet {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.coreProcessor
}

func (s *Subsystem) selectCoreProcessor() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.manager.Find(synchronousKind); ok {
		s.coreProcessor = f
		return
	}

	if f, ok := s.manager.Find(processorKind); ok {
		s.coreProcessor = f
		return
	}

	s.coreProcessor = nil
}

// IsBuilt reports whether every planned facet has been initialized.
func (s *Subsystem) IsBuilt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isBuilt
}

// Pause marks the subsystem paused and, if a "scheduler" facet is
// attached, pauses it too — that facet's Process is what actually gates
// tick-driven dispatch, so this is what makes Pause have an observable
// effect rather than only flipping a readable flag. A subsystem with no
// scheduler facet has nothing wired to consult Paused.
func (s *Subsystem) Pause() *Subsystem {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()

	if f, ok := s.manager.Find(schedulerKind); ok {
		if p, ok := f.(pausable); ok {
			p.Pause()
		}
	}

	return s
}

// Resume clears a prior Pause, including on the scheduler facet if one
// is attached.
func (s *Subsystem) Resume() *Subsystem {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()

	if f, ok := s.manager.Find(schedulerKind); ok {
		if p, ok := f.(pausable); ok {
			p.Resume()
		}
	}

	return s
}

// Paused reports whether Pause was called more recently than Resume.
// Only the scheduler facet (if attached) actually consults this state
// when deciding whether to do work; a subsystem built without one can
// still be marked Paused but nothing will observably change.
func (s *Subsystem) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.paused
}

// Build delegates to the subsystem's SubsystemBuilder, building this
// subsystem and, on success, recursively building its children.
func (s *Subsystem) Build(ctx context.Context) error {
	return s.builder.Build(ctx)
}

// Dispose tears down children (in reverse name order; the order children
// were added in is not tracked), then facets (reverse init order), then
// runs onDispose callbacks. It awaits any
// build in flight first, and is idempotent.
func (s *Subsystem) Dispose(ctx context.Context) error {
	return s.builder.Dispose(ctx)
}

package msubsystem

import (
	"context"
	"fmt"
	"sync"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
	"github.com/LerianStudio/mdispatch/pkg/mdispatch"
	"github.com/LerianStudio/mdispatch/pkg/mfacet"
	"github.com/LerianStudio/mdispatch/pkg/mgraph"
	pkgerrors "github.com/pkg/errors"
)

// Plan is the resolved build plan for one Subsystem: the effective ctx,
// the dependency-ordered kinds, and the hooks keyed by kind (used by
// Build to find each hook's Factory once it is that kind's turn).
type Plan struct {
	ResolvedCtx  map[string]any
	OrderedKinds []string
	HooksByKind  map[string]mfacet.Hook
}

// SubsystemBuilder plans and builds one Subsystem: resolving its
// effective context and hook set, consulting the DependencyGraphCache
// for a build order, instantiating facets in that order, and rolling
// back on any failure.
type SubsystemBuilder struct {
	mu sync.Mutex

	sub        *Subsystem
	overlayCtx map[string]any
	plan       *Plan
	graphCache *mgraph.DependencyGraphCache
	contracts  *mfacet.FacetContractRegistry

	buildOnce sync.Once
	buildErr  error
	building  bool
	buildDone chan struct{}

	disposeOnce sync.Once
	disposeDone chan struct{}
}

// NewSubsystemBuilder constructs a builder for sub with a private
// DependencyGraphCache and a FacetContractRegistry pre-populated with
// the six well-known dispatch-core contracts (router, queue, processor,
// listeners, hierarchy, scheduler). Callers that want to share a
// cache/registry across a tree should use NewSubsystemBuilderWith.
func NewSubsystemBuilder(sub *Subsystem) *SubsystemBuilder {
	contracts := mfacet.NewFacetContractRegistry()
	mdispatch.RegisterDefaultContracts(contracts)

	return NewSubsystemBuilderWith(sub, mgraph.NewDependencyGraphCache(mgraph.DefaultCapacity), contracts)
}

// NewSubsystemBuilderWith constructs a builder for sub sharing the given
// cache and contract registry, e.g. so that children inherit the same
// graph cache as their parent.
func NewSubsystemBuilderWith(sub *Subsystem, cache *mgraph.DependencyGraphCache, contracts *mfacet.FacetContractRegistry) *SubsystemBuilder {
	return &SubsystemBuilder{
		sub:        sub,
		overlayCtx: make(map[string]any),
		graphCache: cache,
		contracts:  contracts,
	}
}

// WithCtx merges kv into the builder's ctx overlay (applied on top of
// the subsystem's own ctx when resolving a plan) and invalidates any
// cached plan.
func (b *SubsystemBuilder) WithCtx(kv map[string]any) *SubsystemBuilder {
	b.mu.Lock()
	for k, v := range kv {
		b.overlayCtx[k] = v
	}
	b.mu.Unlock()

	b.Invalidate()

	return b
}

// ClearCtx empties the ctx overlay and invalidates any cached plan.
func (b *SubsystemBuilder) ClearCtx() *SubsystemBuilder {
	b.mu.Lock()
	b.overlayCtx = make(map[string]any)
	b.mu.Unlock()

	b.Invalidate()

	return b
}

// Invalidate clears the cached plan; the next Plan/Build call
// recomputes it.
func (b *SubsystemBuilder) Invalidate() {
	b.mu.Lock()
	b.plan = nil
	b.mu.Unlock()
}

// GetPlan returns the cached plan, or nil if none has been computed
// since the last Invalidate.
func (b *SubsystemBuilder) GetPlan() *Plan {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.plan
}

// Plan resolves the effective ctx and hook set, consults the graph
// cache for a build order (computing and caching it on a miss), and
// caches the result. Calling Plan twice without an intervening
// Invalidate returns the same cached Plan.
func (b *SubsystemBuilder) Plan() (*Plan, error) {
	b.mu.Lock()
	if b.plan != nil {
		p := b.plan
		b.mu.Unlock()

		return p, nil
	}

	overlay := make(map[string]any, len(b.overlayCtx))
	for k, v := range b.overlayCtx {
		overlay[k] = v
	}
	b.mu.Unlock()

	b.sub.mu.Lock()
	resolvedCtx := make(map[string]any, len(b.sub.ctx)+len(overlay))
	for k, v := range b.sub.ctx {
		resolvedCtx[k] = v
	}
	for k, v := range overlay {
		resolvedCtx[k] = v
	}

	hooks, err := effectiveHooks(b.sub.hooks)
	b.sub.mu.Unlock()

	if err != nil {
		return nil, err
	}

	ordered, err := mgraph.ResolveCached(b.graphCache, hooks)
	if err != nil {
		return nil, err
	}

	hooksByKind := make(map[string]mfacet.Hook, len(hooks))
	for _, h := range hooks {
		hooksByKind[h.Kind] = h
	}

	p := &Plan{ResolvedCtx: resolvedCtx, OrderedKinds: ordered, HooksByKind: hooksByKind}

	b.mu.Lock()
	b.plan = p
	b.mu.Unlock()

	return p, nil
}

// DryRun is an alias for Plan.
func (b *SubsystemBuilder) DryRun() (*Plan, error) { return b.Plan() }

// effectiveHooks folds hooks into a kind-keyed, insertion-ordered list:
// a later hook with the same kind replaces an earlier one only if it
// marks Overwrite, otherwise it is a DependencyError.
func effectiveHooks(hooks []mfacet.Hook) ([]mfacet.Hook, error) {
	order := make([]string, 0, len(hooks))
	byKind := make(map[string]mfacet.Hook, len(hooks))

	for _, h := range hooks {
		if err := h.Validate(); err != nil {
			return nil, common.ValidationError{
				EntityType: h.Kind,
				Code:       cn.ErrBadRequest.Error(),
				Title:      "Invalid Hook",
				Message:    err.Error(),
			}
		}

		if _, exists := byKind[h.Kind]; exists && !h.Overwrite {
			return nil, common.DependencyError{
				EntityType: h.Kind,
				Code:       cn.ErrHookAlreadyExists.Error(),
				Title:      "Duplicate Hook Kind",
				Message:    fmt.Sprintf("hook kind %q already registered; set Overwrite to replace it", h.Kind),
			}
		}

		if _, exists := byKind[h.Kind]; !exists {
			order = append(order, h.Kind)
		}

		byKind[h.Kind] = h
	}

	out := make([]mfacet.Hook, len(order))
	for i, k := range order {
		out[i] = byKind[k]
	}

	return out, nil
}

// Build ensures a plan exists, constructs each facet in dependency
// order inside a FacetManager transaction, enforces any registered
// contract, and on success recursively builds children, runs onInit
// callbacks and selects coreProcessor. Concurrent Build calls coalesce
// onto the same in-flight result. Once a build has succeeded, later
// calls return nil immediately; after a failed build the next call
// builds again.
func (b *SubsystemBuilder) Build(ctx context.Context) error {
	b.mu.Lock()
	if b.sub.isBuilt {
		b.mu.Unlock()
		return nil
	}

	if b.building {
		done := b.buildDone
		b.mu.Unlock()
		<-done

		return b.buildErr
	}

	b.building = true
	b.buildDone = make(chan struct{})
	b.mu.Unlock()

	err := b.doBuild(ctx)

	b.mu.Lock()
	b.buildErr = err
	b.building = false

	if err == nil {
		b.sub.mu.Lock()
		b.sub.isBuilt = true
		b.sub.mu.Unlock()
	}

	close(b.buildDone)
	b.mu.Unlock()

	return err
}

func (b *SubsystemBuilder) doBuild(ctx context.Context) (err error) {
	plan, err := b.Plan()
	if err != nil {
		return err
	}

	b.sub.manager.BeginTransaction()

	defer func() {
		if r := recover(); r != nil {
			_ = b.sub.manager.Rollback(ctx)

			err = common.BuildError{
				Code:    cn.ErrInternalServer.Error(),
				Title:   "Facet Build Panicked",
				Message: fmt.Sprintf("recovered panic while building subsystem %q: %v", b.sub.name, r),
				Err:     pkgerrors.Errorf("panic: %v", r),
			}
		}

		if err != nil {
			return
		}
	}()

	built := make(map[string]mfacet.Facet, len(plan.OrderedKinds))

	for _, kind := range plan.OrderedKinds {
		hook, ok := plan.HooksByKind[kind]
		if !ok {
			continue
		}

		facet, ferr := hook.Factory()
		if ferr != nil {
			rerr := b.sub.manager.Rollback(ctx)
			_ = rerr

			return common.BuildError{
				EntityType: kind,
				Code:       cn.ErrInternalServer.Error(),
				Title:      "Facet Factory Failed",
				Message:    fmt.Sprintf("factory for kind %q failed: %v", kind, ferr),
				Err:        pkgerrors.Wrapf(ferr, "factory for kind %q", kind),
			}
		}

		if attacher, ok := facet.(mfacet.DepsAttacher); ok {
			deps := make(map[string]mfacet.Facet, len(hook.Attach))
			for _, a := range hook.Attach {
				if f, ok := built[a]; ok {
					deps[a] = f
				}
			}

			if derr := attacher.AttachDeps(deps); derr != nil {
				_ = b.sub.manager.Rollback(ctx)

				return common.DependencyError{
					EntityType: kind,
					Code:       cn.ErrInternalServer.Error(),
					Title:      "Facet Dependency Attach Failed",
					Message:    fmt.Sprintf("AttachDeps for kind %q failed: %v", kind, derr),
				}
			}
		}

		if cerr := b.contracts.Check(facet); cerr != nil {
			_ = b.sub.manager.Rollback(ctx)

			return common.DependencyError{
				EntityType: kind,
				Code:       cn.ErrUnknownContract.Error(),
				Title:      "Contract Violation",
				Message:    cerr.Error(),
			}
		}

		if ierr := facet.Init(ctx); ierr != nil {
			_ = b.sub.manager.Rollback(ctx)

			return common.BuildError{
				EntityType: kind,
				Code:       cn.ErrInternalServer.Error(),
				Title:      "Facet Init Failed",
				Message:    fmt.Sprintf("init for kind %q failed: %v", kind, ierr),
				Err:        pkgerrors.Wrapf(ierr, "init for kind %q", kind),
			}
		}

		if base, ok := facet.(interface{ Seal() }); ok {
			base.Seal()
		}

		if aerr := b.sub.manager.Add(facet, hook.Overwrite); aerr != nil {
			_ = b.sub.manager.Rollback(ctx)
			return aerr
		}

		built[kind] = facet
	}

	for _, name := range b.sub.Children() {
		child, ok := b.sub.Child(name)
		if !ok {
			continue
		}

		if berr := child.Build(ctx); berr != nil {
			_ = b.sub.manager.Rollback(ctx)
			return berr
		}
	}

	b.sub.selectCoreProcessor()

	for _, cb := range b.sub.onInit {
		if cberr := cb(b.sub.manager, plan.ResolvedCtx); cberr != nil {
			_ = b.sub.manager.Rollback(ctx)

			return common.BuildError{
				Code:    cn.ErrInternalServer.Error(),
				Title:   "onInit Callback Failed",
				Message: cberr.Error(),
				Err:     cberr,
			}
		}
	}

	if cerr := b.sub.manager.Commit(); cerr != nil {
		return cerr
	}

	return nil
}

// Dispose awaits any in-flight build, then tears down children (in
// reverse name order; the order children were added in is not tracked),
// facets (reverse init order) and runs onDispose callbacks with the
// subsystem's own ctx. It is idempotent: a second Dispose call is a no-op.
func (b *SubsystemBuilder) Dispose(ctx context.Context) error {
	b.mu.Lock()
	building := b.building
	done := b.buildDone
	b.mu.Unlock()

	if building {
		<-done
	}

	b.disposeOnce.Do(func() {
		names := b.sub.Children()
		for i := len(names) - 1; i >= 0; i-- {
			child, ok := b.sub.Child(names[i])
			if !ok {
				continue
			}

			if derr := child.Dispose(ctx); derr != nil {
				b.sub.logger.Errorf("child %q dispose error: %v", names[i], derr)
			}
		}

		if derr := b.sub.manager.DisposeAll(ctx); derr != nil {
			b.sub.logger.Errorf("subsystem %q dispose error: %v", b.sub.name, derr)
		}

		for _, cb := range b.sub.onDisp {
			cb(b.sub.ctx)
		}

		b.sub.mu.Lock()
		b.sub.isBuilt = false
		b.sub.mu.Unlock()
	})

	return nil
}

package mfacet

import (
	"context"
	"fmt"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
	"github.com/LerianStudio/mdispatch/common/mlog"
	"github.com/hashicorp/go-multierror"
)

// txFrame records one BeginTransaction..Commit/Rollback span: the facets
// added during it, in insertion order, so Rollback can tear them down in
// reverse.
type txFrame struct {
	added []string
}

// FacetManager holds the built facets for one Subsystem. Insertion order
// is preserved so that Dispose (and Rollback) can run in the reverse
// order facets were added, mirroring construction dependency order.
type FacetManager struct {
	order  []string
	facets map[string]Facet
	txs    []*txFrame
	logger mlog.Logger
}

// NewFacetManager constructs an empty FacetManager.
func NewFacetManager(logger mlog.Logger) *FacetManager {
	if logger == nil {
		logger = &mlog.NoneLogger{}
	}

	return &FacetManager{
		facets: make(map[string]Facet),
		logger: logger,
	}
}

// Add inserts a facet under its own Kind. It fails with a ValidationError
// if the kind already exists and the incoming facet's hook did not mark
// Overwrite (callers pass overwrite explicitly since the Hook is not
// retained here).
func (m *FacetManager) Add(f Facet, overwrite bool) error {
	if _, exists := m.facets[f.Kind()]; exists && !overwrite {
		return common.ValidationError{
			EntityType: f.Kind(),
			Code:       cn.ErrFacetAlreadyExists.Error(),
			Title:      "Facet Already Exists",
			Message:    fmt.Sprintf("a facet of kind %q already exists and its hook did not allow overwrite", f.Kind()),
		}
	}

	if _, exists := m.facets[f.Kind()]; !exists {
		m.order = append(m.order, f.Kind())
	}

	m.facets[f.Kind()] = f

	if len(m.txs) > 0 {
		top := m.txs[len(m.txs)-1]
		top.added = append(top.added, f.Kind())
	}

	return nil
}

// Find returns the facet registered under kind, if any.
func (m *FacetManager) Find(kind string) (Facet, bool) {
	f, ok := m.facets[kind]
	return f, ok
}

// Remove deletes the facet registered under kind. It does not call
// Dispose; callers that want a clean teardown should do so themselves
// before calling Remove.
func (m *FacetManager) Remove(kind string) {
	if _, ok := m.facets[kind]; !ok {
		return
	}

	delete(m.facets, kind)

	for i, k := range m.order {
		if k == kind {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Kinds returns the registered kinds in insertion order.
func (m *FacetManager) Kinds() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)

	return out
}

// BeginTransaction opens a new rollback frame. Transactions nest: each
// Add performed while one or more frames are open is recorded against the
// innermost (most recently opened) frame.
func (m *FacetManager) BeginTransaction() {
	m.txs = append(m.txs, &txFrame{})
}

// Commit closes the innermost transaction frame without undoing its
// additions. It is a ValidationError to Commit with no active
// transaction.
func (m *FacetManager) Commit() error {
	if len(m.txs) == 0 {
		return common.ValidationError{
			Code:    cn.ErrNoActiveTransaction.Error(),
			Title:   "No Active Transaction",
			Message: "Commit called with no active transaction",
		}
	}

	m.txs = m.txs[:len(m.txs)-1]

	return nil
}

// Rollback disposes and removes every facet added during the innermost
// transaction, in the reverse order they were added, then closes the
// frame. Dispose errors are aggregated and logged, not returned, so that
// one misbehaving facet's teardown does not prevent the rest from being
// rolled back.
func (m *FacetManager) Rollback(ctx context.Context) error {
	if len(m.txs) == 0 {
		return common.ValidationError{
			Code:    cn.ErrNoActiveTransaction.Error(),
			Title:   "No Active Transaction",
			Message: "Rollback called with no active transaction",
		}
	}

	top := m.txs[len(m.txs)-1]
	m.txs = m.txs[:len(m.txs)-1]

	var errs *multierror.Error

	for i := len(top.added) - 1; i >= 0; i-- {
		kind := top.added[i]

		f, ok := m.facets[kind]
		if !ok {
			continue
		}

		if err := f.Dispose(ctx); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("dispose %s: %w", kind, err))
		}

		m.Remove(kind)
	}

	if errs.ErrorOrNil() != nil {
		m.logger.Errorf("rollback swallowed %d dispose error(s): %v", errs.Len(), errs)
	}

	return nil
}

// DisposeAll tears down every facet in reverse insertion order,
// aggregating dispose errors into a single DisposeError instead of
// stopping at the first failure.
func (m *FacetManager) DisposeAll(ctx context.Context) error {
	var errs *multierror.Error

	for i := len(m.order) - 1; i >= 0; i-- {
		kind := m.order[i]

		f, ok := m.facets[kind]
		if !ok {
			continue
		}

		if err := f.Dispose(ctx); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("dispose %s: %w", kind, err))
		}
	}

	m.facets = make(map[string]Facet)
	m.order = nil

	if err := errs.ErrorOrNil(); err != nil {
		m.logger.Errorf("dispose swallowed %d error(s): %v", errs.Len(), errs)

		return common.DisposeError{
			Code:    "dispose",
			Title:   "Dispose Error",
			Message: fmt.Sprintf("%d facet(s) failed to dispose cleanly", errs.Len()),
			Err:     err,
		}
	}

	return nil
}

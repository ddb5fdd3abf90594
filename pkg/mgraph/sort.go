package mgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// Signature returns a single deterministic key for a whole hook set,
// built from each hook's own Hook.Signature(), sorted so that insertion
// order does not perturb cache keys for an otherwise identical set.
func Signature(hooks []mfacet.Hook) string {
	sigs := make([]string, len(hooks))
	for i, h := range hooks {
		sigs[i] = h.Signature()
	}

	sort.Strings(sigs)

	return strings.Join(sigs, ";")
}

// Resolve orders hooks topologically over the Attach relation: a hook
// appears after every kind it attaches to. Ties (hooks with no relative
// ordering constraint between them) are broken by insertion order in
// hooks, so the same input slice always yields the same output slice.
//
// On success it returns the ordered kinds. On a cycle it returns a
// common.DependencyError naming every kind participating in the cycle.
func Resolve(hooks []mfacet.Hook) ([]string, error) {
	index := make(map[string]int, len(hooks))
	for i, h := range hooks {
		index[h.Kind] = i
	}

	indegree := make([]int, len(hooks))
	dependents := make([][]int, len(hooks))

	for i, h := range hooks {
		for _, dep := range h.Attach {
			depIdx, ok := index[dep]
			if !ok {
				return nil, common.DependencyError{
					EntityType: h.Kind,
					Code:       cn.ErrRequiredAttachMissing.Error(),
					Title:      "Required Attach Missing",
					Message:    fmt.Sprintf("hook %q attaches to %q, which is not in the hook set", h.Kind, dep),
				}
			}

			indegree[i]++
			dependents[depIdx] = append(dependents[depIdx], i)
		}
	}

	var ready []int

	for i := range hooks {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	sort.Ints(ready)

	ordered := make([]string, 0, len(hooks))
	visited := make([]bool, len(hooks))

	for len(ready) > 0 {
		sort.Slice(ready, func(a, b int) bool { return ready[a] < ready[b] })

		i := ready[0]
		ready = ready[1:]

		visited[i] = true
		ordered = append(ordered, hooks[i].Kind)

		var next []int

		for _, dep := range dependents[i] {
			indegree[dep]--
			if indegree[dep] == 0 {
				next = append(next, dep)
			}
		}

		sort.Ints(next)
		ready = append(ready, next...)
	}

	if len(ordered) != len(hooks) {
		var cyclic []string

		for i, h := range hooks {
			if !visited[i] {
				cyclic = append(cyclic, h.Kind)
			}
		}

		sort.Strings(cyclic)

		return nil, common.DependencyError{
			Code:    cn.ErrDependencyCycle.Error(),
			Title:   "Dependency Cycle Detected",
			Message: fmt.Sprintf("dependency cycle detected among: %s", strings.Join(cyclic, ", ")),
		}
	}

	return ordered, nil
}

// ResolveCached consults cache for hooks' Signature before calling
// Resolve, and stores the outcome (success or cycle error) on a miss so
// that a repeated build of the same hook set skips the sort, and a
// repeated cycle is reported without recomputation.
func ResolveCached(cache *DependencyGraphCache, hooks []mfacet.Hook) ([]string, error) {
	sig := Signature(hooks)

	if plan, ok := cache.Get(sig); ok {
		if plan.Valid {
			return plan.OrderedKinds, nil
		}

		return nil, plan.Err
	}

	ordered, err := Resolve(hooks)
	if err != nil {
		cache.Set(sig, Plan{Valid: false, Err: err})
		return nil, err
	}

	cache.Set(sig, Plan{Valid: true, OrderedKinds: ordered})

	return ordered, nil
}

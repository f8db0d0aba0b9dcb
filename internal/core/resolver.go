package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"buildstage/internal/policies"
	"buildstage/internal/ports"
	"buildstage/internal/shared"
	"buildstage/internal/types"
)

// ResolverCore computes the transitive dependency closure: one pinned
// version per package name, constraints intersected across every
// declaration site, options decided through the frozen option table.
// It only reads package metadata through the catalog port and never
// writes anything.
type ResolverCore struct {
	catalog ports.CatalogPort
	options *policies.OptionTable
}

func NewResolverCore(catalog ports.CatalogPort, options *policies.OptionTable) *ResolverCore {
	return &ResolverCore{catalog: catalog, options: options}
}

// depState tracks one package during expansion. terms accumulate and
// never relax; version holds the current pin. runtime marks packages
// reachable through a library requirement (tools stay false and are
// excluded from staging).
type depState struct {
	name    string
	terms   []types.Constraint
	version string
	recipe  types.Recipe
	runtime bool
}

type workItem struct {
	name    string
	terms   []types.Constraint
	runtime bool
}

// Resolve expands the requirement set to a fixpoint. Constraints only
// accumulate, so re-pins move monotonically downward and the loop
// terminates. Settings are accepted read-only; they never influence
// version selection.
func (r *ResolverCore) Resolve(ctx context.Context, requirements []types.Requirement, settings types.Settings) ([]types.ResolvedDependency, error) {
	r.options.Freeze()
	log.Ctx(ctx).Debug().
		Int("requirements", len(requirements)).
		Str("build_type", settings.BuildType).
		Msg("resolving dependency graph")

	cache := newVersionCache()
	states := map[string]*depState{}
	var queue []workItem
	for _, requirement := range requirements {
		queue = append(queue, workItem{
			name:    shared.NormalizeDependencyName(requirement.Name),
			terms:   requirement.Constraints,
			runtime: requirement.Kind != types.DependencyKindTool,
		})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		state, ok := states[item.name]
		if !ok {
			state = &depState{name: item.name}
			states[item.name] = state
		}
		becameRuntime := item.runtime && !state.runtime
		state.runtime = state.runtime || item.runtime

		added, err := mergeTerms(state, item.terms, cache)
		if err != nil {
			return nil, err
		}

		if added || state.version == "" {
			if err := r.pin(ctx, state, cache, &queue); err != nil {
				return nil, err
			}
		} else if becameRuntime {
			// Already pinned as a tool; its subtree must follow the
			// runtime flip so it gets staged too.
			if err := enqueueRequires(state, &queue); err != nil {
				return nil, err
			}
		}
	}

	resolved := make([]types.ResolvedDependency, 0, len(states))
	for _, name := range shared.SortedKeys(states) {
		state := states[name]
		resolved = append(resolved, types.ResolvedDependency{
			Name:         name,
			Version:      state.version,
			Options:      r.effectiveOptions(state),
			ArtifactDirs: state.recipe.ArtifactDirs,
			IsBuildTool:  !state.runtime,
		})
	}
	log.Ctx(ctx).Debug().Int("resolved", len(resolved)).Msg("dependency graph resolved")
	return resolved, nil
}

// mergeTerms checks each incoming term pairwise against the recorded
// ones and appends the survivors. An empty pairwise intersection is a
// version conflict naming both declarations; exact duplicates are
// dropped so re-expansion cannot grow the state.
func mergeTerms(state *depState, incoming []types.Constraint, cache *versionCache) (bool, error) {
	added := false
	for _, term := range incoming {
		duplicate := false
		for _, existing := range state.terms {
			if existing == term {
				duplicate = true
				break
			}
			cmp := cache.comparator(term.Version, existing.Version)
			if !constraintsCompatible(term, existing, cmp) {
				return false, errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("version conflict for %s: %s (%s) vs %s (%s)",
						state.name, existing.String(), existing.Source, term.String(), term.Source))
			}
		}
		if !duplicate {
			state.terms = append(state.terms, term)
			added = true
		}
	}
	return added, nil
}

// pin selects the best compatible version for a state and, when the
// pin changed, expands the recipe's own requirements onto the queue.
func (r *ResolverCore) pin(ctx context.Context, state *depState, cache *versionCache, queue *[]workItem) error {
	available, err := r.catalog.Versions(state.name)
	if err != nil {
		return err
	}
	best, err := bestCompatibleVersion(state.name, state.terms, available, cache)
	if err != nil {
		return err
	}
	if best == state.version {
		return nil
	}
	recipe, err := r.catalog.Recipe(state.name, best)
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().
		Str("name", state.name).
		Str("version", best).
		Str("previous", state.version).
		Msg("pinned dependency")
	state.version = best
	state.recipe = recipe
	return enqueueRequires(state, queue)
}

func enqueueRequires(state *depState, queue *[]workItem) error {
	source := fmt.Sprintf("%s/%s", state.name, state.version)
	for _, raw := range state.recipe.Requires {
		name, terms, err := ParseRequirement(raw, source)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid requirement %q in recipe %s", raw, source)).
				WithCause(err)
		}
		*queue = append(*queue, workItem{name: name, terms: terms, runtime: state.runtime})
	}
	return nil
}

// effectiveOptions layers the frozen table over the recipe defaults:
// recipe values first, wildcard entries above them, exact-name entries
// on top.
func (r *ResolverCore) effectiveOptions(state *depState) map[string]string {
	effective := state.recipe.Options.Strings()
	for key, value := range r.options.Effective(state.name) {
		effective[key] = value
	}
	return effective
}

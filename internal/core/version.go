package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"

	"buildstage/internal/types"
)

// versionScheme selects the ordering applied to a comparison universe.
// Semver ordering is used when every version string in the universe
// parses as (possibly partial) semver; anything else falls back to the
// loose Debian-style ordering, which accepts nearly every version
// string seen in the wild.
type versionScheme int

const (
	schemeSemver versionScheme = iota
	schemeLoose
)

// versionCache memoizes parsed version objects to avoid repeated
// parsing during constraint evaluation and sorting.
type versionCache struct {
	semver map[string]*semver.Version
	loose  map[string]*debversion.Version
}

func newVersionCache() *versionCache {
	return &versionCache{
		semver: map[string]*semver.Version{},
		loose:  map[string]*debversion.Version{},
	}
}

// semverVersion returns a parsed semver, caching both hits and misses
// (a nil entry marks a string that does not parse).
func (c *versionCache) semverVersion(value string) *semver.Version {
	if parsed, ok := c.semver[value]; ok {
		return parsed
	}
	parsed, err := semver.NewVersion(value)
	if err != nil {
		parsed = nil
	}
	c.semver[value] = parsed
	return parsed
}

func (c *versionCache) looseVersion(value string) *debversion.Version {
	if parsed, ok := c.loose[value]; ok {
		return parsed
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		c.loose[value] = nil
		return nil
	}
	c.loose[value] = &parsed
	return &parsed
}

// schemeFor picks the ordering scheme for a comparison universe.
func (c *versionCache) schemeFor(values ...string) versionScheme {
	for _, value := range values {
		if c.semverVersion(value) == nil {
			return schemeLoose
		}
	}
	return schemeSemver
}

// comparator returns an ordering over version strings, fixed to the
// scheme of the given universe. Strings neither scheme can parse order
// lexically so the comparison itself never fails.
func (c *versionCache) comparator(values ...string) func(string, string) int {
	scheme := c.schemeFor(values...)
	return func(a string, b string) int {
		return c.compare(scheme, a, b)
	}
}

func (c *versionCache) compare(scheme versionScheme, a string, b string) int {
	if scheme == schemeSemver {
		v1 := c.semverVersion(a)
		v2 := c.semverVersion(b)
		if v1 != nil && v2 != nil {
			return v1.Compare(v2)
		}
	}
	v1 := c.looseVersion(a)
	v2 := c.looseVersion(b)
	if v1 != nil && v2 != nil {
		return v1.Compare(*v2)
	}
	return strings.Compare(a, b)
}

// satisfies reports whether a candidate version meets every constraint
// term under the given ordering.
func satisfies(version string, terms []types.Constraint, cmp func(string, string) int) bool {
	for _, term := range terms {
		if term.Op == types.ConstraintOpNone {
			continue
		}
		order := cmp(version, term.Version)
		switch term.Op {
		case types.ConstraintOpEq, types.ConstraintOpEq2:
			if order != 0 {
				return false
			}
		case types.ConstraintOpGte:
			if order < 0 {
				return false
			}
		case types.ConstraintOpGt:
			if order <= 0 {
				return false
			}
		case types.ConstraintOpLte:
			if order > 0 {
				return false
			}
		case types.ConstraintOpLt:
			if order >= 0 {
				return false
			}
		}
	}
	return true
}

// bestCompatibleVersion selects the highest available version that
// satisfies all terms. The comparison universe is the available
// versions plus the constraint bounds, so one scheme governs the whole
// selection.
func bestCompatibleVersion(name string, terms []types.Constraint, available []string, cache *versionCache) (string, error) {
	if len(available) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", name))
	}
	universe := make([]string, 0, len(available)+len(terms))
	universe = append(universe, available...)
	for _, term := range terms {
		if term.Version != "" {
			universe = append(universe, term.Version)
		}
	}
	cmp := cache.comparator(universe...)
	var candidates []string
	for _, version := range available {
		if satisfies(version, terms, cmp) {
			candidates = append(candidates, version)
		}
	}
	if len(candidates) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version for %s: have %s, constraints %s",
				name, strings.Join(available, ", "), formatTerms(terms)))
	}
	sort.Slice(candidates, func(i, j int) bool {
		return cmp(candidates[i], candidates[j]) > 0
	})
	return candidates[0], nil
}

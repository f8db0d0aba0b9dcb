package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/shared"
	"buildstage/internal/types"
)

// opTokens is the ordered list of constraint operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false
// matches (e.g. ">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpEq2,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
	types.ConstraintOpEq,
}

// ParseRequirement splits a compact requirement string such as
// "zlib>=1.2.11,<2.0" into a normalized package name and its
// constraint terms. A bare name carries no terms and admits any
// version.
func ParseRequirement(raw string, source string) (string, []types.Constraint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty requirement")
	}
	split := len(trimmed)
	for _, op := range opTokens {
		if idx := strings.Index(trimmed, string(op)); idx >= 0 && idx < split {
			split = idx
		}
	}
	name := shared.NormalizeDependencyName(trimmed[:split])
	if name == "" {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid requirement: %q", raw))
	}
	terms, err := ParseConstraintExpr(name, trimmed[split:], source)
	if err != nil {
		return "", nil, err
	}
	return name, terms, nil
}

// ParseConstraintExpr parses a constraint expression for a named
// package. Terms are separated by commas or whitespace; each term is
// an operator followed by a version, or a bare version which pins
// exactly. An empty expression admits any version.
func ParseConstraintExpr(name string, expr string, source string) ([]types.Constraint, error) {
	tokens := splitConstraintTokens(expr)
	var terms []types.Constraint
	for _, token := range tokens {
		op := types.ConstraintOpEq2
		version := token
		for _, candidate := range opTokens {
			if strings.HasPrefix(token, string(candidate)) {
				op = candidate
				version = strings.TrimSpace(strings.TrimPrefix(token, string(candidate)))
				break
			}
		}
		if op == types.ConstraintOpEq {
			op = types.ConstraintOpEq2
		}
		if version == "" || strings.ContainsAny(version, "<>=") {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid constraint term %q for %s", token, name))
		}
		terms = append(terms, types.Constraint{
			Name:    name,
			Op:      op,
			Version: version,
			Source:  source,
		})
	}
	return terms, nil
}

// splitConstraintTokens breaks an expression into operator+version
// tokens, re-joining an operator that was written with a space before
// its version (">= 1.2").
func splitConstraintTokens(expr string) []string {
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	var tokens []string
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if isOpToken(field) && i+1 < len(fields) {
			tokens = append(tokens, field+fields[i+1])
			i++
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

func isOpToken(value string) bool {
	for _, op := range opTokens {
		if value == string(op) {
			return true
		}
	}
	return false
}

// bound is one endpoint of the version interval a constraint term
// admits. A nil bound is unbounded.
type bound struct {
	version   string
	inclusive bool
}

func lowerBoundOf(c types.Constraint) *bound {
	switch c.Op {
	case types.ConstraintOpEq, types.ConstraintOpEq2:
		return &bound{version: c.Version, inclusive: true}
	case types.ConstraintOpGte:
		return &bound{version: c.Version, inclusive: true}
	case types.ConstraintOpGt:
		return &bound{version: c.Version, inclusive: false}
	}
	return nil
}

func upperBoundOf(c types.Constraint) *bound {
	switch c.Op {
	case types.ConstraintOpEq, types.ConstraintOpEq2:
		return &bound{version: c.Version, inclusive: true}
	case types.ConstraintOpLte:
		return &bound{version: c.Version, inclusive: true}
	case types.ConstraintOpLt:
		return &bound{version: c.Version, inclusive: false}
	}
	return nil
}

// constraintsCompatible reports whether two terms admit at least one
// common version under the given ordering. Every term denotes an
// interval, so the pair conflicts exactly when the interval
// intersection is empty.
func constraintsCompatible(a types.Constraint, b types.Constraint, cmp func(string, string) int) bool {
	lo := maxLowerBound(lowerBoundOf(a), lowerBoundOf(b), cmp)
	hi := minUpperBound(upperBoundOf(a), upperBoundOf(b), cmp)
	if lo == nil || hi == nil {
		return true
	}
	switch order := cmp(lo.version, hi.version); {
	case order < 0:
		return true
	case order > 0:
		return false
	default:
		return lo.inclusive && hi.inclusive
	}
}

func maxLowerBound(a *bound, b *bound, cmp func(string, string) int) *bound {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	switch order := cmp(a.version, b.version); {
	case order > 0:
		return a
	case order < 0:
		return b
	default:
		if !a.inclusive {
			return a
		}
		return b
	}
}

func minUpperBound(a *bound, b *bound, cmp func(string, string) int) *bound {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	switch order := cmp(a.version, b.version); {
	case order < 0:
		return a
	case order > 0:
		return b
	default:
		if !a.inclusive {
			return a
		}
		return b
	}
}

// formatTerms renders constraint terms with their declaration sites
// for error messages: "==1.84.0 (buildfile), >=1.90 (scene/2.1.0)".
func formatTerms(terms []types.Constraint) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts = append(parts, fmt.Sprintf("%s (%s)", term.String(), term.Source))
	}
	return strings.Join(parts, ", ")
}

package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/shared"
)

// GlobalPattern matches every package.
const GlobalPattern = "*"

// OptionTable is the scoped option store consulted during resolution.
// Patterns are either the global wildcard "*" or an exact package name
// ("name/*" is accepted as an alias for the exact form). For the same
// pattern and key the last Set wins; for the same key across patterns
// the exact name beats the wildcard. Once frozen the table rejects
// further mutation.
type OptionTable struct {
	global map[string]string
	byName map[string]map[string]string
	frozen bool
}

func NewOptionTable() *OptionTable {
	return &OptionTable{
		global: map[string]string{},
		byName: map[string]map[string]string{},
	}
}

// Set records an option assignment under a pattern. It fails once the
// table is frozen and on patterns other than "*" or an exact name.
func (t *OptionTable) Set(pattern string, key string, value string) error {
	if t.frozen {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("option table frozen: cannot set %s:%s", pattern, key))
	}
	if strings.TrimSpace(key) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("empty option key for pattern %q", pattern))
	}
	name, global, err := parseOptionPattern(pattern)
	if err != nil {
		return err
	}
	if global {
		t.global[key] = value
		return nil
	}
	entries, ok := t.byName[name]
	if !ok {
		entries = map[string]string{}
		t.byName[name] = entries
	}
	entries[key] = value
	return nil
}

// Freeze locks the table. Freezing twice is harmless; resolution
// freezes on entry so configuration cannot leak past it.
func (t *OptionTable) Freeze() {
	t.frozen = true
}

func (t *OptionTable) Frozen() bool {
	return t.frozen
}

// Effective returns the merged option set for a package: wildcard
// entries first, exact-name entries layered on top.
func (t *OptionTable) Effective(name string) map[string]string {
	merged := make(map[string]string, len(t.global))
	for key, value := range t.global {
		merged[key] = value
	}
	for key, value := range t.byName[shared.NormalizeDependencyName(name)] {
		merged[key] = value
	}
	return merged
}

// Patterns returns every pattern with at least one entry, wildcard
// first, names sorted.
func (t *OptionTable) Patterns() []string {
	var patterns []string
	if len(t.global) > 0 {
		patterns = append(patterns, GlobalPattern)
	}
	patterns = append(patterns, shared.SortedKeys(t.byName)...)
	return patterns
}

// parseOptionPattern normalizes a pattern into either the global
// wildcard or an exact package name. Partial wildcards are rejected:
// matching is by name, not by glob.
func parseOptionPattern(pattern string) (name string, global bool, err error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == GlobalPattern {
		return "", true, nil
	}
	trimmed = strings.TrimSuffix(trimmed, "/*")
	if trimmed == "" || strings.ContainsAny(trimmed, "*?[") {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported option pattern: %q", pattern))
	}
	return shared.NormalizeDependencyName(trimmed), false, nil
}

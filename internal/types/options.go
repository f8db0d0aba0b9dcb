package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OptionValue is a scalar option assignment as written in a manifest,
// profile, or recipe. Booleans and numbers are canonicalized to their
// string spelling ("true", "1.90"); non-scalar YAML nodes are rejected.
type OptionValue string

func (v *OptionValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("option values must be scalars, got %s", node.ShortTag())
	}
	if node.ShortTag() == "!!bool" {
		*v = OptionValue(strings.ToLower(node.Value))
		return nil
	}
	*v = OptionValue(node.Value)
	return nil
}

func (v OptionValue) String() string {
	return string(v)
}

type OptionMap map[string]OptionValue

// Strings converts the map to plain strings for consumers that no
// longer care about YAML decoding.
func (m OptionMap) Strings() map[string]string {
	if len(m) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for key, value := range m {
		out[key] = string(value)
	}
	return out
}

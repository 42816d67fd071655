// Package options handles processor options: the -A flag, options files and
// the value formats processors read.
package options

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKey is returned when an option has no key.
var ErrEmptyKey = errors.New("option key must not be empty")

// Map is a string-keyed option map. It implements flag.Value so it can back a
// repeatable flag:
//
//	-A annoclaim.annotations=example.com/anno.Cacheable -A annoclaim.verbose=true
//
// A bare key sets the option to the empty string.
type Map map[string]string

// String implements flag.Value.
func (m Map) String() string {
	keys := slices.Sorted(maps.Keys(m))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m[k]
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (m Map) Set(s string) error {
	key, value, _ := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: %q", ErrEmptyKey, s)
	}
	m[key] = value
	return nil
}

// Load reads options from a YAML mapping. Scalars are kept as written and
// sequences are joined with commas:
//
//	annoclaim.verbose: true
//	annoclaim.annotations:
//	  - example.com/anno.Cacheable
//	  - example.com/anno.RunWith
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options file: %w", err)
	}
	return Parse(data)
}

// Parse decodes options from YAML, see Load.
func Parse(data []byte) (Map, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding options: %w", err)
	}

	m := make(Map, len(raw))
	for key, node := range raw {
		if key == "" {
			return nil, ErrEmptyKey
		}
		switch node.Kind {
		case yaml.ScalarNode:
			m[key] = node.Value
		case yaml.SequenceNode:
			items := make([]string, 0, len(node.Content))
			for _, item := range node.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("option %q: line %d: list items must be scalars", key, item.Line)
				}
				items = append(items, item.Value)
			}
			m[key] = strings.Join(items, ",")
		default:
			return nil, fmt.Errorf("option %q: line %d: value must be a scalar or a list", key, node.Line)
		}
	}
	return m, nil
}

// Merge returns a new map holding the options of all maps; later maps win.
func Merge(ms ...Map) Map {
	out := Map{}
	for _, m := range ms {
		maps.Copy(out, m)
	}
	return out
}

var listSeparators = regexp.MustCompile(`[,\s]+`)

// SplitList splits a list on runs of commas and whitespace, dropping empty
// tokens.
func SplitList(s string) []string {
	var out []string
	for _, tok := range listSeparators.Split(s, -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Bool parses a boolean leniently: "true" in any case is true, everything
// else, including the empty string, is false.
func Bool(s string) bool {
	return strings.EqualFold(s, "true")
}

// Fingerprint returns a stable textual form of the map, suitable as a cache
// key.
func (m Map) Fingerprint() string {
	keys := slices.Sorted(maps.Keys(m))
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(m[k]))
		b.WriteByte(';')
	}
	return b.String()
}

// Package ignore handles //annoclaim:ignore directives.
package ignore

import (
	"go/ast"
	"go/token"
	"slices"
	"strings"
)

const directive = "annoclaim:ignore"

// Entry tracks an ignore directive and its usage.
type Entry struct {
	pos     token.Pos       // Position of the ignore comment
	names   []string        // Annotation names (empty = all)
	used    map[string]bool // Track usage per name
	usedAll bool            // Ignore-all directive suppressed something
}

// Map tracks ignore entries by line number.
type Map map[int]*Entry

// Build scans a file for ignore comments and returns a map.
func Build(fset *token.FileSet, file *ast.File) Map {
	m := make(Map)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if names, ok := parseComment(c.Text); ok {
				line := fset.Position(c.Pos()).Line
				m[line] = &Entry{
					pos:   c.Pos(),
					names: names,
					used:  make(map[string]bool),
				}
			}
		}
	}

	return m
}

// parseComment parses an ignore directive and returns the annotation names.
// Returns nil slice if no specific names are given (ignore all).
// Returns false if not an ignore comment.
//
// Supported formats:
//   - //annoclaim:ignore                               -> ignore all annotations
//   - //annoclaim:ignore legacy.Entity                 -> ignore one annotation
//   - //annoclaim:ignore legacy.Entity,legacy.Table    -> ignore several
//   - //annoclaim:ignore - reason                      -> ignore all with comment
//   - //annoclaim:ignore legacy.Entity - reason        -> ignore specific with comment
func parseComment(text string) ([]string, bool) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	rest, ok := strings.CutPrefix(text, directive)
	if !ok {
		return nil, false
	}
	// "annoclaim:ignored" is not the directive
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return nil, false
	}
	rest = strings.TrimSpace(rest)

	// Stop at comment markers: " - ", " //"
	if idx := strings.Index(rest, " - "); idx >= 0 {
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, " //"); idx >= 0 {
		rest = rest[:idx]
	}
	if strings.HasPrefix(rest, "- ") || rest == "-" || strings.HasPrefix(rest, "//") {
		return nil, true
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, true
	}

	parts := strings.Split(rest, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}

	return names, true
}

// ShouldIgnore reports whether an annotation on the given line is covered by
// a directive on the same or the previous line. An annotation may be known
// under several names (as written and fully qualified); a directive listing
// any of them covers it. The matching directive is marked as used.
func (m Map) ShouldIgnore(line int, names ...string) bool {
	return m.shouldIgnoreEntry(m[line], names) || m.shouldIgnoreEntry(m[line-1], names)
}

func (m Map) shouldIgnoreEntry(entry *Entry, names []string) bool {
	if entry == nil {
		return false
	}

	if len(entry.names) == 0 {
		entry.usedAll = true
		return true
	}

	for _, n := range entry.names {
		if slices.Contains(names, n) {
			entry.used[n] = true
			return true
		}
	}

	return false
}

// UnusedIgnore represents an unused ignore directive.
type UnusedIgnore struct {
	Pos   token.Pos
	Names []string // Unused names (empty if entire directive is unused)
}

// GetUnusedIgnores returns ignore directives that suppressed nothing, ordered
// by position.
func (m Map) GetUnusedIgnores() []UnusedIgnore {
	var unused []UnusedIgnore

	for _, entry := range m {
		if len(entry.names) == 0 {
			if !entry.usedAll {
				unused = append(unused, UnusedIgnore{Pos: entry.pos})
			}
			continue
		}

		var unusedNames []string
		for _, n := range entry.names {
			if !entry.used[n] {
				unusedNames = append(unusedNames, n)
			}
		}
		if len(unusedNames) > 0 {
			unused = append(unused, UnusedIgnore{Pos: entry.pos, Names: unusedNames})
		}
	}

	slices.SortFunc(unused, func(a, b UnusedIgnore) int {
		return int(a.Pos - b.Pos)
	})
	return unused
}

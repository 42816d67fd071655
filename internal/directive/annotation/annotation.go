// Package annotation finds annotations written in Go comments.
package annotation

import (
	"go/ast"
	"go/token"
	"go/types"
	"path"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zanata/annoclaim/processor"
)

// Imports maps the names a file uses for its imports to import paths.
type Imports map[string]string

// FileImports builds the import table of a file. Blank and dot imports are
// entered under the imported package's own name, so a package imported only
// for its annotations can still be referred to:
//
//	import _ "example.com/persistence"
//
//	// @persistence.Cacheable
func FileImports(info *types.Info, file *ast.File) Imports {
	imports := Imports{}
	for _, spec := range file.Imports {
		var name, importPath string
		if info != nil {
			if pn := info.PkgNameOf(spec); pn != nil {
				name, importPath = pn.Name(), pn.Imported().Path()
				if name == "_" || name == "." {
					name = pn.Imported().Name()
				}
			}
		}
		if importPath == "" {
			p, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			importPath = p
			name = defaultName(p)
			if spec.Name != nil && spec.Name.Name != "_" && spec.Name.Name != "." {
				name = spec.Name.Name
			}
		}
		imports[name] = importPath
	}
	return imports
}

// defaultName guesses the package name from an import path, skipping a
// major version suffix such as /v2.
func defaultName(importPath string) string {
	base := path.Base(importPath)
	if len(base) > 1 && base[0] == 'v' && isDigits(base[1:]) {
		if parent := path.Dir(importPath); parent != "." {
			base = path.Base(parent)
		}
	}
	return strings.ReplaceAll(base, "-", "_")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Scan returns the annotations in a comment group. An annotation is a line
// whose text starts with '@' followed by a name:
//
//	// @Entity
//	// @persistence.Cacheable
//	// @annogo.Annotation{AllowedElements: Types}
//	/*
//	 * @org.junit.runner.RunWith(Suite)
//	 */
//
// Names are qualified with Resolve.
func Scan(cg *ast.CommentGroup, pkgPath string, imports Imports) []processor.Occurrence {
	if cg == nil {
		return nil
	}

	var found []processor.Occurrence
	for _, c := range cg.List {
		for _, l := range commentLines(c.Text) {
			raw, col, ok := parseLine(l.text, l.block)
			if !ok {
				continue
			}
			found = append(found, processor.Occurrence{
				Name: Resolve(raw, pkgPath, imports),
				Raw:  raw,
				Pos:  c.Pos() + token.Pos(l.offset+col),
			})
		}
	}
	return found
}

type line struct {
	text   string
	offset int  // byte offset of text within the comment
	block  bool // from a /* */ comment
}

func commentLines(text string) []line {
	if rest, ok := strings.CutPrefix(text, "//"); ok {
		return []line{{text: rest, offset: 2}}
	}

	body := strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	var lines []line
	offset := 2
	for _, l := range strings.Split(body, "\n") {
		lines = append(lines, line{text: l, offset: offset, block: true})
		offset += len(l) + 1
	}
	return lines
}

// parseLine extracts the annotation name from a comment line. col is the
// byte offset of the '@' within text. Lines of block comments may carry a
// leading '*' decoration.
func parseLine(text string, block bool) (raw string, col int, ok bool) {
	i := skipSpace(text, 0)
	// block comment decoration: " * @Foo"
	if block && i < len(text) && text[i] == '*' {
		i = skipSpace(text, i+1)
	}
	if i >= len(text) || text[i] != '@' {
		return "", 0, false
	}
	col = i

	start := i + 1
	end := start
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !isNameRune(r) {
			break
		}
		end += size
	}
	raw = strings.TrimRight(text[start:end], "./-~")
	if raw == "" {
		return "", 0, false
	}
	if first, _ := utf8.DecodeRuneInString(raw); !unicode.IsLetter(first) && first != '_' {
		return "", 0, false
	}
	return raw, col, true
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '/' || r == '-' || r == '~'
}

// Resolve turns the name written after '@' into a fully-qualified name:
//
//	Entity                      -> <pkgPath>.Entity
//	persistence.Cacheable       -> <import path of persistence>.Cacheable
//	example.com/anno.Cacheable  -> unchanged
//	org.junit.runner.RunWith    -> unchanged (org is not an import)
func Resolve(raw, pkgPath string, imports Imports) string {
	if strings.Contains(raw, "/") {
		return raw
	}
	alias, rest, qualified := strings.Cut(raw, ".")
	if !qualified {
		if pkgPath == "" {
			return raw
		}
		return pkgPath + "." + raw
	}
	if importPath, ok := imports[alias]; ok {
		return importPath + "." + rest
	}
	return raw
}

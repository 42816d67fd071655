// Package annoclaim provides a go/analysis based annotation processing host.
// Annotations written in doc comments are offered to registered processors
// and every annotation no processor claims is reported.
package annoclaim

import (
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"maps"
	"reflect"
	"strings"
	"sync"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/zanata/annoclaim/internal/claimer"
	"github.com/zanata/annoclaim/internal/diag"
	"github.com/zanata/annoclaim/internal/directive/annotation"
	"github.com/zanata/annoclaim/internal/directive/ignore"
	"github.com/zanata/annoclaim/internal/options"
	"github.com/zanata/annoclaim/processor"
)

// Options read by the built-in claimer.
const (
	OptAnnotations = claimer.OptAnnotations
	OptVerbose     = claimer.OptVerbose
)

// Flags for the analyzer.
var (
	processorOpts   = options.Map{}
	optionsFile     string
	processorNames  string
	reportUnclaimed bool
)

func init() {
	Analyzer.Flags.Var(processorOpts, "A",
		"processor option key[=value], repeatable (e.g., -A annoclaim.annotations=example.com/anno.Cacheable)")
	Analyzer.Flags.StringVar(&optionsFile, "options-file", "",
		"YAML file with processor options; -A takes precedence")
	Analyzer.Flags.StringVar(&processorNames, "processors", "",
		"comma-separated list of processors to run (default: all registered)")
	Analyzer.Flags.BoolVar(&reportUnclaimed, "report-unclaimed", true,
		"report annotations that no processor claimed")
}

const doc = "runs annotation processors and reports annotations that no processor claimed"

// Analyzer is the flag-configured annotation processing analyzer.
var Analyzer = &analysis.Analyzer{
	Name:       "annoclaim",
	Doc:        doc,
	Requires:   []*analysis.Analyzer{inspect.Analyzer},
	Run:        run,
	ResultType: reflect.TypeOf((*processor.RoundResult)(nil)),
	Flags:      flag.FlagSet{},
}

var (
	ErrNoInspector      = errors.New("inspector analyzer result not found")
	ErrUnknownProcessor = errors.New("unknown annotation processor")
)

// Config configures an analyzer built with New.
type Config struct {
	// Options is the processor option map. It takes precedence over
	// OptionsFile.
	Options map[string]string
	// OptionsFile names a YAML file with processor options.
	OptionsFile string
	// Processors selects registered processors by name. Empty means all.
	Processors []string
	// DisableUnclaimedReport turns off the unclaimed annotation and unused
	// ignore diagnostics. Processors still run.
	DisableUnclaimedReport bool
	// Messager receives processor notes and warnings. Nil means standard
	// output and standard error.
	Messager processor.Messager
}

func (c Config) key() string {
	return fmt.Sprintf("%s|%q|%q|%t",
		options.Map(c.Options).Fingerprint(), c.OptionsFile, strings.Join(c.Processors, ","), c.DisableUnclaimedReport)
}

// New returns an analyzer for the given configuration. Its processors are
// initialized once, on the first package analyzed.
func New(cfg Config) *analysis.Analyzer {
	r := &runner{cfg: cfg}
	return &analysis.Analyzer{
		Name:       "annoclaim",
		Doc:        doc,
		Requires:   []*analysis.Analyzer{inspect.Analyzer},
		Run:        r.run,
		ResultType: reflect.TypeOf((*processor.RoundResult)(nil)),
	}
}

// runners caches one runner per flag configuration so that processors are
// initialized once per build invocation.
var runners sync.Map // config key -> *runner

func run(pass *analysis.Pass) (any, error) {
	cfg := Config{
		Options:                maps.Clone(processorOpts),
		OptionsFile:            optionsFile,
		Processors:             options.SplitList(processorNames),
		DisableUnclaimedReport: !reportUnclaimed,
	}
	r, _ := runners.LoadOrStore(cfg.key(), &runner{cfg: cfg})
	return r.(*runner).run(pass)
}

type runner struct {
	cfg Config

	once sync.Once
	host *processor.Host
	err  error
}

func (r *runner) setup() {
	opts := options.Map{}
	if r.cfg.OptionsFile != "" {
		fileOpts, err := options.Load(r.cfg.OptionsFile)
		if err != nil {
			r.err = err
			return
		}
		opts = fileOpts
	}
	opts = options.Merge(opts, r.cfg.Options)

	regs, err := selectProcessors(r.cfg.Processors)
	if err != nil {
		r.err = err
		return
	}

	var m processor.Messager = diag.Std()
	if r.cfg.Messager != nil {
		m = r.cfg.Messager
	}
	r.host = processor.NewHost(regs, opts, m)
}

func selectProcessors(names []string) ([]processor.Registration, error) {
	if len(names) == 0 {
		return processor.AllRegisteredProcessors(), nil
	}
	regs := make([]processor.Registration, 0, len(names))
	for _, name := range names {
		reg, ok := processor.LookupProcessor(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProcessor, name)
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

func (r *runner) run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	r.once.Do(r.setup)
	if r.err != nil {
		return nil, r.err
	}

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	round := collectRound(pass, insp, skipFiles)
	result := r.host.Process(round)

	if !r.cfg.DisableUnclaimedReport {
		ignoreMaps := buildIgnoreMaps(pass, skipFiles)
		reportUnclaimedAnnotations(pass, round, result, ignoreMaps)
		reportUnusedIgnores(pass, ignoreMaps)
	}

	return result, nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		if ast.IsGenerated(file) {
			skipFiles[pass.Fset.Position(file.Pos()).Filename] = true
		}
	}

	return skipFiles
}

// collectRound gathers the annotations of every doc comment in the package.
// Each comment group is scanned once, whichever node it is attached to.
func collectRound(pass *analysis.Pass, insp *inspector.Inspector, skipFiles map[string]bool) *processor.Round {
	round := &processor.Round{
		PkgPath:   pass.Pkg.Path(),
		GoVersion: pass.Pkg.GoVersion(),
	}

	nodeFilter := []ast.Node{
		(*ast.File)(nil),
		(*ast.GenDecl)(nil),
		(*ast.FuncDecl)(nil),
		(*ast.TypeSpec)(nil),
		(*ast.ValueSpec)(nil),
		(*ast.Field)(nil),
	}

	var (
		imports annotation.Imports
		skip    bool
		seen    = map[*ast.CommentGroup]bool{}
	)
	insp.Preorder(nodeFilter, func(n ast.Node) {
		var doc *ast.CommentGroup
		switch n := n.(type) {
		case *ast.File:
			// Preorder visits a file before anything declared in it.
			skip = skipFiles[pass.Fset.Position(n.Pos()).Filename]
			imports = annotation.FileImports(pass.TypesInfo, n)
			doc = n.Doc
		case *ast.GenDecl:
			doc = n.Doc
		case *ast.FuncDecl:
			doc = n.Doc
		case *ast.TypeSpec:
			doc = n.Doc
		case *ast.ValueSpec:
			doc = n.Doc
		case *ast.Field:
			doc = n.Doc
		}
		if skip || doc == nil || seen[doc] {
			return
		}
		seen[doc] = true
		round.Occurrences = append(round.Occurrences, annotation.Scan(doc, round.PkgPath, imports)...)
	})

	return round
}

// buildIgnoreMaps creates ignore maps for each file in the pass.
func buildIgnoreMaps(pass *analysis.Pass, skipFiles map[string]bool) map[string]ignore.Map {
	ignoreMaps := make(map[string]ignore.Map)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = ignore.Build(pass.Fset, file)
	}

	return ignoreMaps
}

func reportUnclaimedAnnotations(
	pass *analysis.Pass,
	round *processor.Round,
	result *processor.RoundResult,
	ignoreMaps map[string]ignore.Map,
) {
	for _, o := range round.Occurrences {
		if !result.Unclaimed.Contains(o.Name) {
			continue
		}
		pos := pass.Fset.Position(o.Pos)
		if ignoreMaps[pos.Filename].ShouldIgnore(pos.Line, o.Raw, o.Name) {
			continue
		}
		pass.Reportf(o.Pos, "no processor claimed annotation %s", o.Name)
	}
}

// reportUnusedIgnores reports any ignore directives that were not used.
func reportUnusedIgnores(pass *analysis.Pass, ignoreMaps map[string]ignore.Map) {
	for _, ignoreMap := range ignoreMaps {
		for _, unused := range ignoreMap.GetUnusedIgnores() {
			if len(unused.Names) == 0 {
				pass.Reportf(unused.Pos, "unused annoclaim:ignore directive")
			} else {
				pass.Reportf(unused.Pos, "unused annoclaim:ignore directive for annotation(s): %s", strings.Join(unused.Names, ", "))
			}
		}
	}
}

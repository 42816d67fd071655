package processor

import (
	"go/build"
	"go/token"
	"go/version"
	"maps"
	"runtime"
)

// Processor is implemented by annotation processors. The host calls Init
// exactly once before anything else, then queries the supported types, source
// version and options, and finally calls Process once per round.
type Processor interface {
	// Init configures the processor from the host environment.
	Init(env Environment)

	// SupportedAnnotationTypes returns the annotation name patterns the
	// processor handles. A pattern is a qualified name, "prefix.*" or "*".
	SupportedAnnotationTypes() NameSet

	// SupportedSourceVersion returns the newest Go language version the
	// processor is known to work with.
	SupportedSourceVersion() SourceVersion

	// SupportedOptions returns the option keys the processor reads.
	SupportedOptions() []string

	// Process handles the annotations offered in one round. Returning true
	// claims them: later processors are not offered them and the host does
	// not report them as unknown.
	Process(annotations NameSet, round *Round) bool
}

// Environment gives a processor access to host facilities during Init.
type Environment interface {
	// Options returns the string-keyed option map the host was configured
	// with. The map is owned by the caller.
	Options() map[string]string

	// Messager returns the sink for notes and warnings.
	Messager() Messager
}

// Messager prints notes and warnings on behalf of a processor.
type Messager interface {
	Note(format string, args ...any)
	Warning(format string, args ...any)
}

type discard struct{}

func (discard) Note(string, ...any)    {}
func (discard) Warning(string, ...any) {}

// Occurrence is a single annotation found in source.
type Occurrence struct {
	Name string    // fully-qualified annotation name
	Raw  string    // token as written after '@'
	Pos  token.Pos // position of the '@'
}

// Round is one pass of annotation processing. The analyzer produces one round
// per package.
type Round struct {
	// PkgPath is the import path of the package being processed.
	PkgPath string
	// GoVersion is the package's language version, e.g. "go1.22". It may be
	// empty when unknown.
	GoVersion string
	// Occurrences lists every annotation found in the package.
	Occurrences []Occurrence
}

// Names returns the set of annotation names present in the round.
func (r *Round) Names() NameSet {
	names := make([]string, len(r.Occurrences))
	for i, o := range r.Occurrences {
		names[i] = o.Name
	}
	return NewNameSet(names...)
}

// SourceVersion is a Go language version such as "go1.24".
type SourceVersion string

// LatestSourceVersion returns the newest language version known to the
// toolchain that built the running binary.
func LatestSourceVersion() SourceVersion {
	tags := build.Default.ReleaseTags
	if len(tags) > 0 {
		if latest := tags[len(tags)-1]; version.IsValid(latest) {
			return SourceVersion(latest)
		}
	}
	return SourceVersion(version.Lang(runtime.Version()))
}

// Supports reports whether code written for goVersion is within v. An empty
// or invalid goVersion is always supported.
func (v SourceVersion) Supports(goVersion string) bool {
	lang := version.Lang(goVersion)
	if lang == "" {
		return true
	}
	return version.Compare(string(v), lang) >= 0
}

func (v SourceVersion) String() string {
	return string(v)
}

// environment is the Environment handed to processors by a Host.
type environment struct {
	options  map[string]string
	messager Messager
}

func (e *environment) Options() map[string]string {
	return maps.Clone(e.options)
}

func (e *environment) Messager() Messager {
	return e.messager
}

// NewEnvironment returns an Environment over the given options. It is mostly
// useful for driving a processor outside of a Host, such as in tests.
func NewEnvironment(options map[string]string, m Messager) Environment {
	return &environment{options: options, messager: m}
}

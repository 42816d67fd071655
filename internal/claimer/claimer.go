// Package claimer provides a processor that claims a configured set of
// annotations so they are not reported as unknown.
package claimer

import (
	"github.com/zanata/annoclaim/internal/options"
	"github.com/zanata/annoclaim/processor"
)

// Option keys read by the claimer.
const (
	OptAnnotations = "annoclaim.annotations"
	OptVerbose     = "annoclaim.verbose"
)

// Name is the name the claimer registers under.
const Name = "annoclaim"

func init() {
	processor.RegisterProcessor(Name, func() processor.Processor { return New() })
}

// Claimer claims every round whose annotations are all in its configured
// set. The set is fixed by Init and only read afterwards, so Process is safe
// for concurrent use.
type Claimer struct {
	annotationsToClaim processor.NameSet
}

// New returns an uninitialized claimer. Until Init is called it claims
// nothing.
func New() *Claimer {
	return &Claimer{}
}

// SupportedAnnotationTypes returns the set configured by Init.
func (c *Claimer) SupportedAnnotationTypes() processor.NameSet {
	return c.annotationsToClaim
}

// SupportedSourceVersion returns the newest version the toolchain knows.
func (c *Claimer) SupportedSourceVersion() processor.SourceVersion {
	return processor.LatestSourceVersion()
}

// SupportedOptions returns the option keys read by Init.
func (c *Claimer) SupportedOptions() []string {
	return []string{OptAnnotations, OptVerbose}
}

// Init reads the claimed set and the verbose flag from the options. A
// missing annotation list is warned about and claims nothing.
func (c *Claimer) Init(env processor.Environment) {
	opts := env.Options()
	m := env.Messager()

	verbose := options.Bool(opts[OptVerbose])
	if verbose {
		m.Note("AnnotationClaimer is active.")
	}

	annoOption, ok := opts[OptAnnotations]
	if !ok {
		m.Warning("AnnotationClaimer not claiming annotations: %s is not set.", OptAnnotations)
		c.annotationsToClaim = processor.NameSet{}
		return
	}

	claimed := processor.NewNameSet(options.SplitList(annoOption)...)
	if verbose && claimed.Len() > 0 {
		m.Note("AnnotationClaimer claiming annotations:")
		for _, name := range claimed.Names() {
			m.Note("  %s", name)
		}
	}
	c.annotationsToClaim = claimed
}

// Process reports whether every annotation in the round is claimed.
func (c *Claimer) Process(annotations processor.NameSet, _ *processor.Round) bool {
	return c.annotationsToClaim.ContainsAll(annotations)
}

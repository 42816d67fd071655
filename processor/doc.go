// Package processor defines the contract between annotation processors and
// the host that runs them.
//
// Go has no language-level annotations, so annotations are written in doc
// comments, one per line, starting with '@':
//
//	// @persistence.Cacheable
//	// @annogo.Annotation{AllowedElements: Types}
//	type Order struct { ... }
//
// The name after '@' is resolved against the file's imports into a
// fully-qualified name such as "example.com/persistence.Cacheable".
//
// # Processors
//
// A [Processor] declares which annotation names it supports and, once per
// round, is offered the names present in that round. Returning true from
// Process claims the offered names.
//
// Processors register a [Factory] from an init function:
//
//	func init() {
//	    processor.RegisterProcessor("mine", func() processor.Processor { return &mine{} })
//	}
//
// # Host
//
// A [Host] runs registered processors through their lifecycle:
//
//  1. Init is called exactly once per processor with the option map.
//  2. SupportedAnnotationTypes, SupportedSourceVersion and SupportedOptions
//     are read once, right after Init.
//  3. Process is called once per round, with the unclaimed names the
//     processor's patterns match.
//
// Names left unclaimed after every processor ran are reported by the caller
// (the annoclaim analyzer reports them as unknown annotations).
//
// Supported type patterns follow the usual annotation processing rules:
//
//	*                      every annotation
//	example.com/anno.*     every annotation in example.com/anno
//	example.com/anno.Foo   exactly that annotation
//
// A processor that supports "*" is called even for rounds without
// annotations.
package processor

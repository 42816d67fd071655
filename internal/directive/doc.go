// Package directive groups the parsers for the comment syntax the analyzer
// understands:
//
//	directive/
//	├── annotation/  # @Name annotation lines in doc comments
//	└── ignore/      # //annoclaim:ignore directive
//
// # Annotations
//
// An annotation is a doc comment line starting with '@':
//
//	// Order is cached.
//	//
//	// @persistence.Cacheable
//	// @RunWith(Suite)
//	type Order struct{}
//
// See [annotation] package for details.
//
// # Ignore Directive
//
// Suppresses the unclaimed annotation report for the same or the next line:
//
//	//annoclaim:ignore
//	// @legacy.Entity
//
//	//annoclaim:ignore legacy.Entity,legacy.Table - kept for old readers
//
// See [ignore] package for details.
package directive

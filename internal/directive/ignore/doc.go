// Package ignore provides //annoclaim:ignore directive parsing.
//
// # Overview
//
// The ignore directive suppresses "no processor claimed annotation"
// reports for annotations on the same or the next line.
//
//	//annoclaim:ignore
//	// @legacy.Entity     // not reported
//	type Order struct{}
//
// # Name-Specific Ignores
//
// List annotation names to suppress only those. Names may be written as in
// the annotation or fully qualified:
//
//	//annoclaim:ignore legacy.Entity,example.com/legacy.Table
//
// A trailing reason is allowed after " - ":
//
//	//annoclaim:ignore legacy.Entity - removed in v3
//
// # Unused Ignore Detection
//
// Directives that suppress nothing are reported, as are names in a
// directive that never matched:
//
//	//annoclaim:ignore  // unused annoclaim:ignore directive
//	type Plain struct{}
package ignore

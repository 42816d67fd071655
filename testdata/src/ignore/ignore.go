package ignore

import _ "example.com/anno"

// Legacy is kept for old callers.
//
//annoclaim:ignore
// @anno.Legacy
type Legacy struct{}

// Named lists the annotation as written.
//
//annoclaim:ignore anno.Legacy - migrating
// @anno.Legacy
type Named struct{}

// Qualified lists the annotation by its full name.
//
//annoclaim:ignore example.com/anno.Legacy
// @anno.Legacy
type Qualified struct{}

// Partial lists more names than it needs.
//
//annoclaim:ignore anno.Legacy,anno.Other // want `unused annoclaim:ignore directive for annotation\(s\): anno\.Other`
// @anno.Legacy
type Partial struct{}

// Wrong does not cover the annotation below it.
//
//annoclaim:ignore anno.Other // want `unused annoclaim:ignore directive for annotation\(s\): anno\.Other`
// @anno.Legacy // want `no processor claimed annotation example\.com/anno\.Legacy`
type Wrong struct{}

// Unused has nothing to suppress.
//
//annoclaim:ignore // want `unused annoclaim:ignore directive`
type Unused struct{}

// Far is too far from its directive.
//
//annoclaim:ignore // want `unused annoclaim:ignore directive`
//
// @anno.Legacy // want `no processor claimed annotation example\.com/anno\.Legacy`
type Far struct{}

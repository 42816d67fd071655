// Command annoclaim runs annotation processors over Go packages and reports
// annotations that no processor claimed.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/zanata/annoclaim"
)

func main() {
	singlechecker.Main(annoclaim.Analyzer)
}

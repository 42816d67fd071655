// Package anno declares the annotation types used by the test packages.
package anno

type (
	Cacheable struct{}
	RunWith   struct{ Runner string }
	Nullable  struct{}
	Legacy    struct{}
)

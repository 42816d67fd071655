// Package anno declares annotation types.
package anno

type (
	Cacheable struct{}
	Audited   struct{}
)

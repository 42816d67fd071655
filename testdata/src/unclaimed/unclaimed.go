package unclaimed

import a "example.com/anno"

// Order mixes claimed and unclaimed annotations.
//
// @a.Cacheable
// @a.Nullable // want `no processor claimed annotation example\.com/anno\.Nullable`
type Order struct {
	// @a.Nullable // want `no processor claimed annotation example\.com/anno\.Nullable`
	Note string
}

// @Local // want `no processor claimed annotation unclaimed\.Local`
func handle() {}

var (
	// @org.junit.runner.RunWith(Suite) // want `no processor claimed annotation org\.junit\.runner\.RunWith`
	suite int

	// Not an annotation: mail me @ home.
	contact string
)

var _ = a.Cacheable{}

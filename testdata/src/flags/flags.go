package flags

import _ "example.com/anno"

// @anno.Cacheable
type Cached struct{}

// @anno.Legacy // want `no processor claimed annotation example\.com/anno\.Legacy`
type Old struct{}

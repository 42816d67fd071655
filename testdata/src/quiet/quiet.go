package quiet

import _ "example.com/anno"

// @anno.Cacheable
// @anno.Nullable
type Order struct{}

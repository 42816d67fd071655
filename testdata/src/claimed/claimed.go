package claimed

import _ "example.com/anno"

// Order is cached.
//
// @anno.Cacheable
// @anno.RunWith(Suite)
type Order struct {
	// @anno.Cacheable
	ID int

	Total int
}

// Load has no annotations.
func Load() *Order {
	return &Order{}
}

/*
 * Lookup is cached.
 *
 * @example.com/anno.Cacheable
 */
func Lookup(id int) *Order {
	return &Order{ID: id}
}

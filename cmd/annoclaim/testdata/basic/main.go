package main

import (
	"fmt"

	_ "example.com/basic/anno"
)

// Order is cached and audited.
//
// @anno.Cacheable
// @anno.Audited
type Order struct {
	ID int
}

func main() {
	fmt.Println(Order{ID: 1})
}

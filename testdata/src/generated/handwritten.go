package generated

// @Handwritten // want `no processor claimed annotation generated\.Handwritten`
type Handwritten struct{}

package scene

import "errors"

// ErrCycle is returned when a parenting operation would make a node its own
// ancestor.
var ErrCycle = errors.New("scene: node cannot be its own ancestor")

// NoIndex is returned by AddMesh when no mesh was attached.
const NoIndex = -1

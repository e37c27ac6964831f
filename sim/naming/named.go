// Package naming validates and builds the hierarchical names given to
// components and ports.
package naming

// Named describes an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

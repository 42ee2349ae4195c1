package engine

import "fmt"

// ForVersion resolves a model name to its engine. Exactly one implementation
// exists per version; a future variant becomes a new name behind the same
// interface, never a parallel copy of the current one.
func ForVersion(name string) (*SpreadModel, error) {
	if name == ModelName {
		return New(), nil
	}
	return nil, fmt.Errorf("unknown model version: %s", name)
}

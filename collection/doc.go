// Package collection keeps one manager stack per structure of a dataset
// and updates them concurrently.
//
// Stacks never share managers, so updates of different structures are
// independent:
//
//	c, _ := collection.New(layers, collection.WithConcurrency(4))
//	err := c.Add(ctx, structures...)
//	for i, top := range c.All() { ... }
package collection

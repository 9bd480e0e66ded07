package collection

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/neighborhood/manager"
	"github.com/hupe1980/neighborhood/stack"
	"github.com/hupe1980/neighborhood/structure"
)

// Option configures a Collection.
type Option func(o *options)

type options struct {
	concurrency int
	managerOpts []manager.Option
	logger      *slog.Logger
}

// WithConcurrency limits the number of stacks updated at once.
// Values below 1 mean runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithManagerOptions passes options to every manager of every stack.
func WithManagerOptions(optFns ...manager.Option) Option {
	return func(o *options) {
		o.managerOpts = append(o.managerOpts, optFns...)
	}
}

// WithLogger sets the collection logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Collection holds one stack per structure, all built from the same layer
// specification.
type Collection struct {
	mu     sync.RWMutex
	layers []stack.Layer
	stacks []*stack.Stack
	opts   options
}

// New validates layers by building a probe stack and returns an empty
// collection.
func New(layers []stack.Layer, optFns ...Option) (*Collection, error) {
	opts := options{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.concurrency < 1 {
		opts.concurrency = runtime.GOMAXPROCS(0)
	}

	if _, err := stack.Build(layers, opts.managerOpts...); err != nil {
		return nil, err
	}

	return &Collection{layers: layers, opts: opts}, nil
}

// Len returns the number of structures.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stacks)
}

// Stack returns the stack of structure i.
func (c *Collection) Stack(i int) *stack.Stack {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stacks[i]
}

// All yields the top manager of every stack in insertion order.
func (c *Collection) All() iter.Seq2[int, manager.Manager] {
	return func(yield func(int, manager.Manager) bool) {
		c.mu.RLock()
		stacks := c.stacks
		c.mu.RUnlock()
		for i, st := range stacks {
			if !yield(i, st.Top()) {
				return
			}
		}
	}
}

// Add builds a stack for each structure and updates them concurrently.
// Nothing is added when any update fails.
func (c *Collection) Add(ctx context.Context, structures ...*structure.AtomicStructure) error {
	stacks := make([]*stack.Stack, len(structures))
	for i := range structures {
		st, err := stack.Build(c.layers, c.opts.managerOpts...)
		if err != nil {
			return err
		}
		stacks[i] = st
	}

	if err := c.run(ctx, stacks, structures); err != nil {
		return err
	}

	c.mu.Lock()
	c.stacks = append(c.stacks, stacks...)
	n := len(c.stacks)
	c.mu.Unlock()

	c.opts.logger.Debug("structures added", "added", len(structures), "total", n)
	return nil
}

// Update hands structures[i] to stack i. len(structures) must equal Len.
func (c *Collection) Update(ctx context.Context, structures []*structure.AtomicStructure) error {
	c.mu.RLock()
	stacks := c.stacks
	c.mu.RUnlock()

	if len(structures) != len(stacks) {
		return fmt.Errorf("%w: %d structures for %d stacks", manager.ErrInvalidInput, len(structures), len(stacks))
	}
	return c.run(ctx, stacks, structures)
}

func (c *Collection) run(ctx context.Context, stacks []*stack.Stack, structures []*structure.AtomicStructure) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.concurrency)

	for i, st := range stacks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := st.Update(structures[i]); err != nil {
				return fmt.Errorf("structure %d: %w", i, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// NumPairs returns the total pair count over all stacks.
func (c *Collection) NumPairs() (int, error) {
	total := 0
	for _, top := range c.All() {
		n, err := top.ClusterCount(2)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

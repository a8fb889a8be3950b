package bfs

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for BFS.
var (
	// ErrStartVertexNotFound is returned if the start viewpoint is not in the graph.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil is returned if the graph pointer is nil.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an option is given an invalid value.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures a BFS run.
type Option func(*Options)

// Options holds the BFS configuration.
type Options struct {
	// Ctx allows cancellation between dequeues. Defaults to context.Background().
	Ctx context.Context

	// MaxDepth limits exploration to this many hops; 0 means no limit.
	MaxDepth int

	err error
}

// DefaultOptions returns an unlimited search without cancellation.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth limits the search to d hops. Negative d is an
// ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth must be >= 0, got %d", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result holds the outcome of a BFS run.
type Result struct {
	// Order lists viewpoints in visit order.
	Order []string

	// Depth maps each reached viewpoint to its hop count from the start.
	Depth map[string]int

	// Parent maps each reached viewpoint except the start to its BFS parent.
	Parent map[string]string
}

// PathTo reconstructs the hop-shortest path from the start to dest.
// It returns nil if dest was not reached.
func (r *Result) PathTo(dest string) []string {
	if _, ok := r.Depth[dest]; !ok {
		return nil
	}
	path := make([]string, r.Depth[dest]+1)
	for i, cur := len(path)-1, dest; i >= 0; i-- {
		path[i] = cur
		cur = r.Parent[cur]
	}

	return path
}

// Package distance precomputes all-pairs shortest-path tables for scene
// graphs and answers the distance queries the scorer needs.
//
// A Table covers one scene: a dense V×V matrix (matrix.Dense) filled by one
// Dijkstra run per source viewpoint, plus a viewpoint → row index map.
// An Index groups the Tables of many scenes, built concurrently.
//
// Invariants of every Table:
//
//	d(u,u) = 0
//	d(u,v) = d(v,u)
//	d(u,w) ≤ d(u,v) + d(v,w)
//
// Unreachable pairs are stored as +Inf and reported as ErrUnreachable.
//
// Both types are read-only after construction and safe for concurrent reads
// without locking.
//
// Errors:
//
//	ErrUnknownScene - scan has no table in the Index.
//	ErrUnknownNode  - viewpoint is not a vertex of the scene.
//	ErrUnreachable  - the two viewpoints lie in different components.
//	ErrEmptyPath    - Nearest or PathLength called with no viewpoints.
package distance

// Package bfs provides breadth-first search over a scene graph, returning
// hop counts, parent links and visit order, plus connected components.
//
// What
//
//   - Explore viewpoints in non-decreasing hop count from a start viewpoint.
//     Edge weights are ignored; Depth counts edges.
//   - Result holds Order (visit sequence), Depth (hops from start) and
//     Parent (predecessor in the BFS tree).
//   - Honors MaxDepth (d>0) or no limit (d==0) and an optional context.
//   - Components partitions a graph into its connected components.
//
// Determinism
//
//	core.NeighborIDs returns neighbours sorted by id and BFS enqueues them in
//	that order, so the visit sequence is reproducible. Components are
//	ordered by their smallest viewpoint id.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package bfs

// Package dijkstra implements Dijkstra's single-source shortest-path
// algorithm over core.Graph scene graphs with non-negative float64 weights.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost distance from one source viewpoint
//     to every other viewpoint in O((V + E) log V) time.
//   - It relies on a min-heap (priority queue) with the "lazy decrease-key"
//     strategy: improved distances are pushed again and stale entries are
//     skipped when popped.
//   - Unreachable viewpoints keep distance +Inf.
//
// The distance package runs Dijkstra once per source vertex to build a
// scene's all-pairs table.
//
// API reference:
//
//	func Dijkstra(
//	    g *core.Graph,
//	    opts ...Option,
//	) (dist map[string]float64, prev map[string]string, err error)
//
//	  - opts: Source(string) is required; WithReturnPath() requests prev.
//	  - prev[v] is the predecessor of v on one shortest path, or "" for the
//	    source and unreachable vertices. Nil unless WithReturnPath is given.
//
// Thread safety:
//
//   - Dijkstra only reads g; concurrent runs over the same graph are safe as
//     long as nobody mutates it.
package dijkstra

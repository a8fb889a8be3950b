// Package core provides the thread-safe in-memory scene graph used by the
// scorer: viewpoints are vertices carrying a 3-D position, and navigable
// connections are undirected edges weighted by the Euclidean distance between
// their endpoints.
//
// The Graph G = (V,E) is deliberately narrow:
//
//   - Undirected edges only; AddEdge mirrors every edge in the adjacency map.
//   - Non-negative, finite float64 weights (ErrBadWeight otherwise).
//   - No self-loops (ErrLoopNotAllowed) and no parallel edges
//     (ErrMultiEdgeNotAllowed).
//   - Collision-free atomic Edge.ID generation ("e1", "e2", …).
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj) to minimise lock contention while scenes are built.
//
// Determinism:
//
//	Vertices(), Edges(), Neighbors() and NeighborIDs() all return sorted
//	results, so distance tables and logs are reproducible run to run.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string, pos Position) error  // O(1)
//	HasVertex(id string) bool                 // O(1)
//	Vertex(id string) (Vertex, error)         // O(1)
//
//	// Edge lifecycle
//	AddEdge(from, to string, weight float64) (edgeID string, err error) // O(1)
//	HasEdge(from, to string) bool             // O(1)
//
//	// Queries
//	Neighbors(id string) ([]Edge, error)      // O(d log d)
//	Vertices() []string                       // O(V log V)
//	Edges() []*Edge                           // O(E log E)
//
// Once a scene graph is handed to the distance index it is never mutated
// again; readers may then query it from any number of goroutines.
package core

// Package core defines the central Graph, Vertex, Edge and Position types,
// and provides thread-safe primitives for building and querying scene graphs.
//
// Errors:
//
//	ErrEmptyVertexID       - vertex ID is the empty string.
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrBadWeight           - negative, NaN or infinite edge weight.
//	ErrLoopNotAllowed      - edge from a vertex to itself.
//	ErrMultiEdgeNotAllowed - a second edge between the same endpoints.
package core

import (
	"errors"
	"math"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrBadWeight indicates a weight that is negative, NaN or infinite.
	ErrBadWeight = errors.New("core: edge weight must be finite and non-negative")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Position is a point in scene coordinates.
type Position struct {
	X, Y, Z float64
}

// Distance returns the Euclidean distance between p and q.
// Complexity: O(1).
func (p Position) Distance(q Position) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Vertex represents a viewpoint in the scene graph.
type Vertex struct {
	// ID is the unique viewpoint identifier within its Graph.
	ID string

	// Position is the viewpoint location in scene coordinates.
	Position Position
}

// Edge represents an undirected connection between two viewpoints.
//
// Edges returned by Neighbors are oriented copies: From is always the queried
// vertex, To the neighbour.
type Edge struct {
	// ID uniquely identifies this edge in the Graph.
	ID string

	// From is one endpoint vertex ID.
	From string

	// To is the other endpoint vertex ID.
	To string

	// Weight is the traversal cost of the edge.
	Weight float64
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes the vertex and adjacency maps for n vertices.
// Non-positive values are ignored.
func WithCapacity(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.capacity = n
		}
	}
}

// Graph is the core in-memory scene graph.
//
// muVert protects vertices; muEdgeAdj protects edges and adjacencyList.
// Lock order is always muVert -> muEdgeAdj.
// nextEdgeID is an atomic counter for unique Edge.ID generation.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	capacity int // initial map size hint

	// Storage
	nextEdgeID uint64             // atomic edge ID generator
	vertices   map[string]*Vertex // vertex ID → Vertex
	edges      map[string]*Edge   // edge ID → Edge

	// adjacencyList[from][to] = edge ID; every edge is stored in both directions.
	adjacencyList map[string]map[string]string
}

// NewGraph creates an empty undirected weighted Graph.
// Complexity: O(1) (O(n) with WithCapacity(n)).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	g.vertices = make(map[string]*Vertex, g.capacity)
	g.edges = make(map[string]*Edge, g.capacity)
	g.adjacencyList = make(map[string]map[string]string, g.capacity)

	return g
}

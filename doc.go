// Package visitron scores vision-and-language navigation trajectories
// against ground-truth routes through scene connectivity graphs.
//
// What is visitron?
//
//	A thread-safe scorer built from small packages:
//		• core         scene graph of viewpoints with positions and weighted edges
//		• connectivity parse <scan>_connectivity.json into scene graphs
//		• dijkstra     single-source shortest paths
//		• bfs          hop search and connected components
//		• distance     all-pairs distance tables per scene
//		• dtw          dynamic time warping over a pairwise cost
//		• groundtruth  NDH, CVDN, R2R and R4R reference records
//		• trajectory   submissions, validation and measurement
//		• metrics      nav error, oracle errors, SPL, nDTW, CLS
//		• eval         parallel scoring runs and summaries
//
// Outer layers: config (YAML), telemetry (Prometheus), server (HTTP) and
// cmd/vlneval (CLI).
//
// Quick start:
//
//	go run ./cmd/vlneval score --config vlneval.yaml submissions.json
package visitron

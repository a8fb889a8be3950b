// Package trajectory defines submitted navigation trajectories, decodes
// submission files and validates a trajectory against a scene graph.
//
// Wire form of a trajectory:
//
//	[["viewpointId", headingRad, elevationRad], ...]
//
// Validation rules, in order:
//  1. The trajectory is non-empty (ErrEmptyTrajectory).
//  2. Its first viewpoint equals the reference start (StartMismatchError).
//  3. Every consecutive pair of distinct viewpoints is a graph edge
//     (MissingEdgeError).
//
// A step that repeats the previous viewpoint (a turn in place) adds a hop
// but no length.
package trajectory

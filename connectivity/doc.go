// Package connectivity turns per-scene connectivity descriptions into
// core.Graph scene graphs.
//
// A description is a JSON array of viewpoint records:
//
//	[{"image_id": "a1", "included": true,
//	  "unobstructed": [false, true, ...],
//	  "pose": [16 floats, row-major 4x4 camera-to-world transform]}, ...]
//
// unobstructed[j] says whether record j is directly reachable from this
// record. Only included records become vertices; an edge is added for every
// included pair that is mutually unobstructed, weighted by the Euclidean
// distance between the pose translations (pose[3], pose[7], pose[11]). A
// one-sided unobstructed flag means the file is corrupt and the whole scene
// is rejected with ErrDataIntegrity.
//
// Files are named <dir>/<scan>_connectivity.json. LoadScenes reads many
// scans concurrently, one task per scene.
package connectivity

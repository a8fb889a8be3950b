// Package groundtruth loads reference navigation records for the supported
// datasets and resolves each record's reference path.
//
// Datasets and their file layout under a data root:
//
//	NDH   NDH/data/<split>.json
//	CVDN  CVDN/data/<split>.json
//	R2R   R2R/data/R2R_<split>.json
//	R4R   R4R/data/R4R_<split>.json
//
// CVDN files use idx, planner_nav_steps and nav_steps; they are read as
// inst_idx, planner_path and player_path.
//
// The reference path of a record is chosen by a PathType. trusted_path
// resolves to the player path when the planner goal occurs in the player
// path after its first step, and to the planner path (NDH, CVDN) or the
// instruction path (R2R, R4R) otherwise.
package groundtruth

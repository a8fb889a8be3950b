// Package metrics computes the per-instruction navigation scores.
//
// For a validated trajectory with final viewpoint f, reference path R with
// start s and goal g, planner goal p and error margin ε:
//
//	nav error          d(f, g), success when < ε
//	oracle error       d(nearest(traj, g), g)
//	oracle-plan error  d(nearest(traj, p), p)
//	dist-to-end        min_e d(s, e) − min_e d(f, e) over the end panos
//	SPL                success · sp / max(length, sp), sp = d(s, g)
//	nDTW               exp(−DTW(traj, R) / (ε·|R|))
//	CLS                coverage · expected / (expected + |expected − len(traj)|)
//
// with coverage the mean over R of exp(−min_v d(u, v)/ε) and expected the
// coverage times the length of R.
package metrics

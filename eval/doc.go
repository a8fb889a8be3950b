// Package eval runs a scoring pass over a set of submitted trajectories.
//
// An Evaluator owns the ground truth and the distance Index. Score claims
// submissions in order (unknown ids are ignored, repeated ids are fatal),
// validates and scores claimed trajectories on a bounded worker pool, and
// hands every result to an Aggregator. The Aggregator checks that each
// expected instruction was submitted, averages the per-instruction scores
// into a Summary and verifies that mean SPL never exceeds the success rate.
//
// Failure policy:
//
//	ModeStrict      the first per-instruction error aborts the run.
//	ModePermissive  per-instruction errors are reported in Report.Failures
//	                and left out of the Summary.
package eval

// Package settle picks a settlement solver by name and runs it behind one
// entry point.
//
// Solve validates the snapshot, rejects balances that do not sum to zero
// within 0.01, routes to the configured solver and optionally verifies the
// plan. Config is plain YAML:
//
//	algorithm: layered-k4   # greedy-max | greedy-min | hybrid | layered | layered-k4
//	verify: true
//
// New returns the same solvers as core.Solver values for callers that
// compare them side by side.
package settle

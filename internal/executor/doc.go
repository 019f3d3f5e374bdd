// Package executor runs validated workflows: it dispatches eligible nodes
// concurrently through a bounded worker pool, applies per-node retry,
// timeout and aggregation policy, cascades failures to dependents, and
// emits one progress event per status transition.
//
// Each run is an isolated instance owning its execution-status map;
// concurrent runs of the same workflow definition never share state.
// Observers get read-only snapshots, either through the progress bus or by
// querying the run manager.
//
// Eligibility rules: a node fires once the number of satisfied inputs
// (upstream producers that reached success) meets its requiredInputs
// threshold, which defaults to all inbound edges. With waitForAll set, the
// node additionally waits for every upstream producer to succeed;
// otherwise first-wins race semantics apply. A node whose threshold can no
// longer be met is marked skipped, transitively, and reported rather than
// silently dropped.
//
// Input assembly: the input record handed to a handler merges the output
// records of its successful upstream producers, keyed by port id, in edge
// declaration order (later producers win key collisions).
//
// The accounting follows a single invariant: every node settles exactly
// once (success, error, or skipped) and each settlement releases one
// WaitGroup slot, so run completion is just wg.Wait.
package executor

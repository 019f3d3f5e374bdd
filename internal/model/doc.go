// Package model defines the value types shared by every engine component:
// the workflow aggregate (nodes, edges, metadata), node execution state, and
// checkpoint records.
//
// The package is deliberately dependency-free. It sits at the bottom of the
// import graph so that the validator, scheduler, executor and stores can all
// exchange the same types without cycles. Values are immutable by
// convention: the engine never mutates a Workflow it was handed, and
// mutation of execution state happens only through the executor's own
// bookkeeping.
package model

package executor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skyops/flowgrid/internal/ctxlog"
	"github.com/skyops/flowgrid/internal/events"
	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// runNode is the executor's mutable bookkeeping for one workflow node.
type runNode struct {
	node       model.Node
	deps       []*runNode
	dependents []*runNode

	mu        sync.Mutex
	satisfied int  // upstream producers that reached success
	resolved  int  // upstream producers that reached any terminal status
	enqueued  bool // handed to the ready channel; only a worker may settle it now
	settled   bool // reached a terminal status; wg slot released
}

// required returns the node's effective input threshold: requiredInputs
// clamped to the inbound edge count, defaulting to all inbound edges.
func (n *runNode) required() int {
	req := n.node.RequiredInputs
	if req <= 0 || req > len(n.deps) {
		req = len(n.deps)
	}
	return req
}

// run is one executing workflow instance. It exclusively owns its results
// map; everything handed out is a copy.
type run struct {
	id      string
	wf      model.Workflow
	reg     *registry.Registry
	bus     *events.Bus
	workers int

	ctx    context.Context
	cancel context.CancelFunc

	nodes []*runNode // declaration order
	byID  map[string]*runNode
	ready chan *runNode
	wg    sync.WaitGroup
	done  chan struct{}

	running atomic.Bool

	mu      sync.Mutex
	results map[string]*model.NodeExecutionResult
}

// newRun builds the bookkeeping graph for a validated workflow. Edge
// references are trusted here; validation happens before a run starts.
func newRun(id string, wf model.Workflow, reg *registry.Registry, bus *events.Bus, workers int) *run {
	r := &run{
		id:      id,
		wf:      wf,
		reg:     reg,
		bus:     bus,
		workers: workers,
		byID:    make(map[string]*runNode, len(wf.Nodes)),
		ready:   make(chan *runNode, len(wf.Nodes)),
		done:    make(chan struct{}),
		results: make(map[string]*model.NodeExecutionResult, len(wf.Nodes)),
	}

	for _, n := range wf.Nodes {
		rn := &runNode{node: n}
		r.nodes = append(r.nodes, rn)
		r.byID[n.ID] = rn
		r.results[n.ID] = &model.NodeExecutionResult{NodeID: n.ID, Status: model.StatusIdle}
	}
	for _, e := range wf.Edges {
		source := r.byID[e.Source]
		target := r.byID[e.Target]
		target.deps = append(target.deps, source)
		source.dependents = append(source.dependents, target)
	}

	return r
}

// start launches the worker pool and seeds the ready channel with root
// nodes in declaration order. It returns immediately; completion closes
// r.done.
func (r *run) start(ctx context.Context) {
	logger := ctxlog.FromContext(ctx).With("runID", r.id, "workflow", r.wf.ID)
	r.ctx, r.cancel = context.WithCancel(ctxlog.WithLogger(context.Background(), logger))
	r.running.Store(true)

	r.wg.Add(len(r.nodes))

	rootCount := 0
	for _, rn := range r.nodes {
		if len(rn.deps) == 0 {
			rn.mu.Lock()
			rn.enqueued = true
			rn.mu.Unlock()
			r.ready <- rn
			rootCount++
		}
	}
	logger.Debug("Run initialized.", "nodes", len(r.nodes), "roots", rootCount, "workers", r.workers)

	for i := 0; i < r.workers; i++ {
		go r.worker(i)
	}

	go func() {
		r.wg.Wait()
		close(r.ready)
		r.running.Store(false)
		r.cancel()
		close(r.done)
		logger.Info("🏁 Run finished.", "summary", r.summary())
	}()
}

// update applies a mutation to a node's live result under lock, then
// publishes a snapshot. One call per status transition.
func (r *run) update(nodeID string, fn func(res *model.NodeExecutionResult)) model.NodeExecutionResult {
	r.mu.Lock()
	res := r.results[nodeID]
	fn(res)
	snap := res.Clone()
	r.mu.Unlock()

	r.bus.Publish(snap)
	return snap
}

// resultOf returns a snapshot of one node's current result.
func (r *run) resultOf(nodeID string) model.NodeExecutionResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results[nodeID].Clone()
}

// snapshot returns a copy of the whole per-node status map.
func (r *run) snapshot() map[string]model.NodeExecutionResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]model.NodeExecutionResult, len(r.results))
	for id, res := range r.results {
		out[id] = res.Clone()
	}
	return out
}

// summary counts statuses for the end-of-run log line.
func (r *run) summary() map[model.Status]int {
	counts := make(map[model.Status]int)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.results {
		counts[res.Status]++
	}
	return counts
}

// settle records a node's terminal status exactly once, releases its
// WaitGroup slot, and notifies dependents so they can fire or cascade.
func (r *run) settle(rn *runNode, fn func(res *model.NodeExecutionResult)) {
	rn.mu.Lock()
	if rn.settled {
		rn.mu.Unlock()
		return
	}
	rn.settled = true
	rn.mu.Unlock()

	snap := r.update(rn.node.ID, fn)
	r.wg.Done()

	for _, dep := range rn.dependents {
		r.noteUpstream(dep, rn.node.ID, snap.Status)
	}
}

// noteUpstream records one upstream terminal outcome on a dependent and
// decides its fate: enqueue once the input threshold is met, or skip once
// the threshold can never be met.
func (r *run) noteUpstream(rn *runNode, upstreamID string, upstream model.Status) {
	rn.mu.Lock()
	rn.resolved++
	if upstream == model.StatusSuccess {
		rn.satisfied++
	}

	var enqueue, skip bool
	if !rn.settled && !rn.enqueued {
		total := len(rn.deps)
		if rn.node.WaitForAll {
			// Every producer must succeed, not merely finish.
			switch {
			case rn.satisfied == total:
				enqueue = true
			case rn.resolved > rn.satisfied:
				skip = true
			}
		} else {
			req := rn.required()
			switch {
			case rn.satisfied >= req:
				enqueue = true
			case rn.satisfied+(total-rn.resolved) < req:
				skip = true
			}
		}
		if enqueue {
			rn.enqueued = true
		}
	}
	rn.mu.Unlock()

	if enqueue {
		r.ready <- rn
	}
	if skip {
		r.skip(rn, fmt.Sprintf("skipped: required inputs cannot be satisfied after failure of %q", upstreamID))
	}
}

// skip settles a node as skipped; the cascade continues through settle's
// dependent notification.
func (r *run) skip(rn *runNode, reason string) {
	ctxlog.FromContext(r.ctx).Warn("Skipping node.", "nodeID", rn.node.ID, "reason", reason)
	now := time.Now()
	r.settle(rn, func(res *model.NodeExecutionResult) {
		res.Status = model.StatusSkipped
		res.Error = reason
		res.EndedAt = &now
	})
}

// assembleInputs merges the output records of successful upstream
// producers, keyed by port id, in edge declaration order.
func (r *run) assembleInputs(rn *runNode) map[string]any {
	inputs := make(map[string]any)
	for _, dep := range rn.deps {
		res := r.resultOf(dep.node.ID)
		if res.Status != model.StatusSuccess {
			continue
		}
		for k, v := range res.Output {
			inputs[k] = v
		}
	}
	return inputs
}

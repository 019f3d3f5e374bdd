package registry

import (
	"context"
	"fmt"

	"github.com/skyops/flowgrid/internal/ctxlog"
)

// ValidateRegistry checks spec/handler parity after module registration: a
// spec without a handler means nodes of that type can be drawn but never
// run, and a handler without a spec can never pass validation. Either is a
// wiring mistake, caught at startup rather than mid-run.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for t := range r.specs {
		if _, ok := r.handlers[t]; !ok {
			return fmt.Errorf("node type %q has a spec but no registered handler", t)
		}
	}
	for t := range r.handlers {
		if _, ok := r.specs[t]; !ok {
			return fmt.Errorf("handler registered for %q but no node spec exists", t)
		}
	}

	logger.Debug("Registry parity check passed.", "types", len(r.specs))
	return nil
}

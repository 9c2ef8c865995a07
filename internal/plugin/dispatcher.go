package plugin

import (
	"context"
	"fmt"

	"github.com/astralplayer/gesturekit/internal/action"
)

// Dispatcher routes resolved actions to the plugin handling them.
type Dispatcher struct {
	manager  *Manager
	executor *Executor
}

// NewDispatcher creates a Dispatcher over the given manager and
// executor.
func NewDispatcher(m *Manager, e *Executor) *Dispatcher {
	return &Dispatcher{manager: m, executor: e}
}

// Dispatch forwards an action to the first plugin listing its kind.
// Actions no plugin handles are silently ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, a action.Action) error {
	kind := a.Kind.String()
	p, ok := d.manager.ForAction(kind)
	if !ok {
		return nil
	}

	req := &Request{
		Action:   kind,
		Amount:   a.Amount,
		CustomID: a.CustomID,
	}

	resp, err := d.executor.Execute(ctx, p, req)
	if err != nil {
		return fmt.Errorf("plugin %s: %w", p.Manifest.Name, err)
	}
	if !resp.Success {
		return fmt.Errorf("plugin %s: %s", p.Manifest.Name, resp.Error)
	}
	return nil
}

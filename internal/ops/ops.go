// Package ops sequences the interactive operations: query entities,
// format them, hand them to the picker, resolve the pick, issue the
// action. Every pipeline is strictly sequential and aborts at the first
// failing stage; an empty pick returns before any action is issued.
package ops

import (
	"context"
	"fmt"

	"github.com/niri-contrib/niri-action/internal/config"
	"github.com/niri-contrib/niri-action/internal/ipc"
	"github.com/niri-contrib/niri-action/internal/listing"
	"github.com/niri-contrib/niri-action/internal/logging"
	"github.com/niri-contrib/niri-action/internal/selection"
)

// Dispatcher is the query/action surface ops needs from the IPC client.
type Dispatcher interface {
	Query(ctx context.Context, req ipc.Request) (*ipc.Response, error)
	RunAction(ctx context.Context, action ipc.Action) error
}

// LinePicker presents candidate lines and returns the picked one, or ""
// on cancel.
type LinePicker interface {
	Pick(ctx context.Context, lines []string) (string, error)
}

// Orchestrator owns the session for the process lifetime and runs one
// operation per invocation.
type Orchestrator struct {
	client Dispatcher
	picker LinePicker
	cfg    *config.Config
}

// New creates an orchestrator over an established client and picker.
func New(client Dispatcher, picker LinePicker, cfg *config.Config) *Orchestrator {
	return &Orchestrator{client: client, picker: picker, cfg: cfg}
}

// FocusContainer picks a window and focuses it.
func (o *Orchestrator) FocusContainer(ctx context.Context) error {
	windows, err := o.windows(ctx)
	if err != nil {
		return err
	}

	line, err := o.picker.Pick(ctx, listing.Windows(windows))
	if err != nil {
		return err
	}
	if line == "" {
		logging.Debug().Str("op", "focus-container").Msg("picker cancelled")
		return nil
	}

	id, err := selection.ParseID(line)
	if err != nil {
		return err
	}

	logging.Info().Str("op", "focus-container").Uint64("window", id).Msg("focusing window")
	return o.client.RunAction(ctx, ipc.Action{
		FocusWindow: &ipc.FocusWindow{ID: id},
	})
}

// StealContainer picks a window and moves it into the currently focused
// workspace without following it.
func (o *Orchestrator) StealContainer(ctx context.Context) error {
	windows, err := o.windows(ctx)
	if err != nil {
		return err
	}

	current, err := o.currentWorkspace(ctx)
	if err != nil {
		return err
	}

	line, err := o.picker.Pick(ctx, listing.Windows(windows))
	if err != nil {
		return err
	}
	if line == "" {
		logging.Debug().Str("op", "steal-container").Msg("picker cancelled")
		return nil
	}

	id, err := selection.ParseID(line)
	if err != nil {
		return err
	}

	logging.Info().Str("op", "steal-container").
		Uint64("window", id).Uint64("workspace", current.ID).
		Msg("stealing window into focused workspace")
	return o.client.RunAction(ctx, ipc.Action{
		MoveWindowToWorkspace: &ipc.MoveWindowToWorkspace{
			WindowID:  &id,
			Reference: ipc.WorkspaceID(current.ID),
			Focus:     false,
		},
	})
}

// FocusWorkspace picks a workspace and focuses it. A pick that matches
// no listed workspace (free-typed text, no colon) falls back to focusing
// the last workspace and renaming it to the typed text: two actions, no
// rollback. If the rename fails the workspace stays focused under its
// old name.
func (o *Orchestrator) FocusWorkspace(ctx context.Context) error {
	workspaces, err := o.workspaces(ctx)
	if err != nil {
		return err
	}

	line, err := o.picker.Pick(ctx, listing.Workspaces(workspaces))
	if err != nil {
		return err
	}

	sel, err := selection.Resolve(line)
	if err != nil {
		return err
	}

	switch sel.Kind {
	case selection.Cancelled:
		logging.Debug().Str("op", "focus-workspace").Msg("picker cancelled")
		return nil

	case selection.Identified:
		logging.Info().Str("op", "focus-workspace").Uint64("workspace", sel.ID).Msg("focusing workspace")
		return o.client.RunAction(ctx, ipc.Action{
			FocusWorkspace: &ipc.FocusWorkspace{Reference: ipc.WorkspaceID(sel.ID)},
		})

	case selection.FreeText:
		last, err := lastWorkspace(listing.SortWorkspaces(workspaces))
		if err != nil {
			return err
		}

		logging.Info().Str("op", "focus-workspace").
			Uint64("workspace", last.ID).Str("name", sel.Text).
			Msg("focusing last workspace and renaming")

		ref := ipc.WorkspaceID(last.ID)
		if err := o.client.RunAction(ctx, ipc.Action{
			FocusWorkspace: &ipc.FocusWorkspace{Reference: ref},
		}); err != nil {
			return err
		}
		return o.client.RunAction(ctx, ipc.Action{
			SetWorkspaceName: &ipc.SetWorkspaceName{Name: sel.Text, Workspace: &ref},
		})

	default:
		return fmt.Errorf("unexpected selection kind %d", sel.Kind)
	}
}

// MoveToWorkspace picks a workspace and moves the focused window there
// without following it.
func (o *Orchestrator) MoveToWorkspace(ctx context.Context) error {
	workspaces, err := o.workspaces(ctx)
	if err != nil {
		return err
	}

	line, err := o.picker.Pick(ctx, listing.Workspaces(workspaces))
	if err != nil {
		return err
	}
	if line == "" {
		logging.Debug().Str("op", "move-to-workspace").Msg("picker cancelled")
		return nil
	}

	id, err := selection.ParseID(line)
	if err != nil {
		return err
	}

	logging.Info().Str("op", "move-to-workspace").Uint64("workspace", id).Msg("moving focused window")
	return o.client.RunAction(ctx, ipc.Action{
		MoveWindowToWorkspace: &ipc.MoveWindowToWorkspace{
			Reference: ipc.WorkspaceID(id),
			Focus:     false,
		},
	})
}

// MoveWorkspaceToOutput picks an output and moves the focused workspace
// onto it. The identifier here is the output's name, not a numeric id.
func (o *Orchestrator) MoveWorkspaceToOutput(ctx context.Context) error {
	outputs, err := o.outputs(ctx)
	if err != nil {
		return err
	}

	line, err := o.picker.Pick(ctx, listing.Outputs(outputs))
	if err != nil {
		return err
	}
	if line == "" {
		logging.Debug().Str("op", "move-workspace-to-output").Msg("picker cancelled")
		return nil
	}

	name, err := selection.ParseName(line)
	if err != nil {
		return err
	}

	logging.Info().Str("op", "move-workspace-to-output").Str("output", name).Msg("moving focused workspace")
	return o.client.RunAction(ctx, ipc.Action{
		MoveWorkspaceToMonitor: &ipc.MoveWorkspaceToMonitor{Output: name},
	})
}

// windows fetches the open windows.
func (o *Orchestrator) windows(ctx context.Context) ([]ipc.Window, error) {
	resp, err := o.client.Query(ctx, ipc.WindowsRequest())
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	if resp.Kind != ipc.ResponseWindows {
		return nil, fmt.Errorf("windows query answered with %s", resp.Kind)
	}
	return resp.Windows, nil
}

// workspaces fetches the workspaces.
func (o *Orchestrator) workspaces(ctx context.Context) ([]ipc.Workspace, error) {
	resp, err := o.client.Query(ctx, ipc.WorkspacesRequest())
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	if resp.Kind != ipc.ResponseWorkspaces {
		return nil, fmt.Errorf("workspaces query answered with %s", resp.Kind)
	}
	return resp.Workspaces, nil
}

// outputs fetches the connected outputs.
func (o *Orchestrator) outputs(ctx context.Context) (map[string]ipc.Output, error) {
	resp, err := o.client.Query(ctx, ipc.OutputsRequest())
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	if resp.Kind != ipc.ResponseOutputs {
		return nil, fmt.Errorf("outputs query answered with %s", resp.Kind)
	}
	return resp.Outputs, nil
}

// currentWorkspace returns the focused workspace. A session always has
// exactly one; none reported is an invariant violation, and with several
// the first match wins.
func (o *Orchestrator) currentWorkspace(ctx context.Context) (*ipc.Workspace, error) {
	workspaces, err := o.workspaces(ctx)
	if err != nil {
		return nil, err
	}
	for i := range workspaces {
		if workspaces[i].IsFocused {
			return &workspaces[i], nil
		}
	}
	return nil, fmt.Errorf("no focused workspace reported by the compositor")
}

// lastWorkspace returns the highest-index workspace of an index-sorted
// listing. An empty listing is an invariant violation: a session always
// has at least one workspace.
func lastWorkspace(sorted []ipc.Workspace) (*ipc.Workspace, error) {
	if len(sorted) == 0 {
		return nil, fmt.Errorf("workspace listing is empty")
	}
	return &sorted[len(sorted)-1], nil
}

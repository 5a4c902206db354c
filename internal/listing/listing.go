// Package listing turns compositor entities into the single-line form
// the picker presents. Every line starts with the entity's canonical
// identifier followed by ": "; that prefix is the contract the selection
// package resolves against, so ids must never contain a colon.
package listing

import (
	"fmt"
	"sort"

	"github.com/niri-contrib/niri-action/internal/ipc"
)

const (
	unknownTitle     = "Unknown"
	unnamedWorkspace = "<unnamed>"
	unknownSerial    = "<unknown>"
)

// Windows formats windows as "<id>: <title>", preserving the order the
// compositor returned them in.
func Windows(windows []ipc.Window) []string {
	lines := make([]string, len(windows))
	for i, w := range windows {
		title := unknownTitle
		if w.Title != nil {
			title = *w.Title
		}
		lines[i] = fmt.Sprintf("%d: %s", w.ID, title)
	}
	return lines
}

// SortWorkspaces returns a copy sorted ascending by display index. Ops
// and the picker lines go through this so "last workspace" means the
// same thing everywhere.
func SortWorkspaces(workspaces []ipc.Workspace) []ipc.Workspace {
	sorted := make([]ipc.Workspace, len(workspaces))
	copy(sorted, workspaces)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Idx < sorted[j].Idx
	})
	return sorted
}

// Workspaces formats workspaces as "<id>: <name> (<idx>)", sorted
// ascending by index.
func Workspaces(workspaces []ipc.Workspace) []string {
	sorted := SortWorkspaces(workspaces)
	lines := make([]string, len(sorted))
	for i, ws := range sorted {
		name := unnamedWorkspace
		if ws.Name != nil {
			name = *ws.Name
		}
		lines[i] = fmt.Sprintf("%d: %s (%d)", ws.ID, name, ws.Idx)
	}
	return lines
}

// Outputs formats outputs as "<name>: <make> <model> <serial>". Map
// iteration order is not deterministic and nothing downstream relies on
// the ordering of these lines.
func Outputs(outputs map[string]ipc.Output) []string {
	lines := make([]string, 0, len(outputs))
	for _, out := range outputs {
		serial := unknownSerial
		if out.Serial != nil {
			serial = *out.Serial
		}
		lines = append(lines, fmt.Sprintf("%s: %s %s %s", out.Name, out.Make, out.Model, serial))
	}
	return lines
}

package output

import (
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/niri-contrib/niri-action/internal/ipc"
)

// PrintWindowsTable prints windows in a table format
func PrintWindowsTable(windows []ipc.Window) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Title", "App", "Workspace", "Focused")

	// Sort by ID
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})

	for _, win := range windows {
		title := truncate(deref(win.Title), 40)
		app := truncate(deref(win.AppID), 20)

		workspace := ""
		if win.WorkspaceID != nil {
			workspace = fmt.Sprintf("%d", *win.WorkspaceID)
		}

		focused := ""
		if win.IsFocused {
			focused = "*"
		}

		table.Append(
			fmt.Sprintf("%d", win.ID),
			title,
			app,
			workspace,
			focused,
		)
	}

	table.Render()
}

// PrintWorkspacesTable prints workspaces in a table format, sorted by
// display index.
func PrintWorkspacesTable(workspaces []ipc.Workspace) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Index", "Name", "Output", "Active", "Focused")

	sort.SliceStable(workspaces, func(i, j int) bool {
		return workspaces[i].Idx < workspaces[j].Idx
	})

	for _, ws := range workspaces {
		active := ""
		if ws.IsActive {
			active = "*"
		}
		focused := ""
		if ws.IsFocused {
			focused = "*"
		}

		table.Append(
			fmt.Sprintf("%d", ws.ID),
			fmt.Sprintf("%d", ws.Idx),
			deref(ws.Name),
			deref(ws.Output),
			active,
			focused,
		)
	}

	table.Render()
}

// PrintOutputsTable prints outputs in a table format, sorted by name.
func PrintOutputsTable(outputs map[string]ipc.Output) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Make", "Model", "Serial")

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		out := outputs[name]
		table.Append(out.Name, out.Make, out.Model, deref(out.Serial))
	}

	table.Render()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// truncate shortens a string to maxLen characters with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

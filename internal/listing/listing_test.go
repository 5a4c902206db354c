package listing

import (
	"reflect"
	"testing"

	"github.com/niri-contrib/niri-action/internal/ipc"
)

func strPtr(s string) *string { return &s }

func TestWindows(t *testing.T) {
	windows := []ipc.Window{
		{ID: 42, Title: strPtr("editor")},
		{ID: 7, Title: nil},
		{ID: 3, Title: strPtr("a: colon title")},
	}

	got := Windows(windows)
	want := []string{
		"42: editor",
		"7: Unknown",
		"3: a: colon title",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Windows() = %v, want %v", got, want)
	}
}

func TestWorkspacesSortedByIndex(t *testing.T) {
	workspaces := []ipc.Workspace{
		{ID: 10, Idx: 2, Name: strPtr("mail")},
		{ID: 11, Idx: 0, Name: nil},
		{ID: 12, Idx: 1, Name: strPtr("code")},
	}

	got := Workspaces(workspaces)
	want := []string{
		"11: <unnamed> (0)",
		"12: code (1)",
		"10: mail (2)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Workspaces() = %v, want %v", got, want)
	}
}

func TestWorkspacesDoesNotMutateInput(t *testing.T) {
	workspaces := []ipc.Workspace{
		{ID: 1, Idx: 2},
		{ID: 2, Idx: 0},
	}
	Workspaces(workspaces)
	if workspaces[0].Idx != 2 {
		t.Error("Workspaces() reordered its input slice")
	}
}

func TestSortWorkspacesStable(t *testing.T) {
	// Indexes are not unique across outputs; equal indexes keep their
	// listing order.
	workspaces := []ipc.Workspace{
		{ID: 1, Idx: 1, Output: strPtr("DP-1")},
		{ID: 2, Idx: 0, Output: strPtr("DP-1")},
		{ID: 3, Idx: 1, Output: strPtr("DP-2")},
	}

	sorted := SortWorkspaces(workspaces)
	wantIDs := []uint64{2, 1, 3}
	for i, ws := range sorted {
		if ws.ID != wantIDs[i] {
			t.Fatalf("SortWorkspaces order = %v at %d, want ids %v", ws.ID, i, wantIDs)
		}
	}
}

func TestOutputs(t *testing.T) {
	outputs := map[string]ipc.Output{
		"DP-1": {Name: "DP-1", Make: "Dell", Model: "U2720Q", Serial: strPtr("ABC123")},
	}

	got := Outputs(outputs)
	want := []string{"DP-1: Dell U2720Q ABC123"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Outputs() = %v, want %v", got, want)
	}
}

func TestOutputsMissingSerial(t *testing.T) {
	outputs := map[string]ipc.Output{
		"eDP-1": {Name: "eDP-1", Make: "BOE", Model: "0x095F"},
	}

	got := Outputs(outputs)
	want := []string{"eDP-1: BOE 0x095F <unknown>"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Outputs() = %v, want %v", got, want)
	}
}

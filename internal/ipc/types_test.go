package ipc

import (
	"encoding/json"
	"testing"
)

func TestRequestMarshal(t *testing.T) {
	id := uint64(42)
	tests := []struct {
		name     string
		req      Request
		expected string
	}{
		{"outputs", OutputsRequest(), `"Outputs"`},
		{"windows", WindowsRequest(), `"Windows"`},
		{"workspaces", WorkspacesRequest(), `"Workspaces"`},
		{
			"focus window",
			ActionRequest(Action{FocusWindow: &FocusWindow{ID: 5}}),
			`{"Action":{"FocusWindow":{"id":5}}}`,
		},
		{
			"focus workspace by id",
			ActionRequest(Action{FocusWorkspace: &FocusWorkspace{Reference: WorkspaceID(3)}}),
			`{"Action":{"FocusWorkspace":{"reference":{"Id":3}}}}`,
		},
		{
			"move window with explicit id",
			ActionRequest(Action{MoveWindowToWorkspace: &MoveWindowToWorkspace{
				WindowID:  &id,
				Reference: WorkspaceID(7),
				Focus:     false,
			}}),
			`{"Action":{"MoveWindowToWorkspace":{"window_id":42,"reference":{"Id":7},"focus":false}}}`,
		},
		{
			"move focused window",
			ActionRequest(Action{MoveWindowToWorkspace: &MoveWindowToWorkspace{
				Reference: WorkspaceID(7),
			}}),
			`{"Action":{"MoveWindowToWorkspace":{"reference":{"Id":7},"focus":false}}}`,
		},
		{
			"move workspace to monitor",
			ActionRequest(Action{MoveWorkspaceToMonitor: &MoveWorkspaceToMonitor{Output: "DP-1"}}),
			`{"Action":{"MoveWorkspaceToMonitor":{"output":"DP-1"}}}`,
		},
		{
			"set workspace name",
			ActionRequest(Action{SetWorkspaceName: &SetWorkspaceName{
				Name:      "scratch",
				Workspace: refPtr(WorkspaceID(9)),
			}}),
			`{"Action":{"SetWorkspaceName":{"name":"scratch","workspace":{"Id":9}}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.req)
			if err != nil {
				t.Fatalf("Marshal(%+v) unexpected error: %v", tt.req, err)
			}
			if string(data) != tt.expected {
				t.Errorf("Marshal(%+v) = %s, want %s", tt.req, data, tt.expected)
			}
		})
	}
}

func TestRequestMarshalMissingAction(t *testing.T) {
	if _, err := json.Marshal(Request{Kind: RequestAction}); err == nil {
		t.Error("expected error marshaling action request without payload")
	}
}

func TestReplyUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind ResponseKind
		wantErr  string
	}{
		{"handled", `{"Ok":"Handled"}`, ResponseHandled, ""},
		{"windows", `{"Ok":{"Windows":[{"id":1,"title":"editor"}]}}`, ResponseWindows, ""},
		{"workspaces", `{"Ok":{"Workspaces":[{"id":2,"idx":0,"is_focused":true}]}}`, ResponseWorkspaces, ""},
		{"outputs", `{"Ok":{"Outputs":{"DP-1":{"name":"DP-1","make":"Dell","model":"U2720Q"}}}}`, ResponseOutputs, ""},
		{"daemon error", `{"Err":"no such window"}`, 0, "no such window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reply Reply
			if err := json.Unmarshal([]byte(tt.input), &reply); err != nil {
				t.Fatalf("Unmarshal(%s) unexpected error: %v", tt.input, err)
			}
			if tt.wantErr != "" {
				if reply.Err == nil || *reply.Err != tt.wantErr {
					t.Fatalf("Unmarshal(%s).Err = %v, want %q", tt.input, reply.Err, tt.wantErr)
				}
				return
			}
			if reply.Ok == nil {
				t.Fatalf("Unmarshal(%s).Ok = nil", tt.input)
			}
			if reply.Ok.Kind != tt.wantKind {
				t.Errorf("Unmarshal(%s).Ok.Kind = %v, want %v", tt.input, reply.Ok.Kind, tt.wantKind)
			}
		})
	}
}

func TestReplyUnmarshalPayloads(t *testing.T) {
	var reply Reply
	input := `{"Ok":{"Windows":[{"id":1,"title":"editor","app_id":"foot"},{"id":2,"title":null}]}}`
	if err := json.Unmarshal([]byte(input), &reply); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	windows := reply.Ok.Windows
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	if windows[0].ID != 1 || windows[0].Title == nil || *windows[0].Title != "editor" {
		t.Errorf("windows[0] = %+v, want id 1 title editor", windows[0])
	}
	if windows[1].Title != nil {
		t.Errorf("windows[1].Title = %v, want nil", *windows[1].Title)
	}
}

func TestResponseUnmarshalRejectsUnknownVariant(t *testing.T) {
	inputs := []string{
		`"Pong"`,
		`{"Screens":[]}`,
		`{"Windows":[],"Workspaces":[]}`,
	}
	for _, input := range inputs {
		var resp Response
		if err := json.Unmarshal([]byte(input), &resp); err == nil {
			t.Errorf("Unmarshal(%s) expected error, got nil", input)
		}
	}
}

func refPtr(r WorkspaceReference) *WorkspaceReference {
	return &r
}

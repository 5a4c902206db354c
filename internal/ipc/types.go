// Package ipc implements the client side of niri's IPC protocol: JSON
// messages, one per line, over the unix socket niri advertises in
// $NIRI_SOCKET. Requests and responses are tagged unions; the compositor
// answers every request with either {"Ok": ...} or {"Err": "..."}.
package ipc

import (
	"encoding/json"
	"fmt"
)

// RequestKind discriminates the closed set of requests this client sends.
type RequestKind int

const (
	RequestOutputs RequestKind = iota
	RequestWindows
	RequestWorkspaces
	RequestAction
)

// Request is one message to the compositor. Query variants serialize as
// bare strings ("Windows"); the action variant as {"Action": {...}}.
type Request struct {
	Kind   RequestKind
	Action *Action
}

// OutputsRequest asks for the connected outputs.
func OutputsRequest() Request { return Request{Kind: RequestOutputs} }

// WindowsRequest asks for the open windows.
func WindowsRequest() Request { return Request{Kind: RequestWindows} }

// WorkspacesRequest asks for the workspaces.
func WorkspacesRequest() Request { return Request{Kind: RequestWorkspaces} }

// ActionRequest wraps a mutating action in a request.
func ActionRequest(action Action) Request {
	return Request{Kind: RequestAction, Action: &action}
}

// MarshalJSON implements the niri wire encoding for Request.
func (r Request) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RequestOutputs:
		return json.Marshal("Outputs")
	case RequestWindows:
		return json.Marshal("Windows")
	case RequestWorkspaces:
		return json.Marshal("Workspaces")
	case RequestAction:
		if r.Action == nil {
			return nil, fmt.Errorf("action request has no action payload")
		}
		return json.Marshal(map[string]*Action{"Action": r.Action})
	default:
		return nil, fmt.Errorf("unknown request kind %d", r.Kind)
	}
}

// Action is a mutating intent. Exactly one field must be set; the set
// field names the wire variant.
type Action struct {
	FocusWindow            *FocusWindow            `json:"FocusWindow,omitempty"`
	FocusWorkspace         *FocusWorkspace         `json:"FocusWorkspace,omitempty"`
	MoveWindowToWorkspace  *MoveWindowToWorkspace  `json:"MoveWindowToWorkspace,omitempty"`
	MoveWorkspaceToMonitor *MoveWorkspaceToMonitor `json:"MoveWorkspaceToMonitor,omitempty"`
	SetWorkspaceName       *SetWorkspaceName       `json:"SetWorkspaceName,omitempty"`
}

// Name returns the wire variant name of the set action, for logging.
func (a Action) Name() string {
	switch {
	case a.FocusWindow != nil:
		return "FocusWindow"
	case a.FocusWorkspace != nil:
		return "FocusWorkspace"
	case a.MoveWindowToWorkspace != nil:
		return "MoveWindowToWorkspace"
	case a.MoveWorkspaceToMonitor != nil:
		return "MoveWorkspaceToMonitor"
	case a.SetWorkspaceName != nil:
		return "SetWorkspaceName"
	default:
		return "unknown"
	}
}

// FocusWindow focuses a window by id.
type FocusWindow struct {
	ID uint64 `json:"id"`
}

// FocusWorkspace switches to the referenced workspace.
type FocusWorkspace struct {
	Reference WorkspaceReference `json:"reference"`
}

// MoveWindowToWorkspace moves a window (the focused one when WindowID is
// nil) to the referenced workspace.
type MoveWindowToWorkspace struct {
	WindowID  *uint64            `json:"window_id,omitempty"`
	Reference WorkspaceReference `json:"reference"`
	Focus     bool               `json:"focus"`
}

// MoveWorkspaceToMonitor moves a workspace (the focused one when
// Reference is nil) to the named output.
type MoveWorkspaceToMonitor struct {
	Output    string              `json:"output"`
	Reference *WorkspaceReference `json:"reference,omitempty"`
}

// SetWorkspaceName renames a workspace (the focused one when Workspace
// is nil).
type SetWorkspaceName struct {
	Name      string              `json:"name"`
	Workspace *WorkspaceReference `json:"workspace,omitempty"`
}

// WorkspaceReference identifies a workspace by id, index, or name.
// Exactly one field must be set. Wherever an existing workspace's id is
// known this client references by id.
type WorkspaceReference struct {
	ID    *uint64 `json:"Id,omitempty"`
	Index *uint8  `json:"Index,omitempty"`
	Name  *string `json:"Name,omitempty"`
}

// WorkspaceID references a workspace by its stable numeric id.
func WorkspaceID(id uint64) WorkspaceReference {
	return WorkspaceReference{ID: &id}
}

// WorkspaceIndex references a workspace by its display index.
func WorkspaceIndex(idx uint8) WorkspaceReference {
	return WorkspaceReference{Index: &idx}
}

// WorkspaceName references a workspace by name.
func WorkspaceName(name string) WorkspaceReference {
	return WorkspaceReference{Name: &name}
}

// ResponseKind discriminates the closed set of success payloads.
type ResponseKind int

const (
	// ResponseHandled is the bare acknowledgement: the only valid
	// success outcome for an action, carrying no data.
	ResponseHandled ResponseKind = iota
	ResponseOutputs
	ResponseWindows
	ResponseWorkspaces
)

// String returns the wire variant name of the kind.
func (k ResponseKind) String() string {
	switch k {
	case ResponseHandled:
		return "Handled"
	case ResponseOutputs:
		return "Outputs"
	case ResponseWindows:
		return "Windows"
	case ResponseWorkspaces:
		return "Workspaces"
	default:
		return fmt.Sprintf("ResponseKind(%d)", int(k))
	}
}

// Response is one success payload from the compositor. Only the field
// matching Kind is populated.
type Response struct {
	Kind       ResponseKind
	Outputs    map[string]Output
	Windows    []Window
	Workspaces []Workspace
}

// UnmarshalJSON decodes the tagged-union wire form: the unit variant
// "Handled" is a bare string, every data variant an object with exactly
// one key.
func (r *Response) UnmarshalJSON(data []byte) error {
	var unit string
	if err := json.Unmarshal(data, &unit); err == nil {
		if unit != "Handled" {
			return fmt.Errorf("unknown response variant %q", unit)
		}
		r.Kind = ResponseHandled
		return nil
	}

	var variants map[string]json.RawMessage
	if err := json.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if len(variants) != 1 {
		return fmt.Errorf("expected exactly one response variant, got %d", len(variants))
	}

	for name, raw := range variants {
		switch name {
		case "Outputs":
			r.Kind = ResponseOutputs
			return json.Unmarshal(raw, &r.Outputs)
		case "Windows":
			r.Kind = ResponseWindows
			return json.Unmarshal(raw, &r.Windows)
		case "Workspaces":
			r.Kind = ResponseWorkspaces
			return json.Unmarshal(raw, &r.Workspaces)
		default:
			return fmt.Errorf("unknown response variant %q", name)
		}
	}
	return nil
}

// Reply is the top-level exchange outcome: exactly one of Ok or Err is
// set by the compositor.
type Reply struct {
	Ok  *Response `json:"Ok,omitempty"`
	Err *string   `json:"Err,omitempty"`
}

// Window is one open window as reported by the compositor.
type Window struct {
	ID          uint64  `json:"id"`
	Title       *string `json:"title"`
	AppID       *string `json:"app_id"`
	WorkspaceID *uint64 `json:"workspace_id"`
	IsFocused   bool    `json:"is_focused"`
}

// Workspace is one workspace as reported by the compositor. The id is
// stable for the workspace's lifetime; the idx is its display ordering
// on its output.
type Workspace struct {
	ID        uint64  `json:"id"`
	Idx       uint8   `json:"idx"`
	Name      *string `json:"name"`
	Output    *string `json:"output"`
	IsActive  bool    `json:"is_active"`
	IsFocused bool    `json:"is_focused"`
}

// Output is one connected output, keyed by its stable name.
type Output struct {
	Name   string  `json:"name"`
	Make   string  `json:"make"`
	Model  string  `json:"model"`
	Serial *string `json:"serial"`
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	actionConfig "github.com/niri-contrib/niri-action/internal/config"
	"github.com/niri-contrib/niri-action/internal/ipc"
	"github.com/niri-contrib/niri-action/internal/logging"
	"github.com/niri-contrib/niri-action/internal/ops"
	"github.com/niri-contrib/niri-action/internal/output"
	"github.com/niri-contrib/niri-action/internal/picker"
)

var (
	socketPath string
	configPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool

	errorColor = color.New(color.FgRed, color.Bold)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "niri-action",
	Short: "Pick niri windows, workspaces and outputs via fuzzel",
	Long: `niri-action drives the niri compositor through its IPC socket.

Each subcommand lists live session state (windows, workspaces or
outputs), hands the listing to an external fuzzy picker, and turns the
pick into a single compositor action. Cancelling the picker leaves the
session untouched.`,
	Version:       "0.1.7",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// focusContainerCmd focuses a picked window
var focusContainerCmd = &cobra.Command{
	Use:   "focus-container",
	Short: "Focus window by name using the picker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOrchestrator(func(ctx context.Context, o *ops.Orchestrator) error {
			return o.FocusContainer(ctx)
		})
	},
}

// stealContainerCmd moves a picked window into the current workspace
var stealContainerCmd = &cobra.Command{
	Use:   "steal-container",
	Short: "Steal window into current workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOrchestrator(func(ctx context.Context, o *ops.Orchestrator) error {
			return o.StealContainer(ctx)
		})
	},
}

// focusWorkspaceCmd focuses a picked workspace, creating a named one on
// free-typed input
var focusWorkspaceCmd = &cobra.Command{
	Use:   "focus-workspace",
	Short: "Focus workspace by name using the picker",
	Long: `Lists workspaces and focuses the picked one.

Typing a name that matches no listed workspace focuses the last
(highest-index) workspace and renames it to the typed text.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOrchestrator(func(ctx context.Context, o *ops.Orchestrator) error {
			return o.FocusWorkspace(ctx)
		})
	},
}

// moveToWorkspaceCmd moves the focused window to a picked workspace
var moveToWorkspaceCmd = &cobra.Command{
	Use:   "move-to-workspace",
	Short: "Move currently focused container to workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOrchestrator(func(ctx context.Context, o *ops.Orchestrator) error {
			return o.MoveToWorkspace(ctx)
		})
	},
}

// moveWorkspaceToOutputCmd moves the focused workspace to a picked output
var moveWorkspaceToOutputCmd = &cobra.Command{
	Use:   "move-workspace-to-output",
	Short: "Move current workspace to output by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOrchestrator(func(ctx context.Context, o *ops.Orchestrator) error {
			return o.MoveWorkspaceToOutput(ctx)
		})
	},
}

// workspaceExecCmd runs a command in the focused workspace's directory
var workspaceExecCmd = &cobra.Command{
	Use:   "workspace-exec <command> [args...]",
	Short: "Execute command in the focused workspace's directory",
	Long: `Runs a command with its working directory taken from the workspace
name to directory mapping in the config file. Unmapped or unnamed
workspaces fall back to the configured default directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withOrchestrator(func(ctx context.Context, o *ops.Orchestrator) error {
			return o.WorkspaceExec(ctx, args)
		})
	},
}

// listCmd is the parent command for list subcommands
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows, workspaces, or outputs",
	Long:  `Lists compositor state in a table format; the same queries the pickers use.`,
}

// listWindowsCmd lists all windows
var listWindowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List all windows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *ipc.Client) error {
			resp, err := c.Query(ctx, ipc.WindowsRequest())
			if err != nil {
				return err
			}
			if resp == nil || len(resp.Windows) == 0 {
				fmt.Println("No windows found")
				return nil
			}
			if jsonOutput {
				return printJSON(resp.Windows)
			}
			output.PrintWindowsTable(resp.Windows)
			fmt.Printf("\nTotal: %d windows\n", len(resp.Windows))
			return nil
		})
	},
}

// listWorkspacesCmd lists all workspaces
var listWorkspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List all workspaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *ipc.Client) error {
			resp, err := c.Query(ctx, ipc.WorkspacesRequest())
			if err != nil {
				return err
			}
			if resp == nil || len(resp.Workspaces) == 0 {
				fmt.Println("No workspaces found")
				return nil
			}
			if jsonOutput {
				return printJSON(resp.Workspaces)
			}
			output.PrintWorkspacesTable(resp.Workspaces)
			fmt.Printf("\nTotal: %d workspaces\n", len(resp.Workspaces))
			return nil
		})
	},
}

// listOutputsCmd lists all outputs
var listOutputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "List all outputs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *ipc.Client) error {
			resp, err := c.Query(ctx, ipc.OutputsRequest())
			if err != nil {
				return err
			}
			if resp == nil || len(resp.Outputs) == 0 {
				fmt.Println("No outputs found")
				return nil
			}
			if jsonOutput {
				return printJSON(resp.Outputs)
			}
			output.PrintOutputsTable(resp.Outputs)
			fmt.Printf("\nTotal: %d outputs\n", len(resp.Outputs))
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Compositor socket path (default $NIRI_SOCKET)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/niri-action/config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", ipc.DefaultTimeout, "IPC exchange timeout")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	// Everything after the command name belongs to the spawned command.
	workspaceExecCmd.Flags().SetInterspersed(false)

	listCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	listCmd.AddCommand(listWindowsCmd)
	listCmd.AddCommand(listWorkspacesCmd)
	listCmd.AddCommand(listOutputsCmd)

	rootCmd.AddCommand(focusContainerCmd)
	rootCmd.AddCommand(stealContainerCmd)
	rootCmd.AddCommand(focusWorkspaceCmd)
	rootCmd.AddCommand(moveToWorkspaceCmd)
	rootCmd.AddCommand(moveWorkspaceToOutputCmd)
	rootCmd.AddCommand(workspaceExecCmd)
	rootCmd.AddCommand(listCmd)

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug(true)
		}
	})
}

func main() {
	// Initialize logging
	logging.Init()
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		logging.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// Helper functions

// newClient resolves the socket path and establishes the one connection
// this process uses.
func newClient() (*ipc.Client, error) {
	path := socketPath
	if path == "" {
		var err error
		path, err = ipc.SocketPath()
		if err != nil {
			return nil, err
		}
	}

	c := ipc.NewClient(path, timeout)
	if err := c.Connect(); err != nil {
		return nil, err
	}
	return c, nil
}

// withClient runs fn with a connected client.
func withClient(fn func(context.Context, *ipc.Client) error) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(context.Background(), c)
}

// withOrchestrator wires config, client and picker together for one
// operation.
func withOrchestrator(fn func(context.Context, *ops.Orchestrator) error) error {
	cfg, err := actionConfig.Load(configPath)
	if err != nil {
		return err
	}

	c, err := newClient()
	if err != nil {
		return err
	}
	defer c.Close()

	p := picker.New(cfg.Picker.Command, cfg.Picker.Args...)
	return fn(context.Background(), ops.New(c, p, cfg))
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

package ops

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/niri-contrib/niri-action/internal/logging"
)

// WorkspaceExec replaces this process with the given command, running in
// the directory mapped to the focused workspace's name (or the default
// directory when the workspace is unnamed or unmapped). On success it
// does not return.
func (o *Orchestrator) WorkspaceExec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("workspace-exec requires a command to run")
	}

	current, err := o.currentWorkspace(ctx)
	if err != nil {
		return err
	}

	name := ""
	if current.Name != nil {
		name = *current.Name
	}
	dir := o.cfg.DirFor(name)

	path, err := exec.LookPath(args[0])
	if err != nil {
		return fmt.Errorf("cannot find %q: %w", args[0], err)
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("cannot change to workspace directory %s: %w", dir, err)
	}

	logging.Info().Str("op", "workspace-exec").
		Str("workspace", name).Str("dir", dir).Str("cmd", path).
		Msg("replacing process")
	logging.Close()

	return unix.Exec(path, args, os.Environ())
}

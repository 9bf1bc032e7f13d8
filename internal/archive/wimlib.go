package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

// DefaultWimlibCommand is looked up on PATH when no explicit binary is set.
const DefaultWimlibCommand = "wimlib-imagex"

// WimlibWalker drives the wimlib-imagex command line tool.
type WimlibWalker struct {
	Command string
	// commandContext is swapped in tests.
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewWimlibWalker returns a walker using the given binary (or the default).
func NewWimlibWalker(command string) *WimlibWalker {
	if strings.TrimSpace(command) == "" {
		command = DefaultWimlibCommand
	}
	return &WimlibWalker{Command: command, commandContext: exec.CommandContext}
}

func (w *WimlibWalker) command(ctx context.Context, args ...string) *exec.Cmd {
	return w.commandContext(ctx, w.Command, args...)
}

// ListImages implements Walker.
func (w *WimlibWalker) ListImages(ctx context.Context, file string) ([]ImageInfo, error) {
	cmd := w.command(ctx, "info", file)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get indexes of %s: %w", file, commandError(err, stderr.String()))
	}
	images, err := parseImageList(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("failed to parse image list of %s: %w", file, err)
	}
	return images, nil
}

// Walk implements Walker. Output is streamed so callers see entries while
// wimlib is still scanning.
func (w *WimlibWalker) Walk(ctx context.Context, file string, index int, root string, recursive bool, fn WalkFunc) error {
	args := []string{"dir", file, strconv.Itoa(index), "--detailed"}
	if !fsutil.IsRoot(root) {
		args = append(args, "--path="+strings.ReplaceAll(fsutil.CleanPath(root), `\`, "/"))
	}
	cmd := w.command(ctx, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cannot open %s: %w", file, err)
	}

	sc := newScope(root, recursive)
	scanErr := scanDetailed(stdout, func(e fsutil.Entry) error {
		if !sc.includes(e) {
			return nil
		}
		return fn(e)
	})
	if scanErr != nil {
		// Stop the child so Wait does not block on a full pipe.
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()
	if scanErr != nil {
		return scanErr
	}
	if waitErr != nil {
		return commandError(waitErr, stderr.String())
	}
	return nil
}

func commandError(err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = exitErr.Error()
		}
		return &IterationError{Code: exitErr.ExitCode(), Err: errors.New(msg)}
	}
	return err
}

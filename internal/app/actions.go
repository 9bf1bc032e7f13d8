package app

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kk-code-lab/rwim/internal/logging"
)

var commandBuilder = exec.Command

// handleClipboard copies the archive path of the selection. Failures end
// up in the status line.
func (app *Application) handleClipboard() bool {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		return false
	}

	target := clipboardText(app.state.YankTarget())
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(target)
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("clipboard command %s failed: %w", app.clipboardCmd[0], err)
		logging.L().Warn("clipboard copy failed", logging.Err(err))
		return true
	}

	app.state.LastError = nil
	app.state.LastYankTime = time.Now()
	return true
}

// clipboardText trims the trailing separator of directory paths, except for
// the image root itself.
func clipboardText(archivePath string) string {
	if len(archivePath) > 1 {
		return strings.TrimRight(archivePath, `\`)
	}
	return archivePath
}

//go:build windows

package app

import "golang.org/x/sys/windows"

// No SIGTSTP/SIGCONT on Windows; suspend is a no-op.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}

// discardPendingInput drops keystrokes typed while the image was being
// checked, so they don't arrive as commands once the screen is up.
func discardPendingInput() {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return
	}
	_ = windows.FlushConsoleInputBuffer(handle)
}

package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rwim/internal/state"
	renderui "github.com/kk-code-lab/rwim/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	const animationInterval = 50 * time.Millisecond
	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			if !animationTimer.Stop() {
				select {
				case <-animationTimer.C:
				default:
				}
			}
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		if app.shouldAnimate() {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopAnimation()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		app.screen.Sync()
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps the wheel to cursor movement and primary clicks to
// selection; a second click on the same row opens it. It runs on the loop
// goroutine, the only reader of actionCh, so actions are reduced in place.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.renderer == nil {
		return true
	}
	if app.state.HelpVisible || app.state.PromptActive {
		return true
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.reduce(statepkg.NavigateUpAction{})
		return true
	case buttons&tcell.WheelDown != 0:
		app.reduce(statepkg.NavigateDownAction{})
		return true
	case buttons&tcell.Button1 == 0:
		return true
	}

	layout, ok := app.renderer.LastLayout()
	if !ok {
		return true
	}
	x, y := ev.Position()
	region, row := layout.Hit(x, y)
	if row < 0 {
		return true
	}

	switch region {
	case renderui.RegionTree:
		idx := app.state.TreeScroll + row
		if idx >= len(app.state.TreeRows()) {
			return true
		}
		doubleClick := app.registerClick(fmt.Sprintf("tree-%d", idx))
		app.reduce(statepkg.TreeMouseSelectAction{Row: idx})
		if doubleClick {
			app.reduce(statepkg.TreeActivateAction{})
		}

	case renderui.RegionList:
		idx := app.state.ScrollOffset + row
		if idx >= len(app.state.DisplayRows()) {
			return true
		}
		doubleClick := app.registerClick(fmt.Sprintf("list-%d", idx))
		app.reduce(statepkg.MouseSelectAction{DisplayIndex: idx})
		if doubleClick {
			app.reduce(statepkg.ActivateAction{})
		}
	}
	return true
}

func (app *Application) registerClick(key string) bool {
	doubleClick := app.lastClickKey == key && time.Since(app.lastClickTime) <= doubleClickThreshold
	if doubleClick {
		// A third click starts a new pair.
		app.lastClickKey = ""
	} else {
		app.lastClickKey = key
	}
	app.lastClickTime = time.Now()
	return doubleClick
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) shouldAnimate() bool {
	if app.state == nil || app.state.LastYankTime.IsZero() {
		return false
	}
	return time.Since(app.state.LastYankTime) < 100*time.Millisecond
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankPathAction:
		return app.handleClipboard()
	}

	app.reduce(action)
	return true
}

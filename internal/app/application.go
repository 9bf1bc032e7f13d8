package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rwim/internal/archive"
	"github.com/kk-code-lab/rwim/internal/config"
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/logging"
	"github.com/kk-code-lab/rwim/internal/session"
	statepkg "github.com/kk-code-lab/rwim/internal/state"
	inputui "github.com/kk-code-lab/rwim/internal/ui/input"
	renderui "github.com/kk-code-lab/rwim/internal/ui/render"
	"go.uber.org/zap"
)

// Application represents the running app.
type Application struct {
	screen         tcell.Screen
	state          *statepkg.AppState
	reducer        *statepkg.StateReducer
	renderer       *renderui.Renderer
	input          *inputui.InputHandler
	actionCh       chan statepkg.Action
	cancel         context.CancelFunc
	shouldQuit     bool
	clipboardCmd   []string
	clipboardAvail bool
	lastClickKey   string
	lastClickTime  time.Time
}

// NewApplication sets up the terminal and, when image is not empty, starts
// reading image at the given index.
func NewApplication(cfg *config.Config, image string, index int) (*Application, error) {
	if cfg == nil {
		cfg = config.Load()
	}

	discardPendingInput()

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	clipboardCmd, clipboardAvail := detectClipboard()

	state := statepkg.NewAppState(cfg.ListingCache)
	state.HideHiddenFiles = !cfg.ShowHidden
	state.ClipboardAvailable = clipboardAvail
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 64)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	registry := archive.NewRegistry(cfg.WimlibCommand)
	ingestor := session.NewAsyncIngestor(ctx, registry, cfg.BatchSize, cfg.FlushInterval)

	reducer := statepkg.NewStateReducer(ingestor, cfg.ListingCache)
	reducer.AddListener(logListener())

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        reducer,
		renderer:       renderui.NewRenderer(screen),
		input:          inputui.NewInputHandler(actionCh),
		actionCh:       actionCh,
		cancel:         cancel,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
	}
	app.input.SetState(state)

	if image != "" {
		app.reduce(statepkg.SwitchImageAction{File: image, Index: index})
	}
	return app, nil
}

// logListener records the notifications that have no on-screen effect
// beyond the status line.
func logListener() statepkg.Listener {
	return statepkg.ListenerFuncs{
		OnNavigationChanged: func(change statepkg.NavigationChange) {
			logging.L().Debug("navigated",
				logging.String("path", change.CurrentPath),
				zap.Int("rows", change.Listing.Count()),
				zap.Bool("back", change.CanGoBack),
				zap.Bool("forward", change.CanGoForward))
		},
		OnNavigationFailed: func(path string, err error) {
			logging.L().Warn("navigation failed", logging.String("path", path), logging.Err(err))
		},
		OnIngestionFailed: func(generation int, err error) {
			logging.L().Error("ingestion failed", logging.Generation(generation), logging.Err(err))
		},
		OnEntriesAppended: func(generation int, entries []fsutil.Entry) {
			logging.L().Debug("entries appended", logging.Generation(generation), zap.Int("count", len(entries)))
		},
	}
}

func (app *Application) reduce(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
}

// Close cleans up resources.
func (app *Application) Close() error {
	if app.cancel != nil {
		app.cancel()
	}
	app.screen.Fini()
	return nil
}

// Describe is a one-line summary of what is open, used for the exit log.
func (app *Application) Describe() string {
	if app.state == nil || app.state.Session == nil || !app.state.Session.HasImage() {
		return "no image"
	}
	return fmt.Sprintf("%s at %s", app.state.Session.ImageFile, app.state.CurrentPath)
}

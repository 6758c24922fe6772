package app

import (
	"runtime/debug"

	"github.com/dshills/boxselect/internal/renderer/backend"
)

// eventLoop processes backend events and posted tasks one at a time and
// redraws after each.
func (app *Application) eventLoop(events <-chan backend.Event) error {
	app.redraw()

	for {
		select {
		case <-app.done:
			return nil

		case task := <-app.tasks:
			app.metrics.RecordTask()
			app.safely("task", task)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == backend.EventWake {
				continue
			}
			timer := StartTimer()
			err := app.handleBackendEvent(ev)
			app.metrics.RecordEvent(timer.Elapsed())
			if err != nil {
				return err
			}
		}

		app.redraw()
	}
}

// redraw draws the grid, its overlays and the label, then shows the frame.
func (app *Application) redraw() {
	timer := StartTimer()
	app.backend.Clear()
	app.grid.Draw(app.backend)
	app.backend.Show()
	app.metrics.RecordFrame(timer.Elapsed())
}

// safely runs fn and logs a panic instead of crashing the loop.
func (app *Application) safely(component string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			app.logComponentError(component, &RecoveredPanicError{Value: r, Stack: string(debug.Stack())})
		}
	}()
	fn()
}

// handleBackendEvent routes a backend event. Returns ErrQuit if the
// application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.handleMouseEvent(ev)
	case backend.EventFocus:
		app.handleFocusEvent(ev)
	}
	return nil
}

// handleResize resizes the grid. The engine sees it through the grid's
// resize observers and rebuilds once the resize burst settles.
func (app *Application) handleResize(ev backend.Event) {
	app.grid.Resize(gridRegion(ev.Width, ev.Height))
}

func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyEscape:
		if app.engine.Abort() {
			app.logger.Debug("drag aborted")
		}
	case backend.KeyRune:
		switch ev.Rune {
		case 'q':
			return ErrQuit
		case 'r':
			if err := app.engine.Rebuild(); err != nil {
				app.logComponentError("selection", err)
			}
		}
	}
	return nil
}

// handleMouseEvent turns a button-state report into pointer transitions
// and publishes them to the engine's subscriptions.
func (app *Application) handleMouseEvent(ev backend.Event) {
	for _, mev := range app.tracker.Update(ev.MouseX, ev.MouseY, ev.Buttons, app.now()) {
		app.metrics.RecordPointer()
		app.hub.Publish(mev)
	}
}

// handleFocusEvent forgets the held button when the terminal loses focus,
// since the release may never be reported. An open drag is aborted.
func (app *Application) handleFocusEvent(ev backend.Event) {
	if ev.Focused {
		return
	}
	app.tracker.Reset()
	if app.engine.Abort() {
		app.logger.Debug("drag aborted on focus loss")
	}
}

// startInputPolling polls the backend on its own goroutine. PollEvent
// blocks; Shutdown wakes it and the goroutine then sees done. The channel
// closes when the backend stops producing events.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventNone {
				return
			}

			select {
			case <-app.done:
				return
			default:
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			default:
				app.metrics.RecordInputDropped()
			}
		}
	}()

	return events
}

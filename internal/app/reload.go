package app

import (
	"context"

	"github.com/dshills/boxselect/internal/config"
	"github.com/dshills/boxselect/internal/config/watcher"
	"github.com/dshills/boxselect/internal/script"
)

// loadScript replaces the hook with the one named by script.path. An empty
// path leaves no hook.
func (app *Application) loadScript() error {
	sc := app.config.Script()

	var hook *script.Hook
	if sc.Path != "" {
		log := app.logger.WithComponent("script")
		h, err := script.Load(sc.Path,
			script.WithTimeout(sc.Timeout),
			script.WithPrint(func(s string) { log.Info("%s", s) }),
		)
		if err != nil {
			return err
		}
		if !h.Defined() {
			log.Warn("%s does not define %s", sc.Path, script.HookFunction)
		}
		hook = h
	}

	if app.hook != nil {
		app.hook.Close()
	}
	app.hook = hook
	return nil
}

// startWatcher reloads the configuration whenever its file changes. The
// watcher's debounced callbacks run on the loop.
func (app *Application) startWatcher() error {
	w, err := watcher.New(
		watcher.WithScheduler(app.scheduler),
		watcher.WithErrorHandler(func(err error) {
			app.logComponentError("watcher", err)
		}),
	)
	if err != nil {
		return err
	}
	if err := w.Watch(app.config.Path()); err != nil {
		_ = w.Close()
		return err
	}
	w.OnChange(func(ev watcher.Event) {
		app.logger.Debug("config file %s: %s", ev.Op, ev.Path)
		app.reloadConfig()
	})
	w.Start()

	app.watcher = w
	return nil
}

// reloadConfig re-reads the configuration. An invalid file is logged and
// the running configuration kept.
func (app *Application) reloadConfig() {
	change, err := app.config.Reload(context.Background())
	app.metrics.RecordReload(err)
	if err != nil {
		app.logComponentError("config", err)
		return
	}
	app.applyChange(change)
}

// applyChange pushes changed sections into the running components.
func (app *Application) applyChange(c config.Change) {
	if !c.Any() {
		return
	}

	if c.Logging {
		lc := app.config.Logging()
		app.logger.SetLevel(ParseLogLevel(lc.Level))
		if err := app.logger.SetFile(lc.File); err != nil {
			app.logComponentError("logging", err)
		}
	}

	if c.Theme {
		theme, err := themeFrom(app.config.Theme())
		if err != nil {
			app.logComponentError("theme", err)
		} else {
			app.grid.SetTheme(theme)
		}
	}

	if c.Grid {
		app.grid.SetLayout(layoutFrom(app.config.Grid()))
	}

	if c.Selection && app.engine != nil {
		app.grid.SetMarker(app.config.Selection().CellMarker)
		if cfg := app.selectionConfig(); !app.engine.Config().SameAttachment(cfg) {
			app.engine.Reconfigure(cfg)
		}
	}

	if c.Script {
		if err := app.loadScript(); err != nil {
			app.logComponentError("script", err)
		}
	}

	app.logger.Info("configuration reloaded (%+v)", c)
}

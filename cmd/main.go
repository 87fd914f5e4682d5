package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"sync"
	"time"

	"breakreminder/internal/app"
	"breakreminder/internal/core/activity"
	"breakreminder/internal/core/model"
	"breakreminder/internal/core/timekeeper"
	"breakreminder/internal/platform"
	"breakreminder/internal/storage"
	"breakreminder/internal/ui/control"
	"breakreminder/internal/ui/notify"
	"breakreminder/internal/ui/overlay"
	"breakreminder/internal/ui/preferences"
	"breakreminder/internal/ui/tray"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const (
	appName  = "BreakReminder"
	appTitle = "Break Reminder"
	appID    = "com.breakreminder.app"
)

func main() {
	minimized := flag.Bool("minimized", false, "start hidden in the system tray")
	flag.Parse()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := openStore()
	if err != nil {
		log.Printf("settings store: %v", err)
	}
	settings := model.DefaultSettings()
	if store != nil {
		loaded, err := store.Load()
		if err != nil {
			log.Printf("load settings: %v", err)
		}
		settings = loaded
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())
	desktopApp, hasTray := fyneApp.(desktop.App)

	keeper := timekeeper.New(settings.TimerConfig(), timekeeper.Config{TickInterval: time.Second})
	monitor := activity.New(activity.Config{Timeout: settings.InactivityTimeout(), CheckInterval: time.Second})
	monitor.AddSource(activity.NewIdleSource(platform.NewIdleProvider(), time.Second))
	if err := keeper.SetActivityChecker(monitor); err != nil {
		log.Printf("activity checker: %v", err)
	}

	registrar, err := platform.NewRegistrar(appName, "")
	if err != nil {
		log.Printf("autostart: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			cancel()
			keeper.Close()
			monitor.Stop()
		})
	}
	defer shutdown()

	quit := func() {
		shutdown()
		fyneApp.Quit()
	}
	toggle := func() {
		if err := keeper.Toggle(); err != nil {
			log.Printf("toggle timer: %v", err)
		}
	}
	skipBreak := func() {
		if _, err := keeper.SkipBreak(); err != nil {
			log.Printf("skip break: %v", err)
		}
	}

	notifier := notify.New(fyneApp)

	var prefsWindow *preferences.Window
	showPreferences := func() {
		if prefsWindow != nil {
			prefsWindow.Show()
		}
	}

	mainWindow := control.New(fyneApp, appTitle, keeper.Snapshot(), control.Callbacks{
		OnToggle: toggle,
		OnReset: func() {
			if err := keeper.Reset(); err != nil {
				log.Printf("reset timer: %v", err)
			}
		},
		OnPreferences: showPreferences,
		OnHide: func() {
			notifier.Notify(appTitle, "Running in background. Click tray icon to restore.")
		},
		OnQuit: quit,
	})
	mainWindow.SetMinimizeToTray(settings.MinimizeToTray && hasTray)
	guard.OnActivate(mainWindow.Show)

	breakWindow := overlay.New(fyneApp)
	breakWindow.SetOnSkip(skipBreak)

	views := []app.StatusView{mainWindow}
	if hasTray {
		trayManager := tray.New(desktopApp, appTitle, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnToggle:      toggle,
			OnSkipBreak:   skipBreak,
			OnPreferences: showPreferences,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		desktopApp.SetSystemTrayWindow(mainWindow.Window())
		views = append(views, trayManager)
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	controller := app.NewController(settings, app.Collaborators{
		Notifier:  notifier,
		Sound:     platform.NewPlayer(),
		Presenter: breakWindow,
		Views:     views,
	})
	applier := &app.SettingsApplier{Timer: keeper, Monitor: monitor, Controller: controller}
	if store != nil {
		applier.Store = store
	}

	prefsWindow = preferences.New(fyneApp, settings, preferences.Callbacks{
		OnSave: func(updated model.Settings) error {
			mainWindow.SetMinimizeToTray(updated.MinimizeToTray && hasTray)
			return applier.Save(updated)
		},
		AutostartEnabled: func() bool {
			return registrar != nil && registrar.IsEnabled()
		},
		OnAutostart: func(want bool) (bool, string, error) {
			result := app.SyncAutostart(registrar, want)
			if result.Err != nil {
				log.Printf("autostart: %v", result.Err)
			}
			return result.Enabled, result.Message, result.Err
		},
	})

	events := keeper.Subscribe(32)
	signals := monitor.Subscribe(8)
	go controller.Run(ctx, events, signals)

	keeper.Launch()
	applier.Apply(settings)

	if store != nil {
		go watchSettings(ctx, store, func(updated model.Settings) {
			applier.Apply(updated)
			mainWindow.SetMinimizeToTray(updated.MinimizeToTray && hasTray)
			fyne.Do(func() {
				prefsWindow.UpdateSettings(updated)
			})
		})
	}

	if settings.AutoStartOnLaunch {
		if err := keeper.Start(); err != nil {
			log.Printf("start timer: %v", err)
		}
	}

	if *minimized && hasTray {
		notifier.Notify(appTitle, "Started in background. Click tray icon to open.")
	} else {
		mainWindow.Window().Show()
	}

	fyneApp.Run()
}

func openStore() (*storage.Store, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return nil, err
	}
	return storage.NewStore(storage.DefaultPath(configDir, appName)), nil
}

func watchSettings(ctx context.Context, store *storage.Store, onChange func(model.Settings)) {
	if err := store.Watch(ctx, onChange); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("watch settings: %v", err)
	}
}

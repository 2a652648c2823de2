package main

import (
	"errors"
	"flag"
	"log"
	_ "time/tzdata"

	"meridian/internal/core/equivalence"
	"meridian/internal/core/model"
	"meridian/internal/core/wallclock"
	"meridian/internal/core/worldclock"
	"meridian/internal/core/zone"
	"meridian/internal/platform"
	"meridian/internal/storage"
	"meridian/internal/ui/board"
	"meridian/internal/ui/preferences"
	"meridian/internal/ui/tray"
	"meridian/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"
)

const appName = "Meridian"

func main() {
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Printf("logger: %v", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	instance, err := platform.AcquireInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if err := platform.ActivateRunning(appName); err != nil {
			logger.Warn("activate running instance", zap.Error(err))
		}
		logger.Info("already running")
		return
	}
	defer func() {
		_ = instance.Release()
	}()

	config, err := storage.LoadConfig(appName)
	if err != nil {
		logger.Warn("config unreadable, using defaults", zap.Error(err))
	}

	table, err := resources.RegionTable()
	if err != nil {
		logger.Warn("region table unavailable", zap.Error(err))
	}

	localZone := platform.SystemZone()
	catalog := zone.Load(zone.FirstAvailable(platform.NewZoneSource(), resources.ZoneSource()), localZone, table, logger)
	formatter := wallclock.NewFormatter(zone.NewResolver(), config.Night)
	registry := worldclock.New(worldclock.Config{
		TickInterval: config.TickInterval,
		LocalZone:    localZone,
		DefaultZones: config.DefaultZones,
		HideLocal:    !config.ShowLocal,
	}, worldclock.Deps{
		Catalog:   catalog,
		Formatter: formatter,
		Index:     equivalence.New(formatter),
		Logger:    logger.Named("worldclock"),
	})
	logger.Info("starting",
		zap.String("local_zone", localZone),
		zap.Int("zones", catalog.Len()))

	fyneApp := app.NewWithID("com.meridian.app")
	fyneApp.SetIcon(resources.Icon())

	var trayManager *tray.Manager
	clockBoard := board.New(fyneApp, registry, catalog, board.Options{
		Title:         appName,
		NeighborLimit: config.NeighborLimit,
		OnFrame: func(frame worldclock.Frame) {
			if trayManager != nil {
				trayManager.SetFrame(frame)
			}
		},
	})

	prefsWindow := preferences.New(fyneApp, appName, config, func(updated model.ClockConfig) {
		config = updated
		clockBoard.SetNeighborLimit(config.NeighborLimit)
		if err := storage.SaveConfig(appName, config); err != nil {
			logger.Error("save config", zap.Error(err))
		}
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, appName, tray.Callbacks{
			OnShowClocks:  clockBoard.Show,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.Icon())
	} else {
		logger.Info("system tray unsupported on this platform")
		clockBoard.SetOnClose(fyneApp.Quit)
	}

	instance.Serve(func() {
		fyne.Do(clockBoard.Show)
	})

	clockBoard.Start()
	registry.Mount()
	defer registry.Unmount()

	clockBoard.Show()
	fyneApp.Run()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	productionConfig := zap.NewProductionConfig()
	productionConfig.Encoding = "console"
	return productionConfig.Build()
}

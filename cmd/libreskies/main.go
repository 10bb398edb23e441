// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/libreskies/libreskies/asset"
	"github.com/libreskies/libreskies/core"
	"github.com/libreskies/libreskies/device"
	"github.com/libreskies/libreskies/device/vulkan"
	"github.com/libreskies/libreskies/model"
	"github.com/libreskies/libreskies/scene"
	"github.com/libreskies/libreskies/window"
	log "github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

var envFile = flag.String("env", "", "Optional .env file to read configuration from")

func main() {
	flag.Parse()

	configuration, err := core.LoadConfiguration(*envFile)
	if err != nil {
		log.WithError(err).Fatal("Configuration could not be loaded")
	}

	logger, err := core.NewLogger(configuration.Log, os.Stderr)
	if err != nil {
		log.WithError(err).Fatal("Logger could not be created")
	}
	configuration.Device.Logger = logger

	if err := run(configuration, logger); err != nil {
		logger.WithError(err).Fatal("LibreSkies exited with an error")
	}
}

func run(configuration core.Configuration, logger *log.Logger) error {
	world := scene.New()
	example := scene.Populate(world)
	if pos, ok := world.Position(example); ok {
		logger.Info(scene.Describe(pos))
	}

	locator, closeAssets, err := openAssets(configuration.Assets)
	if err != nil {
		return err
	}
	defer closeAssets()

	if missing := locator.Missing(configuration.Assets.Required...); len(missing) > 0 {
		for _, name := range missing {
			logger.WithField("asset", name).Warn("Required asset not found")
		}
	} else if len(configuration.Assets.Required) > 0 {
		logger.WithField("count", len(configuration.Assets.Required)).Info("Required assets found")
	}

	if configuration.Assets.Model != "" {
		loadModel(locator, configuration.Assets.Model, logger)
	}

	backend, err := window.ParseBackend(configuration.Window.Backend)
	if err != nil {
		return err
	}

	procAddr, terminate, err := window.Init(backend)
	if err != nil {
		return err
	}
	defer terminate()

	win, err := window.New(backend, window.Configuration{
		Title:  configuration.Window.Title,
		Width:  configuration.Window.Width,
		Height: configuration.Window.Height,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	driver, err := vulkan.NewDriver(procAddr)
	if err != nil {
		return err
	}

	ctx, err := device.Initialize(win, driver, configuration.Device)
	if err != nil {
		return err
	}
	defer ctx.Shutdown()

	clock := core.NewTime(configuration.Time)
	defer clock.Stop()

	for !win.ShouldClose() {
		select {
		case <-clock.EventTicker().C:
			win.PollEvents()
		case <-clock.FpsTicker().C:
			world.Step(1 / float32(max(clock.Fps(), 1)))
		}
	}

	logger.WithField("elapsed", clock.Elapsed()).Info("Event loop exited")
	return nil
}

func openAssets(cfg core.AssetConfiguration) (*asset.Locator, func(), error) {
	sources := []asset.Source{asset.DirSource(cfg.Directory)}
	if cfg.Archive == "" {
		return asset.NewLocator(sources...), func() {}, nil
	}

	archive, err := asset.OpenArchive(cfg.Archive)
	if err != nil {
		return nil, nil, err
	}
	return asset.NewLocator(append(sources, archive)...), func() { archive.Close() }, nil
}

func loadModel(locator *asset.Locator, name string, logger *log.Logger) {
	entry := logger.WithField("model", name)

	r, err := locator.Open(name)
	if err != nil {
		entry.WithError(err).Warn("Model could not be opened")
		return
	}
	defer r.Close()

	mesh, err := model.ImportGLTF(r)
	if err != nil {
		entry.WithError(err).Warn("Model could not be imported")
		return
	}
	entry.WithFields(log.Fields{
		"vertices": len(mesh.Vertices()),
		"indices":  len(mesh.Indices()),
	}).Info("Model loaded")
}

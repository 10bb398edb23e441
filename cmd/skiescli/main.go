// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/libreskies/libreskies/core"
	"github.com/libreskies/libreskies/device"
	"github.com/libreskies/libreskies/device/vulkan"
	log "github.com/sirupsen/logrus"
)

var (
	envFile = flag.String("env", "", "Optional .env file to read configuration from")
	indent  = flag.Bool("indent", false, "Indent the JSON output")
)

func main() {
	flag.Parse()

	cfg, err := core.LoadConfiguration(*envFile)
	if err != nil {
		log.WithError(err).Fatal("Configuration could not be loaded")
	}

	logger, err := core.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		log.WithError(err).Fatal("Logger could not be created")
	}
	cfg.Device.Logger = logger

	driver, err := vulkan.NewDriver(nil)
	if err != nil {
		logger.WithError(err).Fatal("Vulkan loader is not available")
	}

	infos, err := device.Probe(driver, cfg.Device)
	if err != nil {
		logger.WithError(err).Fatal("Physical devices could not be listed")
	}

	encoder := json.NewEncoder(os.Stdout)
	if *indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(infos); err != nil {
		logger.WithError(err).Fatal("Device information could not be encoded")
	}
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
	"github.com/devblok/vkboot/report"
	"github.com/devblok/vkboot/window"
	"github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

var (
	envFile     = flag.String("env", "", "Load configuration overrides from this env file")
	backend     = flag.String("backend", "", "Window backend to use (glfw or sdl), overrides configuration")
	verbose     = flag.Bool("v", false, "Verbose logging, includes verbose debug report messages")
	printReport = flag.Bool("report", false, "Print a table of the enumerated devices")
)

var log = logrus.New()

// Essential handles, released by teardown in reverse order
var (
	appWindow  window.Window
	vkInstance core.Instance
)

func teardown() {
	if vkInstance != nil {
		vkInstance.Destroy()
		vkInstance = nil
	}
	if appWindow != nil {
		appWindow.Destroy()
		appWindow = nil
	}
}

func fatal(err error, msg string) {
	log.WithError(err).Error(msg)
	teardown()
	os.Exit(1)
}

func main() {
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	configuration, err := core.LoadConfiguration(*envFile)
	if err != nil {
		fatal(err, "Failed to load configuration")
	}
	if *backend != "" {
		if configuration.Window.Backend, err = core.ParseBackend(*backend); err != nil {
			fatal(err, "Invalid -backend")
		}
	}

	if appWindow, err = window.New(configuration.Window, log); err != nil {
		fatal(err, "Failed to create window")
	}

	{
		cfg := configuration.Instance
		cfg.Extensions = append(appWindow.InstanceExtensions(), cfg.Extensions...)

		appInfo := core.NewApplicationInfo(cfg.ApplicationName)
		if vkInstance, err = core.NewVulkanInstance(appInfo, appWindow.ProcAddr(), cfg, configuration.Debug, log); err != nil {
			fatal(err, "Failed to create Vulkan instance")
		}
	}

	if surface, err := appWindow.CreateSurface(vkInstance.Inner()); err != nil {
		fatal(err, "Failed to create surface")
	} else {
		vkInstance.SetSurface(surface)
	}
	log.Info("Surface created")

	devices, err := vkInstance.PhysicalDevicesInfo()
	if err != nil {
		fatal(err, "Failed to query physical devices")
	}
	for i, d := range devices {
		log.WithFields(logrus.Fields{
			"index":          i,
			"type":           d.Type,
			"queue_families": len(d.QueueFamilies),
			"formats":        len(d.SurfaceFormats),
			"present_modes":  d.PresentModes,
		}).Debug("Physical device " + d.Name)
	}

	selection, err := device.Select(devices, device.QueueRequirement{
		Flags:   configuration.Selection.QueueFlags,
		Present: configuration.Selection.RequirePresent,
	})
	if err != nil {
		fatal(err, "Failed to select a physical device")
	}
	log.WithFields(logrus.Fields{
		"device":       selection.DeviceIndex,
		"queue_family": selection.QueueFamilyIndex,
	}).Info("Selected " + selection.Device.Name)

	if *printReport {
		table := report.Table(report.Report{
			InstanceLayers:     vkInstance.Layers(),
			InstanceExtensions: vkInstance.Extensions(),
			Devices:            devices,
		}, &selection)
		if _, err := fmt.Fprintln(os.Stdout, table); err != nil {
			fatal(err, "Failed to print device report")
		}
	}

	timeService := core.NewTime(configuration.Time)
	defer timeService.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	/* Event loop */
EventLoop:
	for !appWindow.ShouldClose() {
		select {
		case sig := <-signals:
			log.WithField("signal", sig).Info("Interrupted")
			break EventLoop
		case <-timeService.EventTicker().C:
			appWindow.PollEvents()
		}
	}

	log.Info("*------- CLOSED APPLICATION -------*")
	teardown()
}

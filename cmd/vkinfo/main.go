// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"io"
	"os"
	"runtime"

	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
	"github.com/devblok/vkboot/report"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

var (
	envFile  = flag.String("env", "", "Load configuration overrides from this env file")
	format   = flag.String("format", "table", "Output format, table or json")
	compress = flag.Bool("lz4", false, "Compress json output with lz4")
	output   = flag.String("o", "", "Write the report to this file instead of stdout")
	debug    = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
	verbose  = flag.Bool("v", false, "Verbose logging")
)

var log = logrus.New()

func main() {
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	if err := run(); err != nil {
		log.WithError(err).Error("vkinfo failed")
		os.Exit(1)
	}
}

func run() error {
	if *format != "table" && *format != "json" {
		return errors.Errorf("unknown format %q", *format)
	}
	if *compress && *format != "json" {
		return errors.New("-lz4 needs -format json")
	}

	configuration, err := core.LoadConfiguration(*envFile)
	if err != nil {
		return err
	}

	cfg := configuration.Instance
	cfg.DebugMode = *debug
	appInfo := core.NewApplicationInfo(cfg.ApplicationName)
	instance, err := core.NewVulkanInstance(appInfo, nil, cfg, configuration.Debug, log)
	if err != nil {
		return err
	}
	defer instance.Destroy()

	devices, err := instance.PhysicalDevicesInfo()
	if err != nil {
		return err
	}

	rep := report.Report{Devices: devices}
	if rep.InstanceLayers, err = core.InstanceLayers(); err != nil {
		return errors.Wrap(err, "core.InstanceLayers()")
	}
	if rep.InstanceExtensions, err = core.InstanceExtensions(); err != nil {
		return errors.Wrap(err, "core.InstanceExtensions()")
	}

	write := func(out io.Writer) error {
		switch {
		case *format == "table":
			// Without a surface no family can present
			var selPtr *device.Selection
			if sel, err := device.Select(devices, device.QueueRequirement{
				Flags: configuration.Selection.QueueFlags,
			}); err == nil {
				selPtr = &sel
			}
			_, err := io.WriteString(out, report.Table(rep, selPtr)+"\n")
			return err
		case *compress:
			return report.WriteCompressedJSON(out, rep)
		default:
			return report.WriteJSON(out, rep)
		}
	}

	if *output == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	return report.Save(f, write)
}

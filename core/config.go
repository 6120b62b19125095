// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"os"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

const (
	defaultsFile = "vkboot.env"

	// dotEnvFile is overloaded into the process environment by envy on init
	dotEnvFile = ".env"
)

// Configuration defines the global bootstrap configuration
type Configuration struct {
	Window    WindowConfiguration
	Instance  InstanceConfiguration
	Debug     DebugConfiguration
	Time      TimeConfiguration
	Selection SelectionConfiguration
}

// WindowConfiguration is used to configure the native window
type WindowConfiguration struct {
	// Backend is either "glfw" or "sdl"
	Backend string
	Title   string
	Width   uint32
	Height  uint32
}

// InstanceConfiguration is used to configure the Vulkan instance
type InstanceConfiguration struct {
	ApplicationName string

	// DebugMode enables the validation layer and the debug report extension
	DebugMode  bool
	Layers     []string
	Extensions []string
}

// DebugConfiguration selects which debug report messages are delivered
type DebugConfiguration struct {
	Flags vk.DebugReportFlags
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// EventPollDelay is the delay between event polls in milliseconds
	EventPollDelay int
}

// SelectionConfiguration describes what the selected queue family must support
type SelectionConfiguration struct {
	QueueFlags     vk.QueueFlags
	RequirePresent bool
}

var staticResources = packr.NewBox("./resources")

// LoadConfiguration builds the configuration from the bundled defaults,
// then ./.env, then the optional env file, then the process environment.
// Environment values equal to the ones in ./.env are taken to come from it.
func LoadConfiguration(envFile string) (Configuration, error) {
	raw, err := staticResources.FindString(defaultsFile)
	if err != nil {
		return Configuration{}, errors.Wrap(err, "core.LoadConfiguration(): defaults")
	}
	values, err := godotenv.Parse(strings.NewReader(raw))
	if err != nil {
		return Configuration{}, errors.Wrap(err, "core.LoadConfiguration(): defaults")
	}

	dotEnv, err := godotenv.Read(dotEnvFile)
	if err != nil && !os.IsNotExist(err) {
		return Configuration{}, errors.Wrapf(err, "core.LoadConfiguration(): %s", dotEnvFile)
	}
	for k, v := range dotEnv {
		values[k] = v
	}

	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil {
			return Configuration{}, errors.Wrapf(err, "core.LoadConfiguration(): %s", envFile)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	envy.Reload()
	lookup := func(key string) string {
		v, err := envy.MustGet(key)
		if err != nil {
			return values[key]
		}
		if dv, ok := dotEnv[key]; ok && dv == v {
			return values[key]
		}
		return v
	}
	return parseConfiguration(lookup)
}

func parseConfiguration(lookup func(string) string) (Configuration, error) {
	var (
		cfg Configuration
		err error
	)

	if cfg.Window.Backend, err = ParseBackend(lookup("VKBOOT_WINDOW_BACKEND")); err != nil {
		return cfg, errors.Wrap(err, "VKBOOT_WINDOW_BACKEND")
	}
	cfg.Window.Title = lookup("VKBOOT_WINDOW_TITLE")
	if cfg.Window.Width, err = parseSize("VKBOOT_WINDOW_WIDTH", lookup); err != nil {
		return cfg, err
	}
	if cfg.Window.Height, err = parseSize("VKBOOT_WINDOW_HEIGHT", lookup); err != nil {
		return cfg, err
	}

	cfg.Instance.ApplicationName = lookup("VKBOOT_APP_NAME")
	if cfg.Instance.DebugMode, err = parseBool("VKBOOT_DEBUG", lookup); err != nil {
		return cfg, err
	}
	cfg.Instance.Layers = splitList(lookup("VKBOOT_LAYERS"))
	cfg.Instance.Extensions = splitList(lookup("VKBOOT_EXTENSIONS"))

	if cfg.Debug.Flags, err = ParseDebugFlags(lookup("VKBOOT_DEBUG_FLAGS")); err != nil {
		return cfg, errors.Wrap(err, "VKBOOT_DEBUG_FLAGS")
	}

	delay, err := strconv.Atoi(strings.TrimSpace(lookup("VKBOOT_EVENT_POLL_DELAY")))
	if err != nil || delay <= 0 {
		return cfg, errors.Errorf("VKBOOT_EVENT_POLL_DELAY: invalid delay %q", lookup("VKBOOT_EVENT_POLL_DELAY"))
	}
	cfg.Time.EventPollDelay = delay

	if cfg.Selection.QueueFlags, err = ParseQueueFlags(lookup("VKBOOT_QUEUE_FLAGS")); err != nil {
		return cfg, errors.Wrap(err, "VKBOOT_QUEUE_FLAGS")
	}
	if cfg.Selection.RequirePresent, err = parseBool("VKBOOT_REQUIRE_PRESENT", lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseBackend normalizes a window backend name, either glfw or sdl
func ParseBackend(s string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(s))
	switch backend {
	case "glfw", "sdl":
		return backend, nil
	default:
		return "", errors.Errorf("unknown backend %q", backend)
	}
}

func parseSize(key string, lookup func(string) string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(lookup(key)), 10, 32)
	if err != nil || v == 0 {
		return 0, errors.Errorf("%s: invalid size %q", key, lookup(key))
	}
	return uint32(v), nil
}

func parseBool(key string, lookup func(string) string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(lookup(key)))
	if err != nil {
		return false, errors.Errorf("%s: invalid boolean %q", key, lookup(key))
	}
	return v, nil
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

var queueFlagNames = map[string]vk.QueueFlagBits{
	"graphics": vk.QueueGraphicsBit,
	"compute":  vk.QueueComputeBit,
	"transfer": vk.QueueTransferBit,
	"sparse":   vk.QueueSparseBindingBit,
}

// ParseQueueFlags parses a comma separated list of queue
// capability names (graphics, compute, transfer, sparse).
func ParseQueueFlags(s string) (vk.QueueFlags, error) {
	var flags vk.QueueFlags
	names := splitList(strings.ToLower(s))
	if len(names) == 0 {
		return 0, errors.New("no queue flags given")
	}
	for _, name := range names {
		bit, ok := queueFlagNames[name]
		if !ok {
			return 0, errors.Errorf("unknown queue flag %q", name)
		}
		flags |= vk.QueueFlags(bit)
	}
	return flags, nil
}

var debugFlagNames = map[string]vk.DebugReportFlagBits{
	"information": vk.DebugReportInformationBit,
	"warning":     vk.DebugReportWarningBit,
	"performance": vk.DebugReportPerformanceWarningBit,
	"error":       vk.DebugReportErrorBit,
	"debug":       vk.DebugReportDebugBit,
}

// ParseDebugFlags parses a comma separated list of debug report
// message kinds (information, warning, performance, error, debug).
func ParseDebugFlags(s string) (vk.DebugReportFlags, error) {
	var flags vk.DebugReportFlags
	for _, name := range splitList(strings.ToLower(s)) {
		bit, ok := debugFlagNames[name]
		if !ok {
			return 0, errors.Errorf("unknown debug flag %q", name)
		}
		flags |= vk.DebugReportFlags(bit)
	}
	return flags, nil
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/devblok/vkboot/core"
	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"
)

func writeEnvFile(c *qt.C, content string) string {
	dir, err := ioutil.TempDir("", "vkboot")
	c.Assert(err, qt.IsNil)
	c.Defer(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "test.env")
	c.Assert(ioutil.WriteFile(path, []byte(content), 0644), qt.IsNil)
	return path
}

func setenv(c *qt.C, key, value string) {
	c.Assert(os.Setenv(key, value), qt.IsNil)
	c.Defer(func() { os.Unsetenv(key) })
}

func TestLoadConfigurationDefaults(t *testing.T) {
	c := qt.New(t)
	defer c.Done()

	cfg, err := core.LoadConfiguration("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Window, qt.DeepEquals, core.WindowConfiguration{
		Backend: "glfw",
		Title:   "Vulkan Renderer",
		Width:   1080,
		Height:  720,
	})
	c.Assert(cfg.Instance.ApplicationName, qt.Equals, "Vulkan Renderer")
	c.Assert(cfg.Instance.DebugMode, qt.Equals, true)
	c.Assert(len(cfg.Instance.Layers), qt.Equals, 0)
	c.Assert(len(cfg.Instance.Extensions), qt.Equals, 0)
	c.Assert(cfg.Debug.Flags, qt.Equals, core.AllDebugFlags)
	c.Assert(cfg.Time.EventPollDelay, qt.Equals, 16)
	c.Assert(cfg.Selection.QueueFlags, qt.Equals, vk.QueueFlags(vk.QueueGraphicsBit))
	c.Assert(cfg.Selection.RequirePresent, qt.Equals, true)
}

func TestLoadConfigurationPrecedence(t *testing.T) {
	c := qt.New(t)
	defer c.Done()

	path := writeEnvFile(c, `
VKBOOT_WINDOW_BACKEND=sdl
VKBOOT_WINDOW_WIDTH=800
VKBOOT_WINDOW_HEIGHT=600
VKBOOT_LAYERS=VK_LAYER_LUNARG_api_dump, VK_LAYER_MESA_overlay
`)
	setenv(c, "VKBOOT_WINDOW_WIDTH", "1920")
	setenv(c, "VKBOOT_QUEUE_FLAGS", "graphics,compute")

	cfg, err := core.LoadConfiguration(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Window.Backend, qt.Equals, "sdl")
	c.Assert(cfg.Window.Width, qt.Equals, uint32(1920))
	c.Assert(cfg.Window.Height, qt.Equals, uint32(600))
	c.Assert(cfg.Instance.Layers, qt.DeepEquals, []string{"VK_LAYER_LUNARG_api_dump", "VK_LAYER_MESA_overlay"})
	c.Assert(cfg.Selection.QueueFlags, qt.Equals, vk.QueueFlags(vk.QueueGraphicsBit|vk.QueueComputeBit))
}

// writeDotEnv writes ./.env and, as envy does on init,
// overloads its values into the process environment.
func writeDotEnv(c *qt.C, values map[string]string) {
	_, err := os.Stat(".env")
	c.Assert(os.IsNotExist(err), qt.IsTrue, qt.Commentf("./.env already exists"))

	var content string
	for k, v := range values {
		content += k + "=" + v + "\n"
		setenv(c, k, v)
	}
	c.Assert(ioutil.WriteFile(".env", []byte(content), 0644), qt.IsNil)
	c.Defer(func() { os.Remove(".env") })
}

func TestLoadConfigurationDotEnv(t *testing.T) {
	c := qt.New(t)
	defer c.Done()

	writeDotEnv(c, map[string]string{
		"VKBOOT_WINDOW_WIDTH":  "333",
		"VKBOOT_WINDOW_HEIGHT": "444",
		"VKBOOT_WINDOW_TITLE":  "dotenv",
		"VKBOOT_QUEUE_FLAGS":   "transfer",
	})
	path := writeEnvFile(c, `
VKBOOT_WINDOW_WIDTH=800
VKBOOT_WINDOW_TITLE=envfile
`)
	// Differs from ./.env, so it was set outside of it
	setenv(c, "VKBOOT_QUEUE_FLAGS", "compute")

	cfg, err := core.LoadConfiguration(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Window.Width, qt.Equals, uint32(800))
	c.Assert(cfg.Window.Title, qt.Equals, "envfile")
	c.Assert(cfg.Window.Height, qt.Equals, uint32(444))
	c.Assert(cfg.Selection.QueueFlags, qt.Equals, vk.QueueFlags(vk.QueueComputeBit))

	cfg, err = core.LoadConfiguration("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Window.Width, qt.Equals, uint32(333))
	c.Assert(cfg.Window.Title, qt.Equals, "dotenv")
}

func TestLoadConfigurationErrors(t *testing.T) {
	c := qt.New(t)

	_, err := core.LoadConfiguration(filepath.Join(os.TempDir(), "vkboot-does-not-exist.env"))
	c.Assert(err, qt.ErrorMatches, `core.LoadConfiguration\(\): .*vkboot-does-not-exist.env: .*`)

	for _, tc := range []struct {
		key, value, err string
	}{
		{"VKBOOT_WINDOW_BACKEND", "wayland", `VKBOOT_WINDOW_BACKEND: unknown backend "wayland"`},
		{"VKBOOT_WINDOW_WIDTH", "wide", `VKBOOT_WINDOW_WIDTH: invalid size "wide"`},
		{"VKBOOT_WINDOW_HEIGHT", "0", `VKBOOT_WINDOW_HEIGHT: invalid size "0"`},
		{"VKBOOT_DEBUG", "maybe", `VKBOOT_DEBUG: invalid boolean "maybe"`},
		{"VKBOOT_DEBUG_FLAGS", "loud", `VKBOOT_DEBUG_FLAGS: unknown debug flag "loud"`},
		{"VKBOOT_EVENT_POLL_DELAY", "-5", `VKBOOT_EVENT_POLL_DELAY: invalid delay "-5"`},
		{"VKBOOT_QUEUE_FLAGS", "video", `VKBOOT_QUEUE_FLAGS: unknown queue flag "video"`},
		{"VKBOOT_QUEUE_FLAGS", " ", `VKBOOT_QUEUE_FLAGS: no queue flags given`},
	} {
		c.Run(tc.key+"="+tc.value, func(c *qt.C) {
			defer c.Done()
			setenv(c, tc.key, tc.value)
			_, err := core.LoadConfiguration("")
			c.Assert(err, qt.ErrorMatches, tc.err)
		})
	}
}

func TestParseFlags(t *testing.T) {
	c := qt.New(t)

	qf, err := core.ParseQueueFlags("Transfer, sparse")
	c.Assert(err, qt.IsNil)
	c.Assert(qf, qt.Equals, vk.QueueFlags(vk.QueueTransferBit|vk.QueueSparseBindingBit))

	df, err := core.ParseDebugFlags("error,warning")
	c.Assert(err, qt.IsNil)
	c.Assert(df, qt.Equals, vk.DebugReportFlags(vk.DebugReportErrorBit|vk.DebugReportWarningBit))

	df, err = core.ParseDebugFlags("")
	c.Assert(err, qt.IsNil)
	c.Assert(df, qt.Equals, vk.DebugReportFlags(0))
}

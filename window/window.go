// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package window opens the native window a Vulkan surface is created for.
package window

import (
	"unsafe"

	"github.com/devblok/vkboot/core"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// Window is a native window able to host a Vulkan surface.
// Every method must be called from the main thread.
type Window interface {
	// InstanceExtensions lists the instance extensions
	// the window system needs for surface creation
	InstanceExtensions() []string

	// ProcAddr returns the vkGetInstanceProcAddr loaded by the window system
	ProcAddr() unsafe.Pointer

	// CreateSurface creates a surface for the window, ownership
	// passes to the caller
	CreateSurface(instance vk.Instance) (vk.Surface, error)

	// ShouldClose reports whether closing was requested,
	// either by the window system or by pressing Escape
	ShouldClose() bool

	// PollEvents processes pending events without blocking
	PollEvents()

	// Destroy closes the window and shuts down the window system
	Destroy()
}

// New opens a window using the configured backend
func New(cfg core.WindowConfiguration, logger *logrus.Logger) (Window, error) {
	switch cfg.Backend {
	case "glfw":
		w, err := NewGLFW(cfg, logger)
		if err != nil {
			return nil, err
		}
		return w, nil
	case "sdl":
		w, err := NewSDL(cfg, logger)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, errors.Errorf("window.New(): unknown backend %q", cfg.Backend)
	}
}

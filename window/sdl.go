// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package window

import (
	"unsafe"

	"github.com/devblok/vkboot/core"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	vk "github.com/vulkan-go/vulkan"
)

// NewSDL initializes SDL video and events, loads the
// Vulkan library through SDL and opens the window
func NewSDL(cfg core.WindowConfiguration, logger *logrus.Logger) (*SDL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, errors.Wrap(err, "sdl.Init()")
	}
	logger.Info("SDL initialized")

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "sdl.VulkanLoadLibrary()")
	}

	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.VulkanUnloadLibrary()
		sdl.Quit()
		return nil, errors.Wrap(err, "sdl.CreateWindow()")
	}
	logger.Info("SDL window created")

	return &SDL{
		window: window,
		logger: logger,
	}, nil
}

// SDL is a window backed by SDL2
type SDL struct {
	window      *sdl.Window
	logger      *logrus.Logger
	shouldClose bool
}

// InstanceExtensions implements interface
func (s *SDL) InstanceExtensions() []string {
	return s.window.VulkanGetInstanceExtensions()
}

// ProcAddr implements interface
func (s *SDL) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// CreateSurface implements interface
func (s *SDL) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	surface, err := s.window.VulkanCreateSurface(instance)
	if err != nil {
		return vk.NullSurface, err
	}
	return vk.SurfaceFromPointer(uintptr(surface)), nil
}

// ShouldClose implements interface
func (s *SDL) ShouldClose() bool {
	return s.shouldClose
}

// PollEvents implements interface
func (s *SDL) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			if et.Type == sdl.KEYDOWN && et.Keysym.Sym == sdl.K_ESCAPE {
				s.shouldClose = true
			}
		case *sdl.QuitEvent:
			s.shouldClose = true
		}
	}
}

// Destroy implements interface
func (s *SDL) Destroy() {
	if s == nil || s.window == nil {
		return
	}
	s.window.Destroy()
	s.window = nil
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
	s.logger.Info("SDL terminated")
}

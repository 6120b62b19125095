// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core creates and owns the Vulkan instance, its debug
// report callback and the presentation surface.
package core

import (
	"github.com/devblok/vkboot/device"
	vk "github.com/vulkan-go/vulkan"
)

// Destroyable is anything holding API handles that must be released
type Destroyable interface {
	// Destroy releases the handles, in reverse order of creation
	Destroy()
}

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	Destroyable

	// PhysicalDevicesInfo returns a snapshot for each Physical Device,
	// queried against the current surface
	PhysicalDevicesInfo() ([]device.PhysicalDeviceInfo, error)

	// SetSurface hands over ownership of the window surface,
	// it is destroyed together with the instance
	SetSurface(vk.Surface)

	// Surface returns the window surface, if it's not set
	// it should return a valid but empty surface
	Surface() vk.Surface

	// Extensions returns enabled instance extensions
	Extensions() []string

	// Layers returns enabled instance layers
	Layers() []string

	// Inner returns the inner handle of the underlying API
	Inner() vk.Instance
}

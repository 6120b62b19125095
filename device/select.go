// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// ErrNoSuitableDevice is returned by Select when no queue family matches
var ErrNoSuitableDevice = errors.New("no suitable device and queue family found")

// QueueRequirement is what a queue family must offer to be selected
type QueueRequirement struct {
	Flags vk.QueueFlags

	// Present must equal the family's presentation support
	Present bool
}

// Selection is the device and queue family picked for rendering
type Selection struct {
	// DeviceIndex is the position of Device in the enumerated list
	DeviceIndex      int
	QueueFamilyIndex uint32
	Device           *PhysicalDeviceInfo
}

// Select returns the first device and queue family, in enumeration order,
// whose flags contain required and whose presentation support equals present.
func Select(devices []PhysicalDeviceInfo, required QueueRequirement) (Selection, error) {
	for i := range devices {
		for _, family := range devices[i].QueueFamilies {
			if family.Supports(required.Flags) && family.PresentSupport == required.Present {
				return Selection{
					DeviceIndex:      i,
					QueueFamilyIndex: family.Index,
					Device:           &devices[i],
				}, nil
			}
		}
	}
	return Selection{}, ErrNoSuitableDevice
}

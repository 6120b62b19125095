// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device_test

import (
	"testing"

	"github.com/devblok/vkboot/device"
	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"
)

func TestQueueFamilySupports(t *testing.T) {
	c := qt.New(t)
	q := device.QueueFamily{Flags: graphics | transfer}

	c.Assert(q.Supports(graphics), qt.Equals, true)
	c.Assert(q.Supports(graphics|transfer), qt.Equals, true)
	c.Assert(q.Supports(graphics|compute), qt.Equals, false)
	c.Assert(q.Supports(0), qt.Equals, true)
}

func TestVersionString(t *testing.T) {
	c := qt.New(t)
	c.Assert(device.VersionString(vk.MakeVersion(1, 2, 131)), qt.Equals, "1.2.131")
	c.Assert(device.VersionString(vk.MakeVersion(1, 0, 0)), qt.Equals, "1.0.0")
}

func TestQueueFlagsString(t *testing.T) {
	c := qt.New(t)
	c.Assert(device.QueueFlagsString(graphics|compute|transfer), qt.Equals, "graphics|compute|transfer")
	c.Assert(device.QueueFlagsString(transfer), qt.Equals, "transfer")
	c.Assert(device.QueueFlagsString(0), qt.Equals, "none")
}

func TestNames(t *testing.T) {
	c := qt.New(t)
	c.Assert(device.DeviceTypeName(vk.PhysicalDeviceTypeDiscreteGpu), qt.Equals, "Discrete GPU")
	c.Assert(device.DeviceTypeName(vk.PhysicalDeviceType(42)), qt.Equals, "Unknown")
	c.Assert(device.PresentModeName(vk.PresentModeMailbox), qt.Equals, "Mailbox")
	c.Assert(device.PresentModeName(vk.PresentMode(42)), qt.Equals, "Unknown(42)")
	c.Assert(device.Extent{Width: 1080, Height: 720}.String(), qt.Equals, "1080x720")
}

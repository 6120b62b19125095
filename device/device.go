// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device snapshots physical device capabilities and
// picks the device and queue family used for rendering.
package device

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// PhysicalDeviceInfo describes available physical properties of a rendering device.
// It is populated once by Query and not modified afterwards.
type PhysicalDeviceInfo struct {
	Handle vk.PhysicalDevice `json:"-"`

	ID            int    `json:"id"`
	VendorID      int    `json:"vendor_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	APIVersion    string `json:"api_version"`
	DriverVersion int    `json:"driver_version"`

	// Invalid is set when extensions or layers could not be listed
	Invalid    bool     `json:"invalid"`
	Extensions []string `json:"extensions"`
	Layers     []string `json:"layers"`

	QueueFamilies []QueueFamily `json:"queue_families"`

	SurfaceFormats      []SurfaceFormat      `json:"surface_formats,omitempty"`
	SurfaceCapabilities *SurfaceCapabilities `json:"surface_capabilities,omitempty"`
	PresentModes        []string             `json:"present_modes,omitempty"`

	MemoryTypes []MemoryType `json:"memory_types"`
	MemoryHeaps []MemoryHeap `json:"memory_heaps"`

	// Memory is the sum of all heap sizes in bytes
	Memory uint64 `json:"memory"`
}

// QueueFamily is a queue family of a physical device together with
// its presentation support for the queried surface.
type QueueFamily struct {
	Index          uint32        `json:"index"`
	Flags          vk.QueueFlags `json:"flags"`
	Count          uint32        `json:"count"`
	PresentSupport bool          `json:"present_support"`
}

// Supports reports whether every bit of required is present.
func (q QueueFamily) Supports(required vk.QueueFlags) bool {
	return q.Flags&required == required
}

// SurfaceFormat is a format and color space pair supported by the surface
type SurfaceFormat struct {
	Format     vk.Format     `json:"format"`
	ColorSpace vk.ColorSpace `json:"color_space"`
}

// Extent is a two dimensional size in pixels
type Extent struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// SurfaceCapabilities mirrors the surface capabilities of a device
type SurfaceCapabilities struct {
	MinImageCount           uint32 `json:"min_image_count"`
	MaxImageCount           uint32 `json:"max_image_count"`
	CurrentExtent           Extent `json:"current_extent"`
	MinImageExtent          Extent `json:"min_image_extent"`
	MaxImageExtent          Extent `json:"max_image_extent"`
	MaxImageArrayLayers     uint32 `json:"max_image_array_layers"`
	SupportedTransforms     uint32 `json:"supported_transforms"`
	CurrentTransform        uint32 `json:"current_transform"`
	SupportedCompositeAlpha uint32 `json:"supported_composite_alpha"`
	SupportedUsageFlags     uint32 `json:"supported_usage_flags"`
}

// MemoryType is one memory type of the device
type MemoryType struct {
	PropertyFlags uint32 `json:"property_flags"`
	HeapIndex     uint32 `json:"heap_index"`
}

// MemoryHeap is one memory heap of the device
type MemoryHeap struct {
	Size  uint64 `json:"size"`
	Flags uint32 `json:"flags"`
}

// DeviceTypeName gives a readable name of the physical device type
func DeviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "Integrated GPU"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "Discrete GPU"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "Virtual GPU"
	case vk.PhysicalDeviceTypeCpu:
		return "CPU"
	case vk.PhysicalDeviceTypeOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// PresentModeName gives a readable name of the present mode
func PresentModeName(m vk.PresentMode) string {
	switch m {
	case vk.PresentModeImmediate:
		return "Immediate"
	case vk.PresentModeMailbox:
		return "Mailbox"
	case vk.PresentModeFifo:
		return "FIFO"
	case vk.PresentModeFifoRelaxed:
		return "FIFO relaxed"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// VersionString formats a packed Vulkan version number
func VersionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22, (v>>12)&0x3ff, v&0xfff)
}

// QueueFlagsString lists the capabilities in a set of queue flags
func QueueFlagsString(flags vk.QueueFlags) string {
	var s string
	for _, f := range []struct {
		bit  vk.QueueFlagBits
		name string
	}{
		{vk.QueueGraphicsBit, "graphics"},
		{vk.QueueComputeBit, "compute"},
		{vk.QueueTransferBit, "transfer"},
		{vk.QueueSparseBindingBit, "sparse"},
	} {
		if flags&vk.QueueFlags(f.bit) != 0 {
			if s != "" {
				s += "|"
			}
			s += f.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

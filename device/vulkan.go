// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Enumerate lists the physical devices of instance
func Enumerate(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, errors.Wrap(err, "vulkan physical device enumeration failed")
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, errors.Wrap(err, "vulkan physical device enumeration failed")
	}
	return availableDevices[:deviceCount], nil
}

// QueryAll snapshots every device in order, see Query.
func QueryAll(devices []vk.PhysicalDevice, surface vk.Surface) ([]PhysicalDeviceInfo, error) {
	pdi := make([]PhysicalDeviceInfo, 0, len(devices))
	for i, dev := range devices {
		info, err := Query(dev, surface)
		if err != nil {
			return nil, errors.Wrapf(err, "device %d", i)
		}
		pdi = append(pdi, info)
	}
	return pdi, nil
}

// Query snapshots the properties of a physical device. Surface related
// fields are queried only when surface is not vk.NullSurface.
func Query(dev vk.PhysicalDevice, surface vk.Surface) (PhysicalDeviceInfo, error) {
	info := PhysicalDeviceInfo{Handle: dev}

	// Get general device info
	var physicalDeviceProperties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(dev, &physicalDeviceProperties)
	physicalDeviceProperties.Deref()
	info.ID = (int)(physicalDeviceProperties.DeviceID)
	info.VendorID = (int)(physicalDeviceProperties.VendorID)
	info.Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
	info.Type = DeviceTypeName(physicalDeviceProperties.DeviceType)
	info.APIVersion = VersionString(physicalDeviceProperties.ApiVersion)
	info.DriverVersion = (int)(physicalDeviceProperties.DriverVersion)

	// Get extension info
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(dev, "", &numDeviceExtensions, nil)); err != nil {
		info.Invalid = true
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(dev, "", &numDeviceExtensions, deviceExt)); err != nil {
		info.Invalid = true
	}
	for _, ext := range deviceExt {
		ext.Deref()
		info.Extensions = append(info.Extensions, vk.ToString(ext.ExtensionName[:]))
	}

	// Get layers info
	var numDeviceLayers uint32
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(dev, &numDeviceLayers, nil)); err != nil {
		info.Invalid = true
	}
	deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(dev, &numDeviceLayers, deviceLayers)); err != nil {
		info.Invalid = true
	}
	for _, layer := range deviceLayers {
		layer.Deref()
		info.Layers = append(info.Layers, vk.ToString(layer.LayerName[:]))
	}

	// Get memory info
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(dev, &memoryProperties)
	memoryProperties.Deref()
	for iMem := uint32(0); iMem < memoryProperties.MemoryTypeCount; iMem++ {
		memoryProperties.MemoryTypes[iMem].Deref()
		info.MemoryTypes = append(info.MemoryTypes, MemoryType{
			PropertyFlags: uint32(memoryProperties.MemoryTypes[iMem].PropertyFlags),
			HeapIndex:     memoryProperties.MemoryTypes[iMem].HeapIndex,
		})
	}
	for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		heap := MemoryHeap{
			Size:  uint64(memoryProperties.MemoryHeaps[iMem].Size),
			Flags: uint32(memoryProperties.MemoryHeaps[iMem].Flags),
		}
		info.MemoryHeaps = append(info.MemoryHeaps, heap)
		info.Memory += heap.Size
	}

	// Get queue families and their present support
	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(dev, &queueFamilyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(dev, &queueFamilyCount, queueFamilies)
	for i := uint32(0); i < queueFamilyCount; i++ {
		queueFamilies[i].Deref()
		family := QueueFamily{
			Index: i,
			Flags: queueFamilies[i].QueueFlags,
			Count: queueFamilies[i].QueueCount,
		}
		if surface != vk.NullSurface {
			var supportsPresent vk.Bool32
			if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(dev, i, surface, &supportsPresent)); err != nil {
				return info, errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceSupport()")
			}
			family.PresentSupport = supportsPresent.B()
		}
		info.QueueFamilies = append(info.QueueFamilies, family)
	}

	if surface == vk.NullSurface {
		return info, nil
	}

	if err := querySurface(dev, surface, &info); err != nil {
		return info, err
	}
	return info, nil
}

func querySurface(dev vk.PhysicalDevice, surface vk.Surface, info *PhysicalDeviceInfo) error {
	/* Formats */
	var surfaceFormatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(dev, surface, &surfaceFormatCount, nil)); err != nil {
		return errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceFormats()")
	}
	surfaceFormats := make([]vk.SurfaceFormat, surfaceFormatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(dev, surface, &surfaceFormatCount, surfaceFormats)); err != nil {
		return errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceFormats()")
	}
	for i := uint32(0); i < surfaceFormatCount; i++ {
		surfaceFormats[i].Deref()
		info.SurfaceFormats = append(info.SurfaceFormats, SurfaceFormat{
			Format:     surfaceFormats[i].Format,
			ColorSpace: surfaceFormats[i].ColorSpace,
		})
	}

	/* Capabilities */
	var caps vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(dev, surface, &caps)); err != nil {
		return errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceCapabilities()")
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	info.SurfaceCapabilities = &SurfaceCapabilities{
		MinImageCount:           caps.MinImageCount,
		MaxImageCount:           caps.MaxImageCount,
		CurrentExtent:           Extent{caps.CurrentExtent.Width, caps.CurrentExtent.Height},
		MinImageExtent:          Extent{caps.MinImageExtent.Width, caps.MinImageExtent.Height},
		MaxImageExtent:          Extent{caps.MaxImageExtent.Width, caps.MaxImageExtent.Height},
		MaxImageArrayLayers:     caps.MaxImageArrayLayers,
		SupportedTransforms:     uint32(caps.SupportedTransforms),
		CurrentTransform:        uint32(caps.CurrentTransform),
		SupportedCompositeAlpha: uint32(caps.SupportedCompositeAlpha),
		SupportedUsageFlags:     uint32(caps.SupportedUsageFlags),
	}

	/* Present modes */
	var presentModeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(dev, surface, &presentModeCount, nil)); err != nil {
		return errors.Wrap(err, "vk.GetPhysicalDeviceSurfacePresentModes()")
	}
	presentModes := make([]vk.PresentMode, presentModeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(dev, surface, &presentModeCount, presentModes)); err != nil {
		return errors.Wrap(err, "vk.GetPhysicalDeviceSurfacePresentModes()")
	}
	for _, mode := range presentModes[:presentModeCount] {
		info.PresentModes = append(info.PresentModes, PresentModeName(mode))
	}
	return nil
}

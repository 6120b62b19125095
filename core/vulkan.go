// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strings"
	"unsafe"

	"github.com/devblok/vkboot/device"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// Layer and extension enabled in debug mode
const (
	ValidationLayer          = "VK_LAYER_KHRONOS_validation"
	DebugReportExtensionName = "VK_EXT_debug_report"
)

// Enabled returns the layers and extensions to enable. Debug mode adds
// ValidationLayer and DebugReportExtensionName unless already listed.
// The configured slices are not modified.
func (c InstanceConfiguration) Enabled() (layers, extensions []string) {
	layers = append([]string(nil), c.Layers...)
	extensions = append([]string(nil), c.Extensions...)
	if c.DebugMode {
		layers = appendUnique(layers, ValidationLayer)
		extensions = appendUnique(extensions, DebugReportExtensionName)
	}
	return layers, extensions
}

// NewApplicationInfo describes a Vulkan 1.0 application of the given name
func NewApplicationInfo(name string) *vk.ApplicationInfo {
	return &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 0, 0),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PApplicationName:   SafeString(name),
		PEngineName:        SafeString("vkboot"),
	}
}

// NewVulkanInstance creates a Vulkan instance. procAddr is the loader entry
// point handed out by the window system, nil loads the default Vulkan library.
// In debug mode the debug report callback is registered and its messages go to logger.
func NewVulkanInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, cfg InstanceConfiguration, dbg DebugConfiguration, logger *logrus.Logger) (Instance, error) {
	cfg.Layers, cfg.Extensions = cfg.Enabled()

	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.Wrap(err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "vk.Init()")
	}

	/* Check requested layers and extensions */
	if len(cfg.Layers) > 0 {
		available, err := InstanceLayers()
		if err != nil {
			return nil, errors.Wrap(err, "vk.EnumerateInstanceLayerProperties()")
		}
		if missing := Missing(cfg.Layers, available); len(missing) > 0 {
			return nil, errors.Errorf("instance layers not available: %s", strings.Join(missing, ", "))
		}
	}
	if len(cfg.Extensions) > 0 {
		available, err := InstanceExtensions()
		if err != nil {
			return nil, errors.Wrap(err, "vk.EnumerateInstanceExtensionProperties()")
		}
		if missing := Missing(cfg.Extensions, available); len(missing) > 0 {
			return nil, errors.Errorf("instance extensions not available: %s", strings.Join(missing, ", "))
		}
	}

	/* Create instance */
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(cfg.Extensions)),
		PpEnabledExtensionNames: SafeStrings(cfg.Extensions),
		EnabledLayerCount:       uint32(len(cfg.Layers)),
		PpEnabledLayerNames:     SafeStrings(cfg.Layers),
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, errors.Wrap(err, "vk.CreateInstance()")
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, errors.Wrap(err, "vk.InitInstance()")
	}
	logger.Info("Vulkan instance created")

	v := &VulkanInstance{
		configuration: cfg,
		instance:      instance,
		surface:       vk.NullSurface,
		debugCallback: vk.NullDebugReportCallback,
		logger:        logger,
	}

	/* Debug report callback */
	if cfg.DebugMode {
		flags := dbg.Flags
		if flags == 0 {
			flags = AllDebugFlags
		}
		dbgCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       flags,
			PfnCallback: NewDebugCallback(logger),
		}
		var callback vk.DebugReportCallback
		if err := vk.Error(vk.CreateDebugReportCallback(instance, &dbgCreateInfo, nil, &callback)); err != nil {
			v.Destroy()
			return nil, errors.Wrap(err, "vk.CreateDebugReportCallback()")
		}
		v.debugCallback = callback
		logger.Info("Debug report callback created")
	}

	/* Enumerate devices */
	physicalDevices, err := device.Enumerate(instance)
	if err != nil {
		v.Destroy()
		return nil, errors.Wrap(err, "device.Enumerate()")
	}
	v.availableDevices = physicalDevices
	logger.WithField("count", len(physicalDevices)).Info("Physical devices enumerated")

	return v, nil
}

// VulkanInstance describes a Vulkan API Instance
type VulkanInstance struct {
	configuration InstanceConfiguration
	logger        *logrus.Logger

	availableDevices []vk.PhysicalDevice
	surface          vk.Surface
	debugCallback    vk.DebugReportCallback
	instance         vk.Instance
}

// PhysicalDevicesInfo implements interface
func (v *VulkanInstance) PhysicalDevicesInfo() ([]device.PhysicalDeviceInfo, error) {
	return device.QueryAll(v.availableDevices, v.Surface())
}

// SetSurface implements interface
func (v *VulkanInstance) SetSurface(surface vk.Surface) {
	v.surface = surface
}

// Surface implements interface
func (v *VulkanInstance) Surface() vk.Surface {
	if v.surface == nil {
		return vk.NullSurface
	}
	return v.surface
}

// Inner returns internal vk.Instance
func (v *VulkanInstance) Inner() vk.Instance {
	return v.instance
}

// Extensions implements interface
func (v *VulkanInstance) Extensions() []string {
	return v.configuration.Extensions
}

// Layers implements interface
func (v *VulkanInstance) Layers() []string {
	return v.configuration.Layers
}

// Destroy implements interface. The surface goes first,
// then the debug callback, then the instance itself.
func (v *VulkanInstance) Destroy() {
	if v == nil || v.instance == nil {
		return
	}
	v.availableDevices = nil

	if v.Surface() != vk.NullSurface {
		vk.DestroySurface(v.instance, v.surface, nil)
		v.surface = vk.NullSurface
		v.logger.Info("Surface destroyed")
	}

	if v.debugCallback != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(v.instance, v.debugCallback, nil)
		v.debugCallback = vk.NullDebugReportCallback
		v.logger.Info("Debug report callback destroyed")
	}

	vk.DestroyInstance(v.instance, nil)
	v.instance = nil
	v.logger.Info("Vulkan instance destroyed")
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strings"

	vk "github.com/vulkan-go/vulkan"
)

// SafeString terminates s with a NUL byte, as the Vulkan
// bindings expect. Already terminated strings are left as is.
func SafeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// SafeStrings applies SafeString to every element.
func SafeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, SafeString(s))
	}
	return safe
}

// appendUnique appends names that are not yet in list,
// comparing them without the terminating NUL.
func appendUnique(list []string, names ...string) []string {
	for _, name := range names {
		var found bool
		for _, existing := range list {
			if strings.TrimSuffix(existing, "\x00") == strings.TrimSuffix(name, "\x00") {
				found = true
				break
			}
		}
		if !found {
			list = append(list, name)
		}
	}
	return list
}

// Missing returns the names from required that are not present
// in available. Order of required is kept.
func Missing(required, available []string) []string {
	have := make(map[string]struct{}, len(available))
	for _, a := range available {
		have[strings.TrimSuffix(a, "\x00")] = struct{}{}
	}
	var missing []string
	for _, r := range required {
		name := strings.TrimSuffix(r, "\x00")
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// InstanceLayers lists layers reported by the Vulkan loader.
func InstanceLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, props)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, p := range props {
		p.Deref()
		names = append(names, vk.ToString(p.LayerName[:]))
	}
	return names, nil
}

// InstanceExtensions lists extensions reported by the Vulkan loader.
func InstanceExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, p := range props {
		p.Deref()
		names = append(names, vk.ToString(p.ExtensionName[:]))
	}
	return names, nil
}

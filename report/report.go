// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package report renders device snapshots as tables, JSON,
// or lz4 compressed JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/devblok/vkboot/device"
	"github.com/pierrec/lz4"
	"github.com/pkg/errors"
	"github.com/xlab/tablewriter"
)

// Report is the document written by WriteJSON
type Report struct {
	InstanceLayers     []string                    `json:"instance_layers"`
	InstanceExtensions []string                    `json:"instance_extensions"`
	Devices            []device.PhysicalDeviceInfo `json:"devices"`
}

// WriteJSON writes r as indented JSON
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCompressedJSON writes r as JSON inside an lz4 frame
func WriteCompressedJSON(w io.Writer, r Report) error {
	zw := lz4.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(r); err != nil {
		zw.Close()
		return errors.Wrap(err, "report.WriteCompressedJSON()")
	}
	return zw.Close()
}

// ReadCompressedJSON reads a report written by WriteCompressedJSON
func ReadCompressedJSON(r io.Reader) (Report, error) {
	var rep Report
	if err := json.NewDecoder(lz4.NewReader(r)).Decode(&rep); err != nil {
		return Report{}, errors.Wrap(err, "report.ReadCompressedJSON()")
	}
	return rep, nil
}

// Save runs write against wc and closes it. A failed close is
// reported, the output may be truncated.
func Save(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	return errors.Wrap(wc.Close(), "report.Save(): close")
}

// Table renders r for a terminal. When sel is not nil the
// selected device and queue family are marked.
func Table(r Report, sel *device.Selection) string {
	table := tablewriter.CreateTable()
	table.UTF8Box()
	table.AddTitle("VULKAN PHYSICAL DEVICES")
	table.AddRow("Physical GPUs", len(r.Devices))

	for i, d := range r.Devices {
		selected := sel != nil && sel.DeviceIndex == i

		table.AddSeparator()
		name := d.Name
		if selected {
			name += " (selected)"
		}
		table.AddRow(fmt.Sprintf("Device %d", i), name)
		table.AddRow("Type", d.Type)
		table.AddRow("Vendor", fmt.Sprintf("%x", d.VendorID))
		table.AddRow("API Version", d.APIVersion)
		table.AddRow("Driver Version", d.DriverVersion)
		table.AddRow("Memory", fmt.Sprintf("%d MiB", d.Memory>>20))
		if d.Invalid {
			table.AddRow("Warning", "extensions or layers could not be listed")
		}

		for _, q := range d.QueueFamilies {
			mark := ""
			if selected && sel.QueueFamilyIndex == q.Index {
				mark = " <"
			}
			table.AddRow(fmt.Sprintf("Queue family %d", q.Index),
				fmt.Sprintf("%s x%d present=%t%s", device.QueueFlagsString(q.Flags), q.Count, q.PresentSupport, mark))
		}

		if caps := d.SurfaceCapabilities; caps != nil {
			table.AddRow("Image count", fmt.Sprintf("%d - %d", caps.MinImageCount, caps.MaxImageCount))
			table.AddRow("Image size (current)", caps.CurrentExtent.String())
			table.AddRow("Image size (extent)", caps.MinImageExtent.String()+" - "+caps.MaxImageExtent.String())
			table.AddRow("Surface formats", len(d.SurfaceFormats))
		}
		if len(d.PresentModes) > 0 {
			table.AddRow("Present modes", fmt.Sprint(d.PresentModes))
		}
		table.AddRow("Device extensions", len(d.Extensions))
	}

	if len(r.InstanceLayers) > 0 {
		table.AddSeparator()
		table.AddRow("INSTANCE LAYERS", "")
		for i, name := range r.InstanceLayers {
			table.AddRow(i+1, name)
		}
	}
	if len(r.InstanceExtensions) > 0 {
		table.AddSeparator()
		table.AddRow("INSTANCE EXTENSIONS", "")
		for i, name := range r.InstanceExtensions {
			table.AddRow(i+1, name)
		}
	}
	return table.Render()
}

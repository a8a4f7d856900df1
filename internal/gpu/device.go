// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Context owns the hal instance, device, and queue backing a pipeline.
type Context struct {
	Instance hal.Instance
	Device   hal.Device
	Queue    hal.Queue

	adapterName string
}

// OpenContext acquires a GPU device through the Vulkan backend,
// preferring discrete and integrated GPUs over software adapters.
func OpenContext() (*Context, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	return &Context{
		Instance:    instance,
		Device:      openDev.Device,
		Queue:       openDev.Queue,
		adapterName: selected.Info.Name,
	}, nil
}

// AdapterName reports the selected adapter, for logs.
func (c *Context) AdapterName() string {
	return c.adapterName
}

// Destroy releases the device and instance. Safe to call twice.
func (c *Context) Destroy() {
	if c.Device != nil {
		c.Device.Destroy()
		c.Device = nil
		c.Queue = nil
	}
	if c.Instance != nil {
		c.Instance.Destroy()
		c.Instance = nil
	}
}

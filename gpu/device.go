package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device selection errors. Both are fatal: the renderer has no software
// fallback path.
var (
	// ErrNoBackend means no compute backend is registered or usable on
	// this machine.
	ErrNoBackend = errors.New("gpu: no compute backend available")

	// ErrNoGPUDevice means a backend exists but exposes no GPU-class
	// adapter. CPU and software adapters are deliberately excluded.
	ErrNoGPUDevice = errors.New("gpu: no GPU-class device found")
)

// backendOrder is the probe order for compute backends. The first
// backend that reports at least one adapter wins.
var backendOrder = []gputypes.Backend{
	gputypes.BackendVulkan,
}

// DeviceInfo describes the adapter a renderer ended up on.
type DeviceInfo struct {
	Name       string
	DeviceType gputypes.DeviceType
	Backend    gputypes.Backend
}

// String returns a short human-readable summary.
func (i DeviceInfo) String() string {
	return fmt.Sprintf("%s (%v, %v)", i.Name, i.DeviceType, i.Backend)
}

// deviceContext owns the instance, the opened device and its in-order
// queue. When the device was supplied by an external provider the
// context does not own it and release becomes a no-op.
type deviceContext struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     DeviceInfo
	external bool
}

// newDeviceContext probes backends in order, picks the first GPU-class
// adapter and opens a device on it. Discrete GPUs are preferred over
// integrated ones within a backend.
func newDeviceContext() (*deviceContext, error) {
	for _, b := range backendOrder {
		backend, ok := hal.GetBackend(b)
		if !ok {
			continue
		}

		instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			slogger().Debug("backend instance creation failed",
				"backend", b, "error", err)
			continue
		}

		adapters := instance.EnumerateAdapters(nil)
		if len(adapters) == 0 {
			instance.Destroy()
			continue
		}

		selected := selectAdapter(adapters)
		if selected == nil {
			instance.Destroy()
			return nil, fmt.Errorf("%w: %d adapter(s) enumerated, none discrete or integrated",
				ErrNoGPUDevice, len(adapters))
		}

		openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
		if err != nil {
			instance.Destroy()
			return nil, fmt.Errorf("gpu: open device %q: %w", selected.Info.Name, err)
		}

		info := DeviceInfo{
			Name:       selected.Info.Name,
			DeviceType: selected.Info.DeviceType,
			Backend:    b,
		}
		slogger().Info("compute device opened",
			"device", info.Name, "type", info.DeviceType)

		return &deviceContext{
			instance: instance,
			device:   openDev.Device,
			queue:    openDev.Queue,
			info:     info,
		}, nil
	}
	return nil, ErrNoBackend
}

// newExternalDeviceContext wraps a device and queue owned by the host
// application. The context never destroys them.
func newExternalDeviceContext(device hal.Device, queue hal.Queue) *deviceContext {
	return &deviceContext{
		device:   device,
		queue:    queue,
		info:     DeviceInfo{Name: "external device"},
		external: true,
	}
}

// selectAdapter returns the best GPU-class adapter, or nil when only
// CPU or software adapters are present.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	var integrated *hal.ExposedAdapter
	for i := range adapters {
		switch adapters[i].Info.DeviceType {
		case gputypes.DeviceTypeDiscreteGPU:
			return &adapters[i]
		case gputypes.DeviceTypeIntegratedGPU:
			if integrated == nil {
				integrated = &adapters[i]
			}
		}
	}
	return integrated
}

// release destroys the device and instance unless they are externally
// owned. Safe to call more than once.
func (c *deviceContext) release() {
	if c.external {
		return
	}
	if c.device != nil {
		c.device.Destroy()
		c.device = nil
	}
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
}

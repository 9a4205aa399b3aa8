package render

import (
	"github.com/gogpu/gpucontext"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the integration point between the renderer and GPU
// frameworks like gogpu. The host application implements DeviceHandle and
// passes it to the renderer, allowing the renderer to use the shared GPU
// device instead of creating a standalone one.
//
// Key principle: when a handle is supplied, the renderer RECEIVES the device
// from the host, it does not create one. This enables:
//   - Shared GPU resources between the renderer and the host application
//   - Zero device creation overhead in the renderer
//   - Consistent resource management across the stack
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// renderer-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/duskhall/render"
)

const (
	// directionBufferSize is the allocated size of the camera direction
	// buffer. A three-float vector padded to 16 bytes, matching the
	// uniform layout of vec3<f32>.
	directionBufferSize = 16

	// directionDataSize is the number of bytes actually written per
	// frame. The fourth lane stays untouched padding.
	directionDataSize = 12
)

// colorBufferSize returns the byte size of the output color buffer for
// a frame of the given dimensions, four bytes per pixel.
func colorBufferSize(width, height int) uint64 {
	return uint64(4) * uint64(width) * uint64(height)
}

// packDirection encodes a camera direction as three little-endian f32
// lanes, the layout the kernel reads from the uniform buffer.
func packDirection(dir render.Vec3) [directionDataSize]byte {
	var out [directionDataSize]byte
	binary.LittleEndian.PutUint32(out[0:], math.Float32bits(float32(dir.X)))
	binary.LittleEndian.PutUint32(out[4:], math.Float32bits(float32(dir.Y)))
	binary.LittleEndian.PutUint32(out[8:], math.Float32bits(float32(dir.Z)))
	return out
}

// frameBuffers holds the per-frame device allocations: the read-only
// direction uniform, the kernel-written color buffer and the staging
// buffer the host reads back through.
type frameBuffers struct {
	device    hal.Device
	direction hal.Buffer
	color     hal.Buffer
	staging   hal.Buffer
	colorSize uint64
}

// allocFrameBuffers creates all three buffers for the given frame size.
// Any allocation failure destroys what was already created.
func allocFrameBuffers(device hal.Device, width, height int) (*frameBuffers, error) {
	b := &frameBuffers{
		device:    device,
		colorSize: colorBufferSize(width, height),
	}

	var err error
	b.direction, err = device.CreateBuffer(&hal.BufferDescriptor{
		Label: "camera_direction",
		Size:  directionBufferSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create direction buffer: %w", err)
	}

	b.color, err = device.CreateBuffer(&hal.BufferDescriptor{
		Label: "frame_color",
		Size:  b.colorSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		b.destroy()
		return nil, fmt.Errorf("gpu: create color buffer: %w", err)
	}

	b.staging, err = device.CreateBuffer(&hal.BufferDescriptor{
		Label: "frame_staging",
		Size:  b.colorSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		b.destroy()
		return nil, fmt.Errorf("gpu: create staging buffer: %w", err)
	}

	return b, nil
}

// destroy releases the buffers. Safe to call on a partially allocated
// set and safe to call more than once.
func (b *frameBuffers) destroy() {
	if b.device == nil {
		return
	}
	if b.staging != nil {
		b.device.DestroyBuffer(b.staging)
		b.staging = nil
	}
	if b.color != nil {
		b.device.DestroyBuffer(b.color)
		b.color = nil
	}
	if b.direction != nil {
		b.device.DestroyBuffer(b.direction)
		b.direction = nil
	}
}

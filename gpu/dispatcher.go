package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/duskhall/render"
)

// Frame submission errors.
var (
	// ErrSizeMismatch means the destination surface does not match the
	// frame dimensions the renderer was built for. Detected before any
	// device call is made.
	ErrSizeMismatch = errors.New("gpu: destination surface size mismatch")

	// ErrFrameTimeout means the queue did not drain within the fence
	// timeout. The device is considered lost.
	ErrFrameTimeout = errors.New("gpu: frame fence timeout")
)

// frameTimeout bounds the fence wait so a hung device fails the frame
// instead of blocking forever.
const frameTimeout = 5 * time.Second

// dispatcher runs the per-frame cycle on a single in-order queue:
// write the camera direction, rebind the direction argument, dispatch
// the kernel over the pixel grid, drain the queue and read the color
// buffer back into the host surface.
type dispatcher struct {
	device hal.Device
	queue  hal.Queue

	program *Program
	bufs    *frameBuffers

	width      int
	height     int
	entryPoint string

	bindGroup hal.BindGroup
	// bindEpoch counts rebinds. The direction argument must be re-bound
	// after every host write or the kernel may keep reading a stale
	// snapshot, so this advances once per frame.
	bindEpoch uint64
}

func newDispatcher(device hal.Device, queue hal.Queue, program *Program,
	bufs *frameBuffers, width, height int, entryPoint string) *dispatcher {
	return &dispatcher{
		device:     device,
		queue:      queue,
		program:    program,
		bufs:       bufs,
		width:      width,
		height:     height,
		entryPoint: entryPoint,
	}
}

// writeDirection uploads the camera direction into the uniform buffer.
// Only the three live lanes are written; the padding lane keeps its
// previous contents.
func (d *dispatcher) writeDirection(dir render.Vec3) {
	data := packDirection(dir)
	d.queue.WriteBuffer(d.bufs.direction, 0, data[:])
}

// rebind replaces the bind group so the freshly written direction
// buffer is what the next dispatch observes.
func (d *dispatcher) rebind() error {
	bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "raycast_bind",
		Layout: d.program.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: d.bufs.direction.NativeHandle(), Offset: 0, Size: directionBufferSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{
				Buffer: d.bufs.color.NativeHandle(), Offset: 0, Size: d.bufs.colorSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group: %w", err)
	}
	if d.bindGroup != nil {
		d.device.DestroyBindGroup(d.bindGroup)
	}
	d.bindGroup = bg
	d.bindEpoch++
	return nil
}

// renderFrame runs one full frame cycle into dst. dst must match the
// dimensions the renderer was built for; a mismatch is rejected before
// anything touches the device.
func (d *dispatcher) renderFrame(direction render.Vec3, dst *render.Surface) error {
	if dst == nil || dst.Width() != d.width || dst.Height() != d.height {
		got := "nil"
		if dst != nil {
			got = fmt.Sprintf("%dx%d", dst.Width(), dst.Height())
		}
		return fmt.Errorf("%w: frame is %dx%d, destination is %s",
			ErrSizeMismatch, d.width, d.height, got)
	}

	d.writeDirection(direction)
	if err := d.rebind(); err != nil {
		return err
	}
	if err := d.dispatch(); err != nil {
		return err
	}

	// Fence already drained the queue; the staging buffer is coherent.
	if err := d.queue.ReadBuffer(d.bufs.staging, 0, dst.Data()); err != nil {
		return fmt.Errorf("gpu: read back frame: %w", err)
	}
	return nil
}

// dispatch encodes one compute pass over the pixel grid plus the copy
// into the staging buffer, submits it and waits for the fence.
func (d *dispatcher) dispatch() error {
	pipeline, err := d.program.pipeline(d.entryPoint)
	if err != nil {
		return err
	}
	wg := d.program.workgroup(d.entryPoint)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "frame_encoder"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("frame"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "raycast_pass"})
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, d.bindGroup, nil)
	pass.Dispatch(groupCount(uint32(d.width), wg[0]), groupCount(uint32(d.height), wg[1]), 1)
	pass.End()

	encoder.CopyBufferToBuffer(d.bufs.color, d.bufs.staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: d.bufs.colorSize},
	})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit frame: %w", err)
	}

	ok, err := d.device.Wait(fence, 1, frameTimeout)
	if err != nil {
		return fmt.Errorf("gpu: wait for frame: %w", err)
	}
	if !ok {
		return ErrFrameTimeout
	}
	return nil
}

// groupCount returns the dispatch count covering extent with workgroups
// of the given size.
func groupCount(extent, workgroup uint32) uint32 {
	if workgroup == 0 {
		return extent
	}
	return (extent + workgroup - 1) / workgroup
}

// destroy releases the current bind group.
func (d *dispatcher) destroy() {
	if d.bindGroup != nil {
		d.device.DestroyBindGroup(d.bindGroup)
		d.bindGroup = nil
	}
}

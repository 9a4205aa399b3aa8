package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/duskhall/render"
)

// Renderer lifecycle errors.
var (
	// ErrInvalidDimensions means the configured frame size is not
	// positive in both axes.
	ErrInvalidDimensions = errors.New("gpu: frame dimensions must be positive")

	// ErrClosed means the renderer was already closed.
	ErrClosed = errors.New("gpu: renderer is closed")
)

// Config configures a Renderer.
type Config struct {
	// Width and Height are the frame dimensions in pixels. The kernel
	// is specialized for them at build time; changing them needs a new
	// Renderer.
	Width  int
	Height int

	// EntryPoint selects the kernel to dispatch each frame. Defaults
	// to KernelRayCast.
	EntryPoint string
}

// Renderer bridges the game loop to the compute device. It owns the
// device context, the compiled program, the frame buffers and the
// dispatcher, and renders one frame at a time into a host Surface.
//
// A Renderer is not safe for concurrent RenderFrame calls. The mutex
// only protects the frame cycle against a concurrent Close.
type Renderer struct {
	mu sync.Mutex

	ctx     *deviceContext
	program *Program
	bufs    *frameBuffers
	disp    *dispatcher

	width, height int
	buildLog      string
	closed        bool
}

// New opens a compute device and builds a renderer for the given frame
// size. Every failure is fatal and returns with all partially created
// device objects released.
func New(cfg Config) (*Renderer, error) {
	ctx, err := newDeviceContext()
	if err != nil {
		return nil, err
	}
	return finishInit(ctx, cfg)
}

// NewWithProvider builds a renderer on a device shared with the host
// application. The provider must additionally expose HalDevice() any
// and HalQueue() any returning hal.Device and hal.Queue. The renderer
// never destroys a shared device.
func NewWithProvider(provider render.DeviceHandle, cfg Config) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, errors.New("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("gpu: provider HalQueue is not hal.Queue")
	}
	return finishInit(newExternalDeviceContext(device, queue), cfg)
}

// finishInit builds the program, buffers and dispatcher on an opened
// device context. On failure everything created so far is released,
// including the context itself.
func finishInit(ctx *deviceContext, cfg Config) (*Renderer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		ctx.release()
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}
	entryPoint := cfg.EntryPoint
	if entryPoint == "" {
		entryPoint = KernelRayCast
	}

	r := &Renderer{
		ctx:    ctx,
		width:  cfg.Width,
		height: cfg.Height,
	}

	program, err := buildProgram(ctx.device, cfg.Width, cfg.Height,
		[]string{KernelRayCast, KernelTest})
	if err != nil {
		var be *BuildError
		if errors.As(err, &be) {
			r.buildLog = be.Log
		}
		ctx.release()
		return nil, err
	}
	r.program = program

	if _, err := program.pipeline(entryPoint); err != nil {
		program.destroy()
		ctx.release()
		return nil, err
	}

	bufs, err := allocFrameBuffers(ctx.device, cfg.Width, cfg.Height)
	if err != nil {
		program.destroy()
		ctx.release()
		return nil, err
	}
	r.bufs = bufs

	r.disp = newDispatcher(ctx.device, ctx.queue, program, bufs,
		cfg.Width, cfg.Height, entryPoint)

	slogger().Info("renderer ready",
		"width", cfg.Width, "height", cfg.Height,
		"entry_point", entryPoint, "device", ctx.info.Name)
	return r, nil
}

// RenderFrame renders one frame looking along direction into dst. dst
// must match the configured frame size; a mismatch fails before any
// device work is submitted.
func (r *Renderer) RenderFrame(direction render.Vec3, dst *render.Surface) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	return r.disp.renderFrame(direction, dst)
}

// Info reports the adapter the renderer runs on.
func (r *Renderer) Info() DeviceInfo {
	return r.ctx.info
}

// Width returns the configured frame width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the configured frame height in pixels.
func (r *Renderer) Height() int { return r.height }

// BuildLog returns the most recent kernel compiler log. Empty when the
// last build succeeded.
func (r *Renderer) BuildLog() string {
	if r.buildLog != "" {
		return r.buildLog
	}
	if r.program != nil {
		return r.program.BuildLog()
	}
	return ""
}

// Close releases all device objects. Safe to call more than once;
// after Close every RenderFrame fails with ErrClosed.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true

	if r.disp != nil {
		r.disp.destroy()
	}
	if r.bufs != nil {
		r.bufs.destroy()
	}
	if r.program != nil {
		r.program.destroy()
	}
	if r.ctx != nil {
		r.ctx.release()
	}
}

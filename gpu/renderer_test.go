package gpu

import (
	"errors"
	"testing"

	"github.com/duskhall/render"
)

func newTestRenderer(t *testing.T, cfg Config) *Renderer {
	t.Helper()
	r, err := New(cfg)
	if err != nil {
		if errors.Is(err, ErrNoBackend) || errors.Is(err, ErrNoGPUDevice) {
			t.Skipf("GPU not available: %v", err)
		}
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 200},
		{"zero height", 320, 0},
		{"negative", -320, 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New(Config{Width: tc.width, Height: tc.height})
			if errors.Is(err, ErrNoBackend) || errors.Is(err, ErrNoGPUDevice) {
				t.Skipf("GPU not available: %v", err)
			}
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("New = %v, want ErrInvalidDimensions", err)
			}
			if r != nil {
				r.Close()
				t.Error("New returned a renderer alongside an error")
			}
		})
	}
}

func TestRenderFrame(t *testing.T) {
	r := newTestRenderer(t, Config{Width: 320, Height: 200})

	dst := render.NewSurface(320, 200)
	if err := r.RenderFrame(render.Vec3{Z: 1}, dst); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	// The kernel writes alpha 255 into every pixel, so any untouched
	// pixel still has the zero value.
	data := dst.Data()
	for i := 3; i < len(data); i += 4 {
		if data[i] != 255 {
			t.Fatalf("pixel %d not written by kernel (alpha %d)", i/4, data[i])
		}
	}
}

func TestRenderFrameTestKernel(t *testing.T) {
	r := newTestRenderer(t, Config{Width: 64, Height: 64, EntryPoint: KernelTest})

	dst := render.NewSurface(64, 64)
	if err := r.RenderFrame(render.Vec3{Z: 1}, dst); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	// The test kernel writes a coordinate gradient, so the top-left and
	// bottom-right corners must differ.
	tl := dst.GetPixel(0, 0)
	br := dst.GetPixel(63, 63)
	if tl == br {
		t.Errorf("gradient corners identical: %v", tl)
	}
}

// Each frame rewrites the direction buffer and must re-bind it before
// dispatch, so the bind epoch advances once per frame.
func TestRenderFrameRebindsPerFrame(t *testing.T) {
	r := newTestRenderer(t, Config{Width: 64, Height: 64})

	dst := render.NewSurface(64, 64)
	before := r.disp.bindEpoch
	for i := 0; i < 3; i++ {
		dir := render.Vec3{Z: 1}.RotatedY(float64(i) * 0.5)
		if err := r.RenderFrame(dir, dst); err != nil {
			t.Fatalf("RenderFrame %d: %v", i, err)
		}
	}
	if got := r.disp.bindEpoch - before; got != 3 {
		t.Errorf("bind epoch advanced %d times over 3 frames, want 3", got)
	}
}

func TestRenderFrameAfterClose(t *testing.T) {
	r := newTestRenderer(t, Config{Width: 64, Height: 64})
	r.Close()

	err := r.RenderFrame(render.Vec3{Z: 1}, render.NewSurface(64, 64))
	if !errors.Is(err, ErrClosed) {
		t.Errorf("RenderFrame after Close = %v, want ErrClosed", err)
	}

	// Close again is a no-op.
	r.Close()
}

func TestRendererInfo(t *testing.T) {
	r := newTestRenderer(t, Config{Width: 64, Height: 64})

	info := r.Info()
	if info.Name == "" {
		t.Error("device info has no name")
	}
	if info.String() == "" {
		t.Error("device info renders empty")
	}
	if r.Width() != 64 || r.Height() != 64 {
		t.Errorf("dimensions = %dx%d, want 64x64", r.Width(), r.Height())
	}
}

func TestRendererBuildLogEmptyOnSuccess(t *testing.T) {
	r := newTestRenderer(t, Config{Width: 64, Height: 64})

	if log := r.BuildLog(); log != "" {
		t.Errorf("BuildLog after successful build = %q, want empty", log)
	}

	d := NewDescriber(r)
	if got := d.Describe(StatusSuccess); got != "Success" {
		t.Errorf("Describe(success) = %q", got)
	}
	if got := d.Describe(StatusBuildProgramFailure); got != "Program build failure" {
		t.Errorf("Describe(build failure) = %q, want fixed name when log empty", got)
	}
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/duskhall/render"
	"github.com/duskhall/render/gpu"
)

var (
	renderWidth  int
	renderHeight int
	renderFrames int
	renderScale  int
	renderOut    string
	renderKernel string
	renderStep   float64
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a frame sequence to PNG files",
	Long: `Renders a sequence of frames while panning the camera around the
vertical axis and writes each frame as a PNG into the output directory.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 320, "Frame width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 200, "Frame height in pixels")
	renderCmd.Flags().IntVar(&renderFrames, "frames", 8, "Number of frames to render")
	renderCmd.Flags().IntVar(&renderScale, "scale", 1, "Integer upscale factor for the saved PNGs")
	renderCmd.Flags().StringVar(&renderOut, "out", "frames", "Output directory")
	renderCmd.Flags().StringVar(&renderKernel, "kernel", gpu.KernelRayCast,
		"Kernel entry point (rayCast or test)")
	renderCmd.Flags().Float64Var(&renderStep, "angle-step", 0.2,
		"Camera rotation per frame in radians")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	r, err := gpu.New(gpu.Config{
		Width:      renderWidth,
		Height:     renderHeight,
		EntryPoint: renderKernel,
	})
	if err != nil {
		return describeFailure(err)
	}
	defer r.Close()
	slog.Info("rendering", "device", r.Info().Name,
		"size", fmt.Sprintf("%dx%d", renderWidth, renderHeight))

	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return err
	}

	frame := render.NewSurface(renderWidth, renderHeight)
	var upscaled *render.Surface
	if renderScale > 1 {
		upscaled = render.NewSurface(renderWidth*renderScale, renderHeight*renderScale)
	}

	start := time.Now()
	for i := 0; i < renderFrames; i++ {
		dir := render.Vec3{Z: 1}.RotatedY(float64(i) * renderStep)
		if err := r.RenderFrame(dir, frame); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		out := frame
		if upscaled != nil {
			frame.ScaleTo(upscaled)
			out = upscaled
		}
		path := filepath.Join(renderOut, fmt.Sprintf("frame_%03d.png", i))
		if err := out.SavePNG(path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	elapsed := time.Since(start)
	slog.Info("done", "frames", renderFrames, "elapsed", elapsed,
		"per_frame", elapsed/time.Duration(renderFrames))
	return nil
}

// describeFailure decorates a renderer startup error with the matching
// device status diagnostic.
func describeFailure(err error) error {
	var be *gpu.BuildError
	if errors.As(err, &be) {
		d := gpu.NewDescriber(be)
		return fmt.Errorf("%s: %w", d.Describe(gpu.StatusBuildProgramFailure), err)
	}
	switch {
	case errors.Is(err, gpu.ErrNoBackend):
		return fmt.Errorf("%s: %w", gpu.StatusPlatformNotFound, err)
	case errors.Is(err, gpu.ErrNoGPUDevice):
		return fmt.Errorf("%s: %w", gpu.StatusDeviceNotFound, err)
	}
	return err
}

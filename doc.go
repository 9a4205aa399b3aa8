// Package render is the rendering core of the Duskhall engine, a
// reconstruction of a mid-90s first-person role-playing game.
//
// # Overview
//
// The engine draws each frame with a ray-casting style compute kernel that
// runs on the GPU. This package provides the host-side pieces of that
// pipeline: the frame surface the renderer writes into, the camera direction
// type streamed to the device every frame, and integration hooks for sharing
// a GPU device with a host application.
//
// The GPU bridge itself (device discovery, kernel compilation, buffer
// management, per-frame dispatch) lives in the gpu subpackage:
//
//	import "github.com/duskhall/render/gpu"
//
//	r, err := gpu.New(gpu.Config{Width: 320, Height: 200})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	dst := render.NewSurface(320, 200)
//	if err := r.RenderFrame(render.Vec3{Z: -1}, dst); err != nil {
//	    log.Fatal(err)
//	}
//	dst.SavePNG("frame.png")
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left of the frame surface
//   - X increases right, Y increases down
//   - The camera direction is a right-handed world-space vector
//
// # Concurrency
//
// All device interaction is single-threaded: one command queue, strict
// submit-then-wait per frame. See the gpu package documentation.
package render

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"
)

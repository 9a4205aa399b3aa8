// Package gpu drives the compute kernel that shades the game view.
//
// The package owns the full device lifecycle: backend probe and adapter
// selection, kernel compilation through naga, buffer allocation, and the
// per-frame submit-then-wait cycle that fills a host Surface with pixels.
//
// All errors reported here are fatal. The renderer holds no recovery
// paths: a failed device call leaves the Renderer unusable and the
// caller is expected to tear it down and exit.
//
// A Renderer is single-threaded by contract. Frame submission happens on
// one in-order queue and the package performs no internal locking beyond
// guarding Close against a concurrent RenderFrame.
package gpu

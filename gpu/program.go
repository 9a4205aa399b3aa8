package gpu

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
	"github.com/gogpu/wgpu/hal"
)

//go:embed kernels/raycast.wgsl
var raycastKernelSource string

// Kernel entry point names resolved from the compiled program.
const (
	// KernelRayCast is the production kernel that shades the view.
	KernelRayCast = "rayCast"

	// KernelTest is the debug kernel that writes a coordinate gradient.
	KernelTest = "test"
)

// ErrEntryPointNotFound is returned when a requested kernel name is not
// an entry point of the compiled program.
var ErrEntryPointNotFound = errors.New("gpu: kernel entry point not found")

// BuildError reports a failed kernel compilation. Log carries the
// compiler diagnostics verbatim and is never empty.
type BuildError struct {
	Stage string // "parse", "lower", "validate" or "codegen"
	Log   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("gpu: kernel build failed at %s:\n%s", e.Stage, e.Log)
}

// BuildLog returns the compiler diagnostics.
func (e *BuildError) BuildLog() string { return e.Log }

// kernelPreamble renders the screen-dimension constants prepended to
// the kernel source. The aspect ratio carries an explicit f32 suffix so
// the constant can never be misread as a double.
func kernelPreamble(width, height int) string {
	ratio := strconv.FormatFloat(float64(width)/float64(height), 'f', -1, 32)
	if !strings.ContainsAny(ratio, ".eE") {
		ratio += ".0"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "const SCREEN_WIDTH: i32 = %d;\n", width)
	fmt.Fprintf(&b, "const SCREEN_HEIGHT: i32 = %d;\n", height)
	fmt.Fprintf(&b, "const ASPECT_RATIO: f32 = %sf;\n", ratio)
	return b.String()
}

// compileKernel runs the WGSL source through naga and returns SPIR-V
// words plus the workgroup size of every requested compute entry point.
// Any compiler failure is reported as *BuildError.
func compileKernel(source string, entryPoints []string) ([]uint32, map[string][3]uint32, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, nil, &BuildError{Stage: "parse", Log: err.Error()}
	}

	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, nil, &BuildError{Stage: "lower", Log: err.Error()}
	}

	validationErrors, err := naga.Validate(module)
	if err != nil {
		return nil, nil, &BuildError{Stage: "validate", Log: err.Error()}
	}
	if len(validationErrors) > 0 {
		var log strings.Builder
		for i := range validationErrors {
			if i > 0 {
				log.WriteByte('\n')
			}
			log.WriteString(validationErrors[i].Error())
		}
		return nil, nil, &BuildError{Stage: "validate", Log: log.String()}
	}

	workgroups := make(map[string][3]uint32, len(entryPoints))
	for _, name := range entryPoints {
		ep := findEntryPoint(module, name)
		if ep == nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrEntryPointNotFound, name)
		}
		workgroups[name] = ep.Workgroup
	}

	spirvBytes, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return nil, nil, &BuildError{Stage: "codegen", Log: err.Error()}
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, workgroups, nil
}

func findEntryPoint(module *ir.Module, name string) *ir.EntryPoint {
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		if ep.Name == name && ep.Stage == ir.StageCompute {
			return ep
		}
	}
	return nil
}

// Program is a compiled kernel program bound to one device and one
// frame size. It owns the shader module, the layouts and one compute
// pipeline per entry point. Programs are immutable after build; a size
// change means building a fresh Program.
type Program struct {
	device     hal.Device
	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipelines  map[string]hal.ComputePipeline
	workgroups map[string][3]uint32
	buildLog   string
}

// buildProgram compiles the embedded kernel source for the given frame
// dimensions and creates device objects for every entry point. On any
// failure all partially created objects are destroyed and the device is
// left untouched.
func buildProgram(device hal.Device, width, height int, entryPoints []string) (*Program, error) {
	source := kernelPreamble(width, height) + raycastKernelSource

	code, workgroups, err := compileKernel(source, entryPoints)
	if err != nil {
		return nil, err
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "raycast_kernel",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create shader module: %w", err)
	}

	p := &Program{
		device:     device,
		module:     module,
		pipelines:  make(map[string]hal.ComputePipeline, len(entryPoints)),
		workgroups: workgroups,
	}

	p.bindLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "raycast_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("gpu: create bind group layout: %w", err)
	}

	p.pipeLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "raycast_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("gpu: create pipeline layout: %w", err)
	}

	for _, name := range entryPoints {
		pipeline, err := device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
			Label:   "raycast_" + name,
			Layout:  p.pipeLayout,
			Compute: hal.ComputeState{Module: p.module, EntryPoint: name},
		})
		if err != nil {
			p.destroy()
			return nil, fmt.Errorf("gpu: create pipeline %q: %w", name, err)
		}
		p.pipelines[name] = pipeline
	}

	slogger().Debug("kernel program built",
		"entry_points", len(entryPoints), "spirv_words", len(code))
	return p, nil
}

// pipeline returns the compute pipeline for the named entry point.
func (p *Program) pipeline(name string) (hal.ComputePipeline, error) {
	pl, ok := p.pipelines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEntryPointNotFound, name)
	}
	return pl, nil
}

// workgroup returns the workgroup size of the named entry point.
func (p *Program) workgroup(name string) [3]uint32 {
	if wg, ok := p.workgroups[name]; ok {
		return wg
	}
	return [3]uint32{1, 1, 1}
}

// BuildLog returns the compiler log of the most recent build. Empty
// when the build succeeded.
func (p *Program) BuildLog() string { return p.buildLog }

// destroy releases all device objects in reverse creation order.
func (p *Program) destroy() {
	if p.device == nil {
		return
	}
	for _, pl := range p.pipelines {
		if pl != nil {
			p.device.DestroyComputePipeline(pl)
		}
	}
	p.pipelines = nil
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		p.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

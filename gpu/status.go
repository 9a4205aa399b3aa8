package gpu

import "fmt"

// Status is a numeric device status code as reported by the compute
// runtime. Zero is success; every failure is a distinct negative value.
type Status int32

// Runtime statuses.
const (
	StatusSuccess                  Status = 0
	StatusDeviceNotFound           Status = -1
	StatusDeviceNotAvailable       Status = -2
	StatusCompilerNotAvailable     Status = -3
	StatusMemObjectAllocFailure    Status = -4
	StatusOutOfResources           Status = -5
	StatusOutOfHostMemory          Status = -6
	StatusProfilingInfoUnavailable Status = -7
	StatusMemCopyOverlap           Status = -8
	StatusImageFormatMismatch      Status = -9
	StatusImageFormatUnsupported   Status = -10
	StatusBuildProgramFailure      Status = -11
	StatusMapFailure               Status = -12
	StatusMisalignedSubBuffer      Status = -13
	StatusExecStatusError          Status = -14
	StatusCompileProgramFailure    Status = -15
	StatusLinkerNotAvailable       Status = -16
	StatusLinkProgramFailure       Status = -17
	StatusDevicePartitionFailed    Status = -18
	StatusKernelArgInfoUnavailable Status = -19
)

// Validation statuses.
const (
	StatusInvalidValue               Status = -30
	StatusInvalidDeviceType          Status = -31
	StatusInvalidPlatform            Status = -32
	StatusInvalidDevice              Status = -33
	StatusInvalidContext             Status = -34
	StatusInvalidQueueProperties     Status = -35
	StatusInvalidCommandQueue        Status = -36
	StatusInvalidHostPtr             Status = -37
	StatusInvalidMemObject           Status = -38
	StatusInvalidImageFormat         Status = -39
	StatusInvalidImageSize           Status = -40
	StatusInvalidSampler             Status = -41
	StatusInvalidBinary              Status = -42
	StatusInvalidBuildOptions        Status = -43
	StatusInvalidProgram             Status = -44
	StatusInvalidProgramExecutable   Status = -45
	StatusInvalidKernelName          Status = -46
	StatusInvalidKernelDefinition    Status = -47
	StatusInvalidKernel              Status = -48
	StatusInvalidArgIndex            Status = -49
	StatusInvalidArgValue            Status = -50
	StatusInvalidArgSize             Status = -51
	StatusInvalidKernelArgs          Status = -52
	StatusInvalidWorkDimension       Status = -53
	StatusInvalidWorkGroupSize       Status = -54
	StatusInvalidWorkItemSize        Status = -55
	StatusInvalidGlobalOffset        Status = -56
	StatusInvalidEventWaitList       Status = -57
	StatusInvalidEvent               Status = -58
	StatusInvalidOperation           Status = -59
	StatusInvalidGLObject            Status = -60
	StatusInvalidBufferSize          Status = -61
	StatusInvalidMipLevel            Status = -62
	StatusInvalidGlobalWorkSize      Status = -63
	StatusInvalidProperty            Status = -64
	StatusInvalidImageDescriptor     Status = -65
	StatusInvalidCompilerOptions     Status = -66
	StatusInvalidLinkerOptions       Status = -67
	StatusInvalidDevicePartition     Status = -68
)

// Vendor extension statuses.
const (
	StatusInvalidShareGroupRef Status = -1000
	StatusPlatformNotFound     Status = -1001
	StatusDeviceNotFoundExt    Status = -1002
	StatusDeviceNotSelected    Status = -1003
	StatusInteropSharingFailed Status = -1004
)

// statusNames maps every known status code to its stable diagnostic
// name. Initialized once, read-only afterwards.
var statusNames = map[Status]string{
	StatusSuccess:                  "Success",
	StatusDeviceNotFound:           "Device not found",
	StatusDeviceNotAvailable:       "Device not available",
	StatusCompilerNotAvailable:     "Compiler not available",
	StatusMemObjectAllocFailure:    "Memory object allocation failure",
	StatusOutOfResources:           "Out of resources",
	StatusOutOfHostMemory:          "Out of host memory",
	StatusProfilingInfoUnavailable: "Profiling information not available",
	StatusMemCopyOverlap:           "Memory copy overlap",
	StatusImageFormatMismatch:      "Image format mismatch",
	StatusImageFormatUnsupported:   "Image format not supported",
	StatusBuildProgramFailure:      "Program build failure",
	StatusMapFailure:               "Map failure",
	StatusMisalignedSubBuffer:      "Misaligned sub-buffer offset",
	StatusExecStatusError:          "Execution status error for events in wait list",
	StatusCompileProgramFailure:    "Program compile failure",
	StatusLinkerNotAvailable:       "Linker not available",
	StatusLinkProgramFailure:       "Program link failure",
	StatusDevicePartitionFailed:    "Device partition failed",
	StatusKernelArgInfoUnavailable: "Kernel argument info not available",

	StatusInvalidValue:             "Invalid value",
	StatusInvalidDeviceType:        "Invalid device type",
	StatusInvalidPlatform:          "Invalid platform",
	StatusInvalidDevice:            "Invalid device",
	StatusInvalidContext:           "Invalid context",
	StatusInvalidQueueProperties:   "Invalid queue properties",
	StatusInvalidCommandQueue:      "Invalid command queue",
	StatusInvalidHostPtr:           "Invalid host pointer",
	StatusInvalidMemObject:         "Invalid memory object",
	StatusInvalidImageFormat:       "Invalid image format descriptor",
	StatusInvalidImageSize:         "Invalid image size",
	StatusInvalidSampler:           "Invalid sampler",
	StatusInvalidBinary:            "Invalid binary",
	StatusInvalidBuildOptions:      "Invalid build options",
	StatusInvalidProgram:           "Invalid program",
	StatusInvalidProgramExecutable: "Invalid program executable",
	StatusInvalidKernelName:        "Invalid kernel name",
	StatusInvalidKernelDefinition:  "Invalid kernel definition",
	StatusInvalidKernel:            "Invalid kernel",
	StatusInvalidArgIndex:          "Invalid argument index",
	StatusInvalidArgValue:          "Invalid argument value",
	StatusInvalidArgSize:           "Invalid argument size",
	StatusInvalidKernelArgs:        "Invalid kernel arguments",
	StatusInvalidWorkDimension:     "Invalid work dimension",
	StatusInvalidWorkGroupSize:     "Invalid work group size",
	StatusInvalidWorkItemSize:      "Invalid work item size",
	StatusInvalidGlobalOffset:      "Invalid global offset",
	StatusInvalidEventWaitList:     "Invalid event wait list",
	StatusInvalidEvent:             "Invalid event",
	StatusInvalidOperation:         "Invalid operation",
	StatusInvalidGLObject:          "Invalid GL object",
	StatusInvalidBufferSize:        "Invalid buffer size",
	StatusInvalidMipLevel:          "Invalid mip level",
	StatusInvalidGlobalWorkSize:    "Invalid global work size",
	StatusInvalidProperty:          "Invalid property",
	StatusInvalidImageDescriptor:   "Invalid image descriptor",
	StatusInvalidCompilerOptions:   "Invalid compiler options",
	StatusInvalidLinkerOptions:     "Invalid linker options",
	StatusInvalidDevicePartition:   "Invalid device partition count",

	StatusInvalidShareGroupRef: "Invalid share group reference",
	StatusPlatformNotFound:     "Platform not found",
	StatusDeviceNotFoundExt:    "Device not found (extension)",
	StatusDeviceNotSelected:    "Device not selected",
	StatusInteropSharingFailed: "Device interop sharing failed",
}

// String returns the stable diagnostic name for s. Unknown codes are
// reported with the raw number embedded so no status is ever silently
// swallowed.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Unknown status %d", int32(s))
}

// BuildLogger supplies the most recent kernel compiler log. Program,
// BuildError and Renderer all implement it.
type BuildLogger interface {
	BuildLog() string
}

// Describer renders status codes into human-readable diagnostics. The
// build-failure code is special: when a log source is attached, the
// live compiler output is returned instead of the fixed name.
type Describer struct {
	source BuildLogger
}

// NewDescriber returns a Describer backed by source. A nil source is
// allowed; build failures then fall back to the fixed name.
func NewDescriber(source BuildLogger) *Describer {
	return &Describer{source: source}
}

// Describe returns the diagnostic text for s.
func (d *Describer) Describe(s Status) string {
	if s == StatusBuildProgramFailure && d.source != nil {
		if log := d.source.BuildLog(); log != "" {
			return log
		}
	}
	return s.String()
}

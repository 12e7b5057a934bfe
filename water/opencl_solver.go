//go:build opencl

package water

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// OpenCLSolver steps a field on an OpenCL device in single precision. Each
// call uploads the host nodes, runs the requested ticks and reads them back,
// so impulses applied between calls are always seen.
type OpenCLSolver struct {
	context         *cl.Context
	queue           *cl.CommandQueue
	program         *cl.Program
	spreadKernel    *cl.Kernel
	integrateKernel *cl.Kernel
	heightBuf       *cl.MemObject
	scratchBuf      *cl.MemObject
	velocityBuf     *cl.MemObject
	accelBuf        *cl.MemObject
	count           int
	deviceName      string

	heights  []float32
	velocity []float32
	accel    []float32
}

const surfaceKernelSource = `__kernel void spread_step(
    const int count,
    const float spread,
    __global const float* heights,
    __global float* next_heights,
    __global float* velocity)
{
    int i = get_global_id(0);
    if (i >= count) {
        return;
    }
    float y = heights[i];
    float delta = 0.0f;
    if (i > 0) {
        delta += spread * (heights[i - 1] - y);
    }
    if (i < count - 1) {
        delta += spread * (heights[i + 1] - y);
    }
    velocity[i] += delta;
    next_heights[i] = y + delta;
}

__kernel void integrate_step(
    const int count,
    const float spring,
    const float damping,
    const float mass,
    const float dt,
    __global float* heights,
    __global float* velocity,
    __global float* accel)
{
    int i = get_global_id(0);
    if (i >= count) {
        return;
    }
    float force = spring * heights[i] + velocity[i] * damping;
    float a = -force / mass;
    accel[i] = a;
    float step = dt > 0.0f ? dt : 1.0f;
    velocity[i] += a * step;
    heights[i] += velocity[i] * step;
}`

// NewOpenCLSolver compiles the strip kernels for the first GPU found, falling
// back to a CPU device.
func NewOpenCLSolver(nodeCount int) (*OpenCLSolver, error) {
	if nodeCount < 2 {
		return nil, fmt.Errorf("OpenCL solver needs at least 2 nodes, got %d", nodeCount)
	}
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	s := &OpenCLSolver{
		count:      nodeCount,
		deviceName: device.Name(),
		heights:    make([]float32, nodeCount),
		velocity:   make([]float32, nodeCount),
		accel:      make([]float32, nodeCount),
	}
	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{surfaceKernelSource}); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.spreadKernel, err = s.program.CreateKernel("spread_step"); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating spread kernel: %w", err)
	}
	if s.integrateKernel, err = s.program.CreateKernel("integrate_step"); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating integrate kernel: %w", err)
	}
	byteSize := nodeCount * int(unsafe.Sizeof(float32(0)))
	for _, buf := range []**cl.MemObject{&s.heightBuf, &s.scratchBuf, &s.velocityBuf, &s.accelBuf} {
		if *buf, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
			s.Close()
			return nil, fmt.Errorf("allocating node buffer: %w", err)
		}
	}
	return s, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// Step advances f by steps ticks on the device.
func (s *OpenCLSolver) Step(f *Field, steps int) error {
	if steps <= 0 {
		return nil
	}
	if f.Len() != s.count {
		return fmt.Errorf("field has %d nodes, solver was built for %d", f.Len(), s.count)
	}
	f.drainImpulses()
	for i := range f.nodes {
		s.heights[i] = float32(f.nodes[i].Y)
		s.velocity[i] = float32(f.nodes[i].Velocity)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.heightBuf, false, 0, s.heights, nil); err != nil {
		return fmt.Errorf("writing height buffer: %w", err)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.velocityBuf, false, 0, s.velocity, nil); err != nil {
		return fmt.Errorf("writing velocity buffer: %w", err)
	}

	cfg := f.cfg
	count := int32(s.count)
	if err := s.spreadKernel.SetArgs(count, float32(cfg.Spread), s.heightBuf, s.scratchBuf, s.velocityBuf); err != nil {
		return fmt.Errorf("setting spread kernel arguments: %w", err)
	}
	if err := s.integrateKernel.SetArgs(
		count,
		float32(cfg.SpringConstant),
		float32(cfg.Damping),
		float32(cfg.NodeMass),
		float32(cfg.TimeStep),
		s.heightBuf,
		s.velocityBuf,
		s.accelBuf,
	); err != nil {
		return fmt.Errorf("setting integrate kernel arguments: %w", err)
	}

	global := []int{s.count}
	for step := 0; step < steps; step++ {
		for j := 0; j < cfg.Iterations; j++ {
			if _, err := s.queue.EnqueueNDRangeKernel(s.spreadKernel, nil, global, nil, nil); err != nil {
				return fmt.Errorf("enqueueing spread kernel: %w", err)
			}
			s.heightBuf, s.scratchBuf = s.scratchBuf, s.heightBuf
			if err := s.spreadKernel.SetArgBuffer(2, s.heightBuf); err != nil {
				return fmt.Errorf("binding heights: %w", err)
			}
			if err := s.spreadKernel.SetArgBuffer(3, s.scratchBuf); err != nil {
				return fmt.Errorf("binding scratch heights: %w", err)
			}
		}
		if err := s.integrateKernel.SetArgBuffer(5, s.heightBuf); err != nil {
			return fmt.Errorf("binding integrate heights: %w", err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.integrateKernel, nil, global, nil, nil); err != nil {
			return fmt.Errorf("enqueueing integrate kernel: %w", err)
		}
	}

	if _, err := s.queue.EnqueueReadBufferFloat32(s.heightBuf, true, 0, s.heights, nil); err != nil {
		return fmt.Errorf("reading height buffer: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.velocityBuf, true, 0, s.velocity, nil); err != nil {
		return fmt.Errorf("reading velocity buffer: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.accelBuf, true, 0, s.accel, nil); err != nil {
		return fmt.Errorf("reading acceleration buffer: %w", err)
	}
	for i := range f.nodes {
		f.nodes[i].Y = float64(s.heights[i])
		f.nodes[i].Velocity = float64(s.velocity[i])
		f.nodes[i].Acceleration = float64(s.accel[i])
	}
	f.tick += uint64(steps)
	return nil
}

// Close releases every device object still held.
func (s *OpenCLSolver) Close() {
	for _, buf := range []**cl.MemObject{&s.accelBuf, &s.velocityBuf, &s.scratchBuf, &s.heightBuf} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
	if s.integrateKernel != nil {
		s.integrateKernel.Release()
		s.integrateKernel = nil
	}
	if s.spreadKernel != nil {
		s.spreadKernel.Release()
		s.spreadKernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}

func (s *OpenCLSolver) DeviceName() string {
	return s.deviceName
}

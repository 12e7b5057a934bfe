//go:build !opencl

package water

import "errors"

// OpenCLSolver is unavailable in builds without the opencl tag.
type OpenCLSolver struct{}

// NewOpenCLSolver always fails without the opencl tag.
func NewOpenCLSolver(nodeCount int) (*OpenCLSolver, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (s *OpenCLSolver) Step(f *Field, steps int) error {
	return errors.New("OpenCL solver unavailable")
}

func (s *OpenCLSolver) Close() {}

func (s *OpenCLSolver) DeviceName() string { return "" }

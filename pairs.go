package dlf

import (
	"fmt"
)

// Kernel identifies the integral-transform kernel of a transform pair
// and names the matching coefficient array of a designed filter.
type Kernel string

// The closed set of supported kernels.
const (
	// KernelJ0 is the Hankel transform of order zero.
	KernelJ0 Kernel = "j0"

	// KernelJ1 is the Hankel transform of order one.
	KernelJ1 Kernel = "j1"

	// KernelJ2 is the joint J0/J1 kernel, which yields both kernel
	// values per argument. It is valid for goodness checks only and
	// cannot be inverted, since an inversion produces exactly one
	// coefficient array per pair.
	KernelJ2 Kernel = "j2"

	// KernelSin is the Fourier sine transform.
	KernelSin Kernel = "sin"

	// KernelCos is the Fourier cosine transform.
	KernelCos Kernel = "cos"
)

func (k Kernel) valid() bool {
	switch k {
	case KernelJ0, KernelJ1, KernelJ2, KernelSin, KernelCos:
		return true
	}
	return false
}

// TransformPair is a kernel function together with its known
// transform, used to calibrate or validate a filter. LHS evaluates the
// kernel at wavenumber-like arguments, RHS the transform at spatial
// arguments; both operate on batches and return one value per input
// point. Pairs are owned by the caller; the designer only reads them.
//
// The joint KernelJ2 pair additionally implements JointPair and
// returns nil from LHS.
type TransformPair interface {
	// Kernel returns the pair's kernel tag.
	Kernel() Kernel

	// LHS evaluates the kernel function at the given arguments.
	LHS(x []float64) []complex128

	// RHS evaluates the known transform at the given arguments.
	RHS(r []float64) []complex128
}

// JointPair is the joint J0/J1 transform pair: its kernel function
// produces the two related kernel values simultaneously.
type JointPair interface {
	TransformPair

	// JointLHS evaluates both kernel components at the given
	// arguments.
	JointLHS(x []float64) (j0, j1 []complex128)
}

// FieldEvaluator evaluates a kernel or transform over a batch of
// points, returning one complex field value per point. External
// forward-modelling routines (for instance an electromagnetic
// modeller computing the response of a layered medium for a given
// source/receiver geometry and frequency) are plugged in through this
// signature to form numerical transform pairs.
type FieldEvaluator func(points []float64) []complex128

// NewAnalytic builds a transform pair from pointwise closed-form
// kernel and transform functions. The joint kernel cannot be built
// this way; use NewJoint.
func NewAnalytic(kernel Kernel, lhs, rhs func(x float64) complex128) (TransformPair, error) {
	if !kernel.valid() || kernel == KernelJ2 {
		return nil, fmt.Errorf("%w: kernel %q is not valid for an analytic pair", ErrInvalidTransform, kernel)
	}
	return &analyticPair{kernel: kernel, lhs: lhs, rhs: rhs}, nil
}

// NewNumeric builds a transform pair from batch field evaluators, for
// example responses of an external forward-modelling routine. The
// joint kernel cannot be built this way; use NewJoint.
func NewNumeric(kernel Kernel, lhs, rhs FieldEvaluator) (TransformPair, error) {
	if !kernel.valid() || kernel == KernelJ2 {
		return nil, fmt.Errorf("%w: kernel %q is not valid for a numeric pair", ErrInvalidTransform, kernel)
	}
	return &numericPair{kernel: kernel, lhs: lhs, rhs: rhs}, nil
}

// NewJoint builds the joint J0/J1 check pair from batch evaluators of
// the two kernel components and the combined transform. Joint pairs
// are check-only: a filter scored against one needs both j0 and j1
// coefficient arrays.
func NewJoint(lhsJ0, lhsJ1, rhs FieldEvaluator) TransformPair {
	return &jointPair{lhs0: lhsJ0, lhs1: lhsJ1, rhs: rhs}
}

type analyticPair struct {
	kernel Kernel
	lhs    func(float64) complex128
	rhs    func(float64) complex128
}

func (p *analyticPair) Kernel() Kernel { return p.kernel }

func (p *analyticPair) LHS(x []float64) []complex128 { return evalPointwise(p.lhs, x) }

func (p *analyticPair) RHS(r []float64) []complex128 { return evalPointwise(p.rhs, r) }

type numericPair struct {
	kernel Kernel
	lhs    FieldEvaluator
	rhs    FieldEvaluator
}

func (p *numericPair) Kernel() Kernel { return p.kernel }

func (p *numericPair) LHS(x []float64) []complex128 { return p.lhs(x) }

func (p *numericPair) RHS(r []float64) []complex128 { return p.rhs(r) }

type jointPair struct {
	lhs0 FieldEvaluator
	lhs1 FieldEvaluator
	rhs  FieldEvaluator
}

func (p *jointPair) Kernel() Kernel { return KernelJ2 }

// LHS is unused for the joint pair; the two kernel components are
// produced by JointLHS.
func (p *jointPair) LHS(x []float64) []complex128 { return nil }

func (p *jointPair) RHS(r []float64) []complex128 { return p.rhs(r) }

func (p *jointPair) JointLHS(x []float64) (j0, j1 []complex128) {
	return p.lhs0(x), p.lhs1(x)
}

func evalPointwise(f func(float64) complex128, x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = f(v)
	}
	return out
}

// Package tensor implements the in-memory numeric backend for the Aria
// autodiff engine: a dense, row-major, float64 N-dimensional array with
// NumPy-style broadcasting, reductions, shape manipulation and the
// convolution lowering helpers (im2col/col2im).
//
// Arrays are treated as immutable by every operation in this package: each
// operation allocates a fresh result, so an Array may be read-shared freely.
// The only exported mutators (AddAt, scatter accumulation) are documented as
// such and are used on freshly allocated buffers.
package tensor

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// Array is a dense N-dimensional float64 buffer with row-major layout.
type Array struct {
	Data    []float64
	shape   Shape
	strides []int
}

// New creates an Array from a flat data slice and a shape.
// The data length must match the number of elements the shape describes.
func New(data []float64, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "tensor.New: invalid shape")
	}
	if len(data) != shape.NumElements() {
		return nil, errors.Errorf("tensor.New: data length %d does not match shape %s (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Array{Data: data, shape: shape.Clone(), strides: shape.ComputeStrides()}, nil
}

// FromSlice creates an Array from a flat slice, panicking on mismatch.
// Intended for literals in tests and examples.
func FromSlice(data []float64, shape ...int) *Array {
	a, err := New(data, Shape(shape))
	if err != nil {
		panic(err)
	}
	return a
}

// Scalar creates a rank-0 Array holding a single value.
func Scalar(v float64) *Array {
	return &Array{Data: []float64{v}, shape: Shape{}, strides: []int{}}
}

// Zeros creates an Array of the given shape filled with zeros.
func Zeros(shape Shape) *Array {
	return &Array{Data: make([]float64, shape.NumElements()), shape: shape.Clone(), strides: shape.ComputeStrides()}
}

// Ones creates an Array of the given shape filled with ones.
func Ones(shape Shape) *Array {
	return Full(shape, 1)
}

// Full creates an Array of the given shape filled with v.
func Full(shape Shape, v float64) *Array {
	a := Zeros(shape)
	for i := range a.Data {
		a.Data[i] = v
	}
	return a
}

// ZerosLike creates a zero-filled Array with the same shape as a.
func ZerosLike(a *Array) *Array {
	return Zeros(a.shape)
}

// OnesLike creates a one-filled Array with the same shape as a.
func OnesLike(a *Array) *Array {
	return Full(a.shape, 1)
}

// Rand creates an Array with uniform random values in [0, 1).
func Rand(shape Shape) *Array {
	a := Zeros(shape)
	for i := range a.Data {
		a.Data[i] = rand.Float64()
	}
	return a
}

// Randn creates an Array with standard normal random values.
func Randn(shape Shape) *Array {
	a := Zeros(shape)
	for i := range a.Data {
		a.Data[i] = rand.NormFloat64()
	}
	return a
}

// Arange creates a 1-D Array holding [start, stop) with step 1.
func Arange(start, stop int) *Array {
	n := stop - start
	if n < 0 {
		n = 0
	}
	a := Zeros(Shape{n})
	for i := 0; i < n; i++ {
		a.Data[i] = float64(start + i)
	}
	return a
}

// Eye creates an n×n identity matrix.
func Eye(n int) *Array {
	a := Zeros(Shape{n, n})
	for i := 0; i < n; i++ {
		a.Data[i*n+i] = 1
	}
	return a
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Strides returns the array's row-major strides.
func (a *Array) Strides() []int {
	return a.strides
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Size returns the total number of elements.
func (a *Array) Size() int {
	return len(a.Data)
}

// At reads the element at the given multi-dimensional index.
func (a *Array) At(idx ...int) float64 {
	return a.Data[a.flatIndex(idx)]
}

// Set writes the element at the given multi-dimensional index.
func (a *Array) Set(v float64, idx ...int) {
	a.Data[a.flatIndex(idx)] = v
}

// Item returns the value of a single-element array.
func (a *Array) Item() float64 {
	if len(a.Data) != 1 {
		panic(fmt.Sprintf("tensor: Item on array of %d elements", len(a.Data)))
	}
	return a.Data[0]
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.Data))
	copy(data, a.Data)
	return &Array{Data: data, shape: a.shape.Clone(), strides: a.shape.ComputeStrides()}
}

// ApproxEqual reports whether two arrays have the same shape and all
// elements within tol of each other.
func (a *Array) ApproxEqual(b *Array, tol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	for i := range a.Data {
		d := a.Data[i] - b.Data[i]
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

// String renders the array for debugging.
func (a *Array) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Array%s[", a.shape)
	limit := len(a.Data)
	truncated := false
	if limit > 16 {
		limit = 16
		truncated = true
	}
	for i := 0; i < limit; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%g", a.Data[i])
	}
	if truncated {
		sb.WriteString(" ...")
	}
	sb.WriteString("]")
	return sb.String()
}

func (a *Array) flatIndex(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("tensor: index rank %d does not match array rank %d", len(idx), len(a.shape)))
	}
	flat := 0
	for i, ix := range idx {
		if ix < 0 || ix >= a.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d (size %d)", ix, i, a.shape[i]))
		}
		flat += ix * a.strides[i]
	}
	return flat
}

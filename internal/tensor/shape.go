package tensor

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// Shape represents the dimensions of an array.
//
// A zero-length Shape is a scalar.
type Shape []int

// NumElements returns the total number of elements in the array.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks that all dimensions are strictly positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// strides[i] is the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// String returns the shape as "(d0, d1, ...)".
func (s Shape) String() string {
	out := "("
	for i, dim := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", dim)
	}
	return out + ")"
}

// BroadcastShapes resolves two shapes under NumPy broadcasting rules.
//
// Dimensions are compared right to left; they are compatible when equal or
// when one of them is 1. Missing leading dimensions are treated as 1.
// Panics when the shapes are incompatible.
func BroadcastShapes(a, b Shape) Shape {
	rank := len(a)
	if len(b) > rank {
		rank = len(b)
	}
	out := make(Shape, rank)
	for i := 0; i < rank; i++ {
		da, db := 1, 1
		if i >= rank-len(a) {
			da = a[i-(rank-len(a))]
		}
		if i >= rank-len(b) {
			db = b[i-(rank-len(b))]
		}
		switch {
		case da == db:
			out[i] = da
		case da == 1:
			out[i] = db
		case db == 1:
			out[i] = da
		default:
			exceptions.Panicf("tensor: shapes %s and %s are not broadcastable", a, b)
		}
	}
	return out
}

// broadcastStrides returns the strides to iterate an array of shape s as if
// it had the broadcast target shape: broadcast dimensions get stride 0.
func broadcastStrides(s Shape, target Shape) []int {
	strides := s.ComputeStrides()
	out := make([]int, len(target))
	offset := len(target) - len(s)
	for i := range target {
		if i < offset {
			out[i] = 0
			continue
		}
		if s[i-offset] == 1 && target[i] != 1 {
			out[i] = 0
		} else {
			out[i] = strides[i-offset]
		}
	}
	return out
}

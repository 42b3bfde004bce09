// Copyright 2025 The Aria Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense n-dimensional float64 array the
// rest of Aria computes on.
//
// Arrays are created with constructors and treated as immutable by the
// math routines: every operation allocates its result.
//
// Example:
//
//	import "github.com/junsu0302/Aria/tensor"
//
//	func main() {
//	    a := tensor.FromSlice([]float64{1, 2, 3, 4}, 2, 2)
//	    b := tensor.Ones(tensor.Shape{2, 2})
//	    c := tensor.Add(a, b)
//	    fmt.Println(c)
//	}
package tensor

import (
	"github.com/junsu0302/Aria/internal/tensor"
)

// Shape describes the extent of each array dimension.
type Shape = tensor.Shape

// Array is a dense row-major float64 array.
type Array = tensor.Array

// New builds an array over data with the given shape.
func New(data []float64, shape Shape) (*Array, error) {
	return tensor.New(data, shape)
}

// FromSlice builds an array over data, panicking on an invalid shape.
func FromSlice(data []float64, shape ...int) *Array {
	return tensor.FromSlice(data, shape...)
}

// Scalar returns a zero-rank array holding v.
func Scalar(v float64) *Array {
	return tensor.Scalar(v)
}

// Zeros returns an array of the given shape filled with zeros.
func Zeros(shape Shape) *Array {
	return tensor.Zeros(shape)
}

// Ones returns an array of the given shape filled with ones.
func Ones(shape Shape) *Array {
	return tensor.Ones(shape)
}

// Full returns an array of the given shape filled with v.
func Full(shape Shape, v float64) *Array {
	return tensor.Full(shape, v)
}

// Rand returns an array of uniform random values in [0, 1).
func Rand(shape Shape) *Array {
	return tensor.Rand(shape)
}

// Randn returns an array of standard normal random values.
func Randn(shape Shape) *Array {
	return tensor.Randn(shape)
}

// Arange returns a rank-1 array of the integers [start, stop).
func Arange(start, stop int) *Array {
	return tensor.Arange(start, stop)
}

// Eye returns the n by n identity matrix.
func Eye(n int) *Array {
	return tensor.Eye(n)
}

// BroadcastShapes returns the shape two operands broadcast to.
func BroadcastShapes(a, b Shape) Shape {
	return tensor.BroadcastShapes(a, b)
}

// Add returns a + b with broadcasting.
func Add(a, b *Array) *Array { return tensor.Add(a, b) }

// Sub returns a - b with broadcasting.
func Sub(a, b *Array) *Array { return tensor.Sub(a, b) }

// Mul returns a * b with broadcasting.
func Mul(a, b *Array) *Array { return tensor.Mul(a, b) }

// Div returns a / b with broadcasting.
func Div(a, b *Array) *Array { return tensor.Div(a, b) }

// Scale returns a * s.
func Scale(a *Array, s float64) *Array { return tensor.Scale(a, s) }

// MatMul returns the matrix product of two rank-2 arrays.
func MatMul(a, b *Array) *Array { return tensor.MatMul(a, b) }

// Sum reduces a over axes; nil axes reduce everything.
func Sum(a *Array, axes []int, keepdims bool) *Array { return tensor.Sum(a, axes, keepdims) }

// Reshape returns a view-copy of a with the new shape.
func Reshape(a *Array, shape Shape) *Array { return tensor.Reshape(a, shape) }

// Transpose permutes the axes of a; nil reverses them.
func Transpose(a *Array, axes ...int) *Array { return tensor.Transpose(a, axes...) }

// BroadcastTo expands a to the given shape.
func BroadcastTo(a *Array, shape Shape) *Array { return tensor.BroadcastTo(a, shape) }

// SumTo reduces a down to the given broadcast-compatible shape.
func SumTo(a *Array, shape Shape) *Array { return tensor.SumTo(a, shape) }

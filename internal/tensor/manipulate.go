package tensor

import (
	"github.com/gomlx/exceptions"
)

// Reshape returns a view-copy of a with the new shape.
// One dimension may be -1 and is inferred from the element count.
func Reshape(a *Array, shape Shape) *Array {
	resolved := shape.Clone()
	infer := -1
	known := 1
	for i, dim := range resolved {
		if dim == -1 {
			if infer >= 0 {
				exceptions.Panicf("tensor.Reshape: at most one dimension may be -1, got %s", shape)
			}
			infer = i
			continue
		}
		known *= dim
	}
	if infer >= 0 {
		if known == 0 || a.Size()%known != 0 {
			exceptions.Panicf("tensor.Reshape: cannot infer dimension for %s from %s", shape, a.shape)
		}
		resolved[infer] = a.Size() / known
	}
	if resolved.NumElements() != a.Size() {
		exceptions.Panicf("tensor.Reshape: cannot reshape %s (%d elements) to %s", a.shape, a.Size(), shape)
	}
	out := a.Clone()
	out.shape = resolved
	out.strides = resolved.ComputeStrides()
	return out
}

// Transpose permutes the axes of a. With no axes given, the axis order is
// reversed (matrix transpose for rank 2).
func Transpose(a *Array, axes ...int) *Array {
	rank := a.Rank()
	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		exceptions.Panicf("tensor.Transpose: got %d axes for rank-%d array", len(axes), rank)
	}
	seen := make([]bool, rank)
	outShape := make(Shape, rank)
	for i, ax := range axes {
		ax = normAxis(ax, rank)
		axes[i] = ax
		if seen[ax] {
			exceptions.Panicf("tensor.Transpose: duplicate axis %d", ax)
		}
		seen[ax] = true
		outShape[i] = a.shape[ax]
	}
	out := Zeros(outShape)
	srcIdx := make([]int, rank)
	for i := range out.Data {
		rem := i
		for d := 0; d < rank; d++ {
			srcIdx[axes[d]] = rem / out.strides[d]
			rem %= out.strides[d]
		}
		flat := 0
		for d := 0; d < rank; d++ {
			flat += srcIdx[d] * a.strides[d]
		}
		out.Data[i] = a.Data[flat]
	}
	return out
}

// BroadcastTo materializes a broadcast of a to the target shape.
func BroadcastTo(a *Array, shape Shape) *Array {
	if a.shape.Equal(shape) {
		return a.Clone()
	}
	// Validate compatibility; the result of broadcasting a against the
	// target must be the target itself.
	if !BroadcastShapes(a.shape, shape).Equal(shape) {
		exceptions.Panicf("tensor.BroadcastTo: cannot broadcast %s to %s", a.shape, shape)
	}
	out := Zeros(shape)
	sa := broadcastStrides(a.shape, shape)
	for i := range out.Data {
		rem := i
		ia := 0
		for d := 0; d < len(shape); d++ {
			coord := rem / out.strides[d]
			rem %= out.strides[d]
			ia += coord * sa[d]
		}
		out.Data[i] = a.Data[ia]
	}
	return out
}

// Take gathers rows of a along axis 0 at the given indices.
func Take(a *Array, indices []int) *Array {
	if a.Rank() == 0 {
		exceptions.Panicf("tensor.Take: cannot index a scalar")
	}
	rowSize := 1
	for _, dim := range a.shape[1:] {
		rowSize *= dim
	}
	outShape := append(Shape{len(indices)}, a.shape[1:]...)
	out := Zeros(outShape)
	for i, ix := range indices {
		if ix < 0 || ix >= a.shape[0] {
			exceptions.Panicf("tensor.Take: index %d out of range for axis 0 (size %d)", ix, a.shape[0])
		}
		copy(out.Data[i*rowSize:(i+1)*rowSize], a.Data[ix*rowSize:(ix+1)*rowSize])
	}
	return out
}

// AddAt accumulates the rows of src into a along axis 0 at the given
// indices. Repeated indices accumulate. This mutates a and is only used on
// freshly allocated gradient buffers.
func AddAt(a *Array, indices []int, src *Array) {
	rowSize := 1
	for _, dim := range a.shape[1:] {
		rowSize *= dim
	}
	if src.Size() != len(indices)*rowSize {
		exceptions.Panicf("tensor.AddAt: source shape %s does not match %d rows of %s", src.Shape(), len(indices), a.shape)
	}
	for i, ix := range indices {
		if ix < 0 || ix >= a.shape[0] {
			exceptions.Panicf("tensor.AddAt: index %d out of range for axis 0 (size %d)", ix, a.shape[0])
		}
		dst := a.Data[ix*rowSize : (ix+1)*rowSize]
		row := src.Data[i*rowSize : (i+1)*rowSize]
		for j, v := range row {
			dst[j] += v
		}
	}
}

// normAxis resolves a possibly-negative axis against the rank.
func normAxis(ax, rank int) int {
	if ax < 0 {
		ax += rank
	}
	if ax < 0 || ax >= rank {
		exceptions.Panicf("tensor: axis %d out of range for rank %d", ax, rank)
	}
	return ax
}

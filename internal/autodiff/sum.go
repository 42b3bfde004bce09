package autodiff

import (
	"sort"

	"github.com/junsu0302/Aria/internal/tensor"
)

type sumOp struct {
	Base
	axes     []int // nil reduces every axis
	keepdims bool
	xShape   tensor.Shape
}

func (op *sumOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	op.xShape = xs[0].Shape()
	return []*tensor.Array{tensor.Sum(xs[0], op.axes, op.keepdims)}
}

func (op *sumOp) Backward(gys ...*Variable) []*Variable {
	gy := reshapeSumBackward(gys[0], op.xShape, op.axes, op.keepdims)
	return []*Variable{BroadcastTo(gy, op.xShape)}
}

// Sum reduces x by addition over the given axes (nil means all axes).
func Sum(x any, axes []int, keepdims bool) *Variable {
	return apply(&sumOp{axes: axes, keepdims: keepdims}, x)
}

// SumAll reduces x to a scalar.
func SumAll(x any) *Variable {
	return Sum(x, nil, false)
}

// reshapeSumBackward reinserts the reduced axes as size-1 dimensions so the
// gradient becomes broadcastable back to the input shape.
func reshapeSumBackward(gy *Variable, xShape tensor.Shape, axes []int, keepdims bool) *Variable {
	ndim := xShape.Rank()
	if ndim == 0 || axes == nil || keepdims {
		// gy already has a broadcast-compatible shape.
		return gy
	}

	actual := make([]int, 0, len(axes))
	for _, a := range axes {
		if a < 0 {
			a += ndim
		}
		actual = append(actual, a)
	}
	sort.Ints(actual)

	shape := gy.Shape().Clone()
	for _, a := range actual {
		shape = append(shape, 0)
		copy(shape[a+1:], shape[a:])
		shape[a] = 1
	}
	return Reshape(gy, shape)
}

type broadcastToOp struct {
	Base
	shape  tensor.Shape
	xShape tensor.Shape
}

func (op *broadcastToOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	op.xShape = xs[0].Shape()
	return []*tensor.Array{tensor.BroadcastTo(xs[0], op.shape)}
}

func (op *broadcastToOp) Backward(gys ...*Variable) []*Variable {
	return []*Variable{SumTo(gys[0], op.xShape)}
}

// BroadcastTo materializes a broadcast of x to the target shape. Its
// backward rule is SumTo; the two are exact mutual inverses on shape.
// When the shape already matches, the input is returned without recording
// an operation.
func BroadcastTo(x any, shape tensor.Shape) *Variable {
	v := asVariable(x)
	if v.data != nil && v.data.Shape().Equal(shape) {
		return v
	}
	return apply(&broadcastToOp{shape: shape.Clone()}, v)
}

type sumToOp struct {
	Base
	shape  tensor.Shape
	xShape tensor.Shape
}

func (op *sumToOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	op.xShape = xs[0].Shape()
	return []*tensor.Array{tensor.SumTo(xs[0], op.shape)}
}

func (op *sumToOp) Backward(gys ...*Variable) []*Variable {
	return []*Variable{BroadcastTo(gys[0], op.xShape)}
}

// SumTo reduces x by addition down to the target shape, summing over the
// broadcast axes. Its backward rule is BroadcastTo. When the shape already
// matches, the input is returned without recording an operation.
func SumTo(x any, shape tensor.Shape) *Variable {
	v := asVariable(x)
	if v.data != nil && v.data.Shape().Equal(shape) {
		return v
	}
	return apply(&sumToOp{shape: shape.Clone()}, v)
}

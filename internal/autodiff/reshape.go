package autodiff

import (
	"github.com/junsu0302/Aria/internal/tensor"
)

type reshapeOp struct {
	Base
	shape  tensor.Shape
	xShape tensor.Shape
}

func (op *reshapeOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	op.xShape = xs[0].Shape()
	return []*tensor.Array{tensor.Reshape(xs[0], op.shape)}
}

func (op *reshapeOp) Backward(gys ...*Variable) []*Variable {
	return []*Variable{Reshape(gys[0], op.xShape)}
}

// Reshape returns x with the given shape. When the shape already matches,
// the input is returned wrapped without recording a redundant operation.
func Reshape(x any, shape tensor.Shape) *Variable {
	v := asVariable(x)
	if v.data != nil && v.data.Shape().Equal(shape) {
		return v
	}
	return apply(&reshapeOp{shape: shape.Clone()}, v)
}

type transposeOp struct {
	Base
	axes []int
}

func (op *transposeOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Transpose(xs[0], op.axes...)}
}

func (op *transposeOp) Backward(gys ...*Variable) []*Variable {
	if len(op.axes) == 0 {
		return []*Variable{Transpose(gys[0])}
	}
	// invert the permutation
	inv := make([]int, len(op.axes))
	for i, ax := range op.axes {
		if ax < 0 {
			ax += len(op.axes)
		}
		inv[ax] = i
	}
	return []*Variable{Transpose(gys[0], inv...)}
}

// Transpose permutes the axes of x; with no axes the order is reversed.
func Transpose(x any, axes ...int) *Variable {
	return apply(&transposeOp{axes: axes}, x)
}

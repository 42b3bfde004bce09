package autodiff

import (
	"github.com/junsu0302/Aria/internal/tensor"
)

type maxOp struct {
	Base
	axes     []int
	keepdims bool
	min      bool // reduce by minimum instead
}

func (op *maxOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	if op.min {
		return []*tensor.Array{tensor.Min(xs[0], op.axes, op.keepdims)}
	}
	return []*tensor.Array{tensor.Max(xs[0], op.axes, op.keepdims)}
}

func (op *maxOp) Backward(gys ...*Variable) []*Variable {
	x := op.inputs[0]
	y := op.Outputs()[0]

	// Reinsert reduced axes as size 1, then route the gradient only to
	// the positions that attained the extremum.
	shape := extremumBackwardShape(x.Shape(), op.axes)
	gy := Reshape(gys[0], shape)
	yb := tensor.Reshape(y.data, shape)
	cond := tensor.Equal(x.data, tensor.BroadcastTo(yb, x.Shape()))
	gy = BroadcastTo(gy, cond.Shape())
	return []*Variable{Mul(gy, cond)}
}

// MaxReduce reduces x by maximum over the given axes (nil means all axes).
// Gradients flow only to the winning positions.
func MaxReduce(x any, axes []int, keepdims bool) *Variable {
	return apply(&maxOp{axes: axes, keepdims: keepdims}, x)
}

// MinReduce reduces x by minimum over the given axes (nil means all axes).
func MinReduce(x any, axes []int, keepdims bool) *Variable {
	return apply(&maxOp{axes: axes, keepdims: keepdims, min: true}, x)
}

// extremumBackwardShape is the input shape with the reduced axes replaced
// by 1.
func extremumBackwardShape(xShape tensor.Shape, axes []int) tensor.Shape {
	reduced := make([]bool, xShape.Rank())
	if axes == nil {
		for i := range reduced {
			reduced[i] = true
		}
	} else {
		for _, a := range axes {
			if a < 0 {
				a += xShape.Rank()
			}
			reduced[a] = true
		}
	}
	shape := xShape.Clone()
	for i, r := range reduced {
		if r {
			shape[i] = 1
		}
	}
	return shape
}

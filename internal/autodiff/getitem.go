package autodiff

import (
	"github.com/junsu0302/Aria/internal/tensor"
)

type getItemOp struct {
	Base
	indices []int
}

func (op *getItemOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Take(xs[0], op.indices)}
}

func (op *getItemOp) Backward(gys ...*Variable) []*Variable {
	x := op.inputs[0]
	return []*Variable{apply(&getItemGradOp{indices: op.indices, inShape: x.Shape()}, gys[0])}
}

// GetItem gathers rows of x along axis 0 at the given indices. The
// backward rule scatters the gradient into a zero buffer shaped like x,
// accumulating where indices repeat.
func GetItem(x any, indices []int) *Variable {
	return apply(&getItemOp{indices: indices}, x)
}

// getItemGradOp is the scatter adjoint of getItemOp. It captures the
// indices and original input shape rather than the originating operation.
type getItemGradOp struct {
	Base
	indices []int
	inShape tensor.Shape
}

func (op *getItemGradOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	gx := tensor.Zeros(op.inShape)
	tensor.AddAt(gx, op.indices, xs[0])
	return []*tensor.Array{gx}
}

func (op *getItemGradOp) Backward(gys ...*Variable) []*Variable {
	// The adjoint of a scatter is the gather at the same indices.
	return []*Variable{GetItem(gys[0], op.indices)}
}

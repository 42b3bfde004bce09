package autodiff

import (
	"github.com/junsu0302/Aria/internal/tensor"
)

type matMulOp struct {
	Base
}

func (op *matMulOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.MatMul(xs[0], xs[1])}
}

func (op *matMulOp) Backward(gys ...*Variable) []*Variable {
	x, w := op.inputs[0], op.inputs[1]
	gx := MatMul(gys[0], Transpose(w))
	gw := MatMul(Transpose(x), gys[0])
	return []*Variable{gx, gw}
}

// MatMul computes the matrix product of two rank-2 variables.
func MatMul(x, w any) *Variable {
	return apply(&matMulOp{}, x, w)
}

type linearOp struct {
	Base
}

func (op *linearOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	x, w, b := xs[0], xs[1], xs[2]
	y := tensor.MatMul(x, w)
	if b != nil {
		y = tensor.Add(y, b)
	}
	return []*tensor.Array{y}
}

func (op *linearOp) Backward(gys ...*Variable) []*Variable {
	x, w, b := op.inputs[0], op.inputs[1], op.inputs[2]
	var gb *Variable
	if b.data != nil {
		gb = SumTo(gys[0], b.Shape())
	}
	gx := MatMul(gys[0], Transpose(w))
	gw := MatMul(Transpose(x), gys[0])
	return []*Variable{gx, gw, gb}
}

// Linear computes x·w + b. Pass nil for b to omit the bias; no bias
// gradient is produced in that case.
func Linear(x, w, b any) *Variable {
	return apply(&linearOp{}, x, w, b)
}

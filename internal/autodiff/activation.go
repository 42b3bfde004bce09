package autodiff

import (
	"math"

	"github.com/junsu0302/Aria/internal/tensor"
)

type sigmoidOp struct {
	Base
}

func (op *sigmoidOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	y := tensor.Zeros(xs[0].Shape())
	for i, v := range xs[0].Data {
		y.Data[i] = 1 / (1 + math.Exp(-v))
	}
	return []*tensor.Array{y}
}

func (op *sigmoidOp) Backward(gys ...*Variable) []*Variable {
	y := op.Outputs()[0]
	return []*Variable{Mul(Mul(gys[0], y), Sub(1.0, y))}
}

// Sigmoid computes 1 / (1 + e^-x) elementwise.
func Sigmoid(x any) *Variable {
	return apply(&sigmoidOp{}, x)
}

type reluOp struct {
	Base
}

func (op *reluOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Maximum(xs[0], tensor.Scalar(0))}
}

func (op *reluOp) Backward(gys ...*Variable) []*Variable {
	x := op.inputs[0]
	mask := tensor.ZerosLike(x.data)
	for i, v := range x.data.Data {
		if v > 0 {
			mask.Data[i] = 1
		}
	}
	return []*Variable{Mul(gys[0], mask)}
}

// ReLU computes max(x, 0) elementwise.
func ReLU(x any) *Variable {
	return apply(&reluOp{}, x)
}

type softmaxOp struct {
	Base
	axis int
}

func (op *softmaxOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	// max-shift for numerical stability
	m := tensor.Max(xs[0], []int{op.axis}, true)
	y := tensor.Exp(tensor.Sub(xs[0], m))
	s := tensor.Sum(y, []int{op.axis}, true)
	return []*tensor.Array{tensor.Div(y, s)}
}

func (op *softmaxOp) Backward(gys ...*Variable) []*Variable {
	y := op.Outputs()[0]
	gx := Mul(y, gys[0])
	sumdx := Sum(gx, []int{op.axis}, true)
	return []*Variable{Sub(gx, Mul(y, sumdx))}
}

// Softmax normalizes x to a probability distribution along the given axis.
func Softmax(x any, axis int) *Variable {
	return apply(&softmaxOp{axis: axis}, x)
}

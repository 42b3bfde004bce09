package autodiff

import (
	"github.com/junsu0302/Aria/internal/tensor"
)

type sinOp struct {
	Base
}

func (op *sinOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Sin(xs[0])}
}

func (op *sinOp) Backward(gys ...*Variable) []*Variable {
	x := op.inputs[0]
	return []*Variable{Mul(gys[0], Cos(x))}
}

// Sin returns the elementwise sine of x.
func Sin(x any) *Variable {
	return apply(&sinOp{}, x)
}

type cosOp struct {
	Base
}

func (op *cosOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Cos(xs[0])}
}

func (op *cosOp) Backward(gys ...*Variable) []*Variable {
	x := op.inputs[0]
	return []*Variable{Mul(gys[0], Neg(Sin(x)))}
}

// Cos returns the elementwise cosine of x.
func Cos(x any) *Variable {
	return apply(&cosOp{}, x)
}

type tanhOp struct {
	Base
}

func (op *tanhOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Tanh(xs[0])}
}

func (op *tanhOp) Backward(gys ...*Variable) []*Variable {
	y := op.Outputs()[0]
	// d tanh(x)/dx = 1 - tanh(x)^2, reusing the forward output
	return []*Variable{Mul(gys[0], Sub(1.0, Square(y)))}
}

// Tanh returns the elementwise hyperbolic tangent of x.
func Tanh(x any) *Variable {
	return apply(&tanhOp{}, x)
}

type logOp struct {
	Base
}

func (op *logOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Log(xs[0])}
}

func (op *logOp) Backward(gys ...*Variable) []*Variable {
	x := op.inputs[0]
	return []*Variable{Div(gys[0], x)}
}

// Log returns the elementwise natural logarithm of x.
func Log(x any) *Variable {
	return apply(&logOp{}, x)
}

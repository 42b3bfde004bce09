package autodiff

import (
	"github.com/junsu0302/Aria/internal/tensor"
)

// Elementwise arithmetic. Every binary rule records the pre-broadcast
// operand shapes at forward time; when they differ, the raw gradients are
// routed through SumTo so each gradient's shape matches its input's
// original shape.

type addOp struct {
	Base
	x0Shape, x1Shape tensor.Shape
}

func (op *addOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*tensor.Array{tensor.Add(xs[0], xs[1])}
}

func (op *addOp) Backward(gys ...*Variable) []*Variable {
	gx0, gx1 := gys[0], gys[0]
	if !op.x0Shape.Equal(op.x1Shape) {
		gx0 = SumTo(gx0, op.x0Shape)
		gx1 = SumTo(gx1, op.x1Shape)
	}
	return []*Variable{gx0, gx1}
}

// Add returns x0 + x1 with broadcasting.
func Add(x0, x1 any) *Variable {
	return apply(&addOp{}, x0, x1)
}

type subOp struct {
	Base
	x0Shape, x1Shape tensor.Shape
}

func (op *subOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*tensor.Array{tensor.Sub(xs[0], xs[1])}
}

func (op *subOp) Backward(gys ...*Variable) []*Variable {
	gx0, gx1 := gys[0], Neg(gys[0])
	if !op.x0Shape.Equal(op.x1Shape) {
		gx0 = SumTo(gx0, op.x0Shape)
		gx1 = SumTo(gx1, op.x1Shape)
	}
	return []*Variable{gx0, gx1}
}

// Sub returns x0 - x1 with broadcasting.
func Sub(x0, x1 any) *Variable {
	return apply(&subOp{}, x0, x1)
}

type mulOp struct {
	Base
	x0Shape, x1Shape tensor.Shape
}

func (op *mulOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*tensor.Array{tensor.Mul(xs[0], xs[1])}
}

func (op *mulOp) Backward(gys ...*Variable) []*Variable {
	x0, x1 := op.inputs[0], op.inputs[1]
	gx0 := Mul(gys[0], x1)
	gx1 := Mul(gys[0], x0)
	if !op.x0Shape.Equal(op.x1Shape) {
		gx0 = SumTo(gx0, op.x0Shape)
		gx1 = SumTo(gx1, op.x1Shape)
	}
	return []*Variable{gx0, gx1}
}

// Mul returns x0 * x1 with broadcasting.
func Mul(x0, x1 any) *Variable {
	return apply(&mulOp{}, x0, x1)
}

type divOp struct {
	Base
	x0Shape, x1Shape tensor.Shape
}

func (op *divOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*tensor.Array{tensor.Div(xs[0], xs[1])}
}

func (op *divOp) Backward(gys ...*Variable) []*Variable {
	x0, x1 := op.inputs[0], op.inputs[1]
	gx0 := Div(gys[0], x1)
	// quotient rule: d(x0/x1)/dx1 = -x0/x1^2
	gx1 := Mul(gys[0], Div(Neg(x0), Pow(x1, 2)))
	if !op.x0Shape.Equal(op.x1Shape) {
		gx0 = SumTo(gx0, op.x0Shape)
		gx1 = SumTo(gx1, op.x1Shape)
	}
	return []*Variable{gx0, gx1}
}

// Div returns x0 / x1 with broadcasting.
func Div(x0, x1 any) *Variable {
	return apply(&divOp{}, x0, x1)
}

type negOp struct {
	Base
}

func (op *negOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Neg(xs[0])}
}

func (op *negOp) Backward(gys ...*Variable) []*Variable {
	return []*Variable{Neg(gys[0])}
}

// Neg returns -x.
func Neg(x any) *Variable {
	return apply(&negOp{}, x)
}

type powOp struct {
	Base
	c float64
}

func (op *powOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Pow(xs[0], op.c)}
}

func (op *powOp) Backward(gys ...*Variable) []*Variable {
	x := op.inputs[0]
	// d(x^c)/dx = c * x^(c-1)
	return []*Variable{Mul(Mul(Pow(x, op.c-1), op.c), gys[0])}
}

// Pow returns x ** c for a scalar exponent.
func Pow(x any, c float64) *Variable {
	return apply(&powOp{c: c}, x)
}

type squareOp struct {
	Base
}

func (op *squareOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Mul(xs[0], xs[0])}
}

func (op *squareOp) Backward(gys ...*Variable) []*Variable {
	x := op.inputs[0]
	return []*Variable{Mul(Mul(x, 2.0), gys[0])}
}

// Square returns x ** 2.
func Square(x any) *Variable {
	return apply(&squareOp{}, x)
}

type expOp struct {
	Base
}

func (op *expOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	return []*tensor.Array{tensor.Exp(xs[0])}
}

func (op *expOp) Backward(gys ...*Variable) []*Variable {
	y := op.Outputs()[0]
	return []*Variable{Mul(gys[0], y)}
}

// Exp returns e ** x elementwise.
func Exp(x any) *Variable {
	return apply(&expOp{}, x)
}

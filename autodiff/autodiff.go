// Copyright 2025 The Aria Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides define-by-run reverse-mode automatic
// differentiation.
//
// Operations on Variables record a computation graph as they execute.
// Calling Backward on a result walks that graph in reverse and leaves
// each input's gradient on the input.
//
// Example:
//
//	import (
//	    "github.com/junsu0302/Aria/autodiff"
//	    "github.com/junsu0302/Aria/tensor"
//	)
//
//	func main() {
//	    x := autodiff.NewVariable(tensor.Scalar(3))
//	    y := autodiff.Add(autodiff.Square(x), 1)
//	    y.Backward()
//	    fmt.Println(x.Grad()) // dy/dx = 2x = 6
//	}
package autodiff

import (
	"github.com/junsu0302/Aria/internal/autodiff"
	"github.com/junsu0302/Aria/internal/tensor"
)

// Variable is a node of the computation graph: a value plus the
// bookkeeping backward needs.
type Variable = autodiff.Variable

// Function is the interface every differentiable operation implements.
type Function = autodiff.Function

// BackwardOpt configures a Backward call.
type BackwardOpt = autodiff.BackwardOpt

// NewVariable wraps data as a graph leaf.
func NewVariable(data *tensor.Array) *Variable {
	return autodiff.NewVariable(data)
}

// RetainGrad keeps intermediate gradients after backward instead of
// clearing them.
func RetainGrad() BackwardOpt { return autodiff.RetainGrad() }

// CreateGraph records the backward computation itself, enabling
// higher-order gradients.
func CreateGraph() BackwardOpt { return autodiff.CreateGraph() }

// NoGrad disables graph recording until the returned restore function
// is called. Use as: defer autodiff.NoGrad()().
func NoGrad() func() { return autodiff.NoGrad() }

// TestMode switches train-time behavior (e.g. Dropout) off until the
// returned restore function is called.
func TestMode() func() { return autodiff.TestMode() }

// BackpropEnabled reports whether operations currently record the
// graph.
func BackpropEnabled() bool { return autodiff.BackpropEnabled() }

// TrainMode reports whether train-time behavior is active.
func TrainMode() bool { return autodiff.TrainMode() }

// Arithmetic.
func Add(x0, x1 any) *Variable { return autodiff.Add(x0, x1) }
func Sub(x0, x1 any) *Variable { return autodiff.Sub(x0, x1) }
func Mul(x0, x1 any) *Variable { return autodiff.Mul(x0, x1) }
func Div(x0, x1 any) *Variable { return autodiff.Div(x0, x1) }
func Neg(x any) *Variable { return autodiff.Neg(x) }
func Pow(x any, c float64) *Variable { return autodiff.Pow(x, c) }
func Square(x any) *Variable { return autodiff.Square(x) }

// Elementwise math.
func Exp(x any) *Variable { return autodiff.Exp(x) }
func Log(x any) *Variable { return autodiff.Log(x) }
func Sin(x any) *Variable { return autodiff.Sin(x) }
func Cos(x any) *Variable { return autodiff.Cos(x) }
func Tanh(x any) *Variable { return autodiff.Tanh(x) }

// Shape manipulation.
func Reshape(x any, shape tensor.Shape) *Variable { return autodiff.Reshape(x, shape) }
func Transpose(x any, axes ...int) *Variable { return autodiff.Transpose(x, axes...) }
func BroadcastTo(x any, shape tensor.Shape) *Variable { return autodiff.BroadcastTo(x, shape) }
func SumTo(x any, shape tensor.Shape) *Variable { return autodiff.SumTo(x, shape) }
func GetItem(x any, indices []int) *Variable { return autodiff.GetItem(x, indices) }

// Reductions and linear algebra.
func Sum(x any, axes []int, keepdims bool) *Variable { return autodiff.Sum(x, axes, keepdims) }
func SumAll(x any) *Variable { return autodiff.SumAll(x) }
func MaxReduce(x any, axes []int, keepdims bool) *Variable {
	return autodiff.MaxReduce(x, axes, keepdims)
}
func MinReduce(x any, axes []int, keepdims bool) *Variable {
	return autodiff.MinReduce(x, axes, keepdims)
}
func MatMul(x, w any) *Variable { return autodiff.MatMul(x, w) }
func Linear(x, w, b any) *Variable { return autodiff.Linear(x, w, b) }

// Activations and losses.
func Sigmoid(x any) *Variable { return autodiff.Sigmoid(x) }
func ReLU(x any) *Variable { return autodiff.ReLU(x) }
func Softmax(x any, axis int) *Variable { return autodiff.Softmax(x, axis) }
func MeanSquaredError(x0, x1 any) *Variable { return autodiff.MeanSquaredError(x0, x1) }
func SoftmaxCrossEntropy(x, t any) *Variable { return autodiff.SoftmaxCrossEntropy(x, t) }
func Dropout(x any, ratio float64) *Variable { return autodiff.Dropout(x, ratio) }

// Convolutions.
func Conv2d(x, w, b any, stride, pad int) *Variable {
	return autodiff.Conv2d(x, w, b, stride, pad)
}
func Deconv2d(x, w, b any, stride, pad int, outSize []int) *Variable {
	return autodiff.Deconv2d(x, w, b, stride, pad, outSize)
}
func Pooling(x any, kernelSize, stride, pad int) *Variable {
	return autodiff.Pooling(x, kernelSize, stride, pad)
}

// DotGraph renders the graph ending at output as Graphviz DOT text.
func DotGraph(output *Variable, verbose bool) string {
	return autodiff.DotGraph(output, verbose)
}

// PlotGraph renders the graph ending at output to an image via the
// graphviz dot command.
func PlotGraph(output *Variable, path string, verbose bool) error {
	return autodiff.PlotGraph(output, path, verbose)
}

// Optimization test functions.
func Sphere(x, y *Variable) *Variable         { return autodiff.Sphere(x, y) }
func Matyas(x, y *Variable) *Variable         { return autodiff.Matyas(x, y) }
func GoldsteinPrice(x, y *Variable) *Variable { return autodiff.GoldsteinPrice(x, y) }
func Rosenbrock(x, y *Variable) *Variable     { return autodiff.Rosenbrock(x, y) }

// NumericalDiff approximates df/dx by central differences.
func NumericalDiff(f func(*Variable) *Variable, x *Variable, eps float64) *tensor.Array {
	return autodiff.NumericalDiff(f, x, eps)
}

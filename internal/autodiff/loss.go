package autodiff

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/junsu0302/Aria/internal/tensor"
)

type meanSquaredErrorOp struct {
	Base
}

func (op *meanSquaredErrorOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	diff := tensor.Sub(xs[0], xs[1])
	var total float64
	for _, v := range diff.Data {
		total += v * v
	}
	return []*tensor.Array{tensor.Scalar(total / float64(diff.Size()))}
}

func (op *meanSquaredErrorOp) Backward(gys ...*Variable) []*Variable {
	x0, x1 := op.inputs[0], op.inputs[1]
	diff := Sub(x0, x1)
	gx0 := Mul(Mul(gys[0], diff), 2.0/float64(diff.Size()))
	return []*Variable{gx0, Neg(gx0)}
}

// MeanSquaredError computes mean((x0 - x1)^2) over all elements.
func MeanSquaredError(x0, x1 any) *Variable {
	return apply(&meanSquaredErrorOp{}, x0, x1)
}

type softmaxCrossEntropyOp struct {
	Base
}

func (op *softmaxCrossEntropyOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	x, t := xs[0], xs[1]
	if x.Rank() != 2 {
		exceptions.Panicf("autodiff: SoftmaxCrossEntropy expects rank-2 logits, got rank %d", x.Rank())
	}
	n := x.Shape()[0]
	logZ := tensor.LogSumExp(x, 1)
	var total float64
	for i := 0; i < n; i++ {
		label := int(t.Data[i])
		total += x.At(i, label) - logZ.Data[i]
	}
	return []*tensor.Array{tensor.Scalar(-total / float64(n))}
}

func (op *softmaxCrossEntropyOp) Backward(gys ...*Variable) []*Variable {
	x, t := op.inputs[0], op.inputs[1]
	n, c := x.Shape()[0], x.Shape()[1]
	gy := Mul(gys[0], 1.0/float64(n))
	y := Softmax(x, 1)
	onehot := tensor.Zeros(tensor.Shape{n, c})
	for i := 0; i < n; i++ {
		onehot.Set(1, i, int(t.data.Data[i]))
	}
	gx := Mul(Sub(y, onehot), gy)
	return []*Variable{gx, nil}
}

// SoftmaxCrossEntropy computes the mean cross-entropy between rank-2
// logits x and integer class labels t. The labels do not receive a
// gradient.
func SoftmaxCrossEntropy(x, t any) *Variable {
	return apply(&softmaxCrossEntropyOp{}, x, t)
}

// Accuracy reports the fraction of rows of y whose argmax matches t.
// It is a metric, not an operation, so the result carries no graph.
func Accuracy(y, t *Variable) float64 {
	n := y.Shape()[0]
	correct := 0
	for i := 0; i < n; i++ {
		best, bestj := math.Inf(-1), 0
		for j := 0; j < y.Shape()[1]; j++ {
			if v := y.data.At(i, j); v > best {
				best, bestj = v, j
			}
		}
		if bestj == int(t.data.Data[i]) {
			correct++
		}
	}
	return float64(correct) / float64(n)
}

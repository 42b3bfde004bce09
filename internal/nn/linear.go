package nn

import (
	"math"

	"github.com/junsu0302/Aria/internal/autodiff"
	"github.com/junsu0302/Aria/internal/tensor"
)

// Linear is a fully connected layer computing x*W + b. The weight is
// initialized lazily on the first forward pass, so the input size
// never has to be spelled out when building a model.
type Linear struct {
	Base
	W *Parameter
	B *Parameter

	outSize int
}

// LinearOpts configures NewLinear. The zero value gives a biased layer
// with a lazily sized weight.
type LinearOpts struct {
	InSize int
	NoBias bool
}

// NewLinear returns a fully connected layer with outSize output
// features.
func NewLinear(outSize int, opts LinearOpts) *Linear {
	l := &Linear{outSize: outSize}
	l.W = NewParameter(nil, "W")
	l.RegisterParam("W", l.W)
	if opts.InSize > 0 {
		l.initW(opts.InSize)
	}
	if !opts.NoBias {
		l.B = NewParameter(tensor.Zeros(tensor.Shape{outSize}), "b")
		l.RegisterParam("b", l.B)
	}
	return l
}

func (l *Linear) initW(inSize int) {
	w := tensor.Randn(tensor.Shape{inSize, l.outSize})
	l.W.SetData(tensor.Scale(w, math.Sqrt(1/float64(inSize))))
}

// Forward implements Layer.
func (l *Linear) Forward(x *autodiff.Variable) *autodiff.Variable {
	if l.W.Data() == nil {
		l.initW(x.Shape()[x.Rank()-1])
	}
	if l.B == nil {
		return autodiff.Linear(x, l.W.Variable, nil)
	}
	return autodiff.Linear(x, l.W.Variable, l.B.Variable)
}

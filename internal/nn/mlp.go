package nn

import (
	"fmt"

	"github.com/junsu0302/Aria/internal/autodiff"
)

// MLP is a stack of fully connected layers with an activation between
// each pair. The last layer's output is returned raw so a loss can be
// applied to logits.
type MLP struct {
	Base
	layers     []*Linear
	activation func(any) *autodiff.Variable
}

// NewMLP builds a multilayer perceptron whose layer i has outSizes[i]
// output features. activation may be nil, defaulting to Sigmoid.
func NewMLP(outSizes []int, activation func(any) *autodiff.Variable) *MLP {
	if activation == nil {
		activation = autodiff.Sigmoid
	}
	m := &MLP{activation: activation}
	for i, n := range outSizes {
		l := NewLinear(n, LinearOpts{})
		m.layers = append(m.layers, l)
		m.RegisterLayer(fmt.Sprintf("l%d", i), l)
	}
	return m
}

// Forward implements Layer.
func (m *MLP) Forward(x *autodiff.Variable) *autodiff.Variable {
	for _, l := range m.layers[:len(m.layers)-1] {
		x = m.activation(l.Forward(x))
	}
	return m.layers[len(m.layers)-1].Forward(x)
}

// Copyright 2025 The Aria Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers on top of the autodiff
// engine.
//
// Example:
//
//	import (
//	    "github.com/junsu0302/Aria/autodiff"
//	    "github.com/junsu0302/Aria/nn"
//	    "github.com/junsu0302/Aria/optim"
//	)
//
//	func main() {
//	    model := nn.NewMLP([]int{10, 1}, nil)
//	    opt := optim.NewSGD(model, 0.2)
//	    for i := 0; i < 1000; i++ {
//	        pred := model.Forward(x)
//	        loss := autodiff.MeanSquaredError(pred, y)
//	        nn.Cleargrads(model)
//	        loss.Backward()
//	        opt.Update()
//	    }
//	}
package nn

import (
	"github.com/junsu0302/Aria/internal/autodiff"
	"github.com/junsu0302/Aria/internal/nn"
	"github.com/junsu0302/Aria/internal/tensor"
)

// Parameter is a trainable variable owned by a layer.
type Parameter = nn.Parameter

// Layer is the interface all layers implement.
type Layer = nn.Layer

// Base provides parameter registration for custom layers.
type Base = nn.Base

// Linear is a fully connected layer.
type Linear = nn.Linear

// LinearOpts configures NewLinear.
type LinearOpts = nn.LinearOpts

// MLP is a stack of fully connected layers.
type MLP = nn.MLP

// NewParameter wraps data as a named trainable parameter.
func NewParameter(data *tensor.Array, name string) *Parameter {
	return nn.NewParameter(data, name)
}

// NewLinear returns a fully connected layer with outSize outputs.
func NewLinear(outSize int, opts LinearOpts) *Linear {
	return nn.NewLinear(outSize, opts)
}

// NewMLP builds a multilayer perceptron; activation nil means Sigmoid.
func NewMLP(outSizes []int, activation func(any) *autodiff.Variable) *MLP {
	return nn.NewMLP(outSizes, activation)
}

// Params collects every materialized parameter of l.
func Params(l Layer) []*Parameter { return nn.Params(l) }

// Cleargrads resets the gradients of every parameter of l.
func Cleargrads(l Layer) { nn.Cleargrads(l) }

// SaveWeights writes l's parameters to path.
func SaveWeights(path string, l Layer) error { return nn.SaveWeights(path, l) }

// LoadWeights restores parameters saved by SaveWeights into l.
func LoadWeights(path string, l Layer) error { return nn.LoadWeights(path, l) }

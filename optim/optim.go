// Copyright 2025 The Aria Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based optimizers for nn layers.
package optim

import (
	"github.com/junsu0302/Aria/internal/nn"
	"github.com/junsu0302/Aria/internal/optim"
)

// Optimizer updates the parameters of its target layer.
type Optimizer = optim.Optimizer

// Hook preprocesses gradients before an update step.
type Hook = optim.Hook

// SGD is plain stochastic gradient descent.
type SGD = optim.SGD

// MomentumSGD is SGD with a velocity term.
type MomentumSGD = optim.MomentumSGD

// Adam is the Adam update rule.
type Adam = optim.Adam

// NewSGD returns an SGD optimizer over target with learning rate lr.
func NewSGD(target nn.Layer, lr float64) *SGD {
	return optim.NewSGD(target, lr)
}

// NewMomentumSGD returns a momentum SGD optimizer over target.
func NewMomentumSGD(target nn.Layer, lr, momentum float64) *MomentumSGD {
	return optim.NewMomentumSGD(target, lr, momentum)
}

// NewAdam returns an Adam optimizer over target with default
// hyperparameters.
func NewAdam(target nn.Layer) *Adam {
	return optim.NewAdam(target)
}

// WeightDecay returns a hook adding rate*param to each gradient.
func WeightDecay(rate float64) Hook {
	return optim.WeightDecay(rate)
}

// ClipGrad returns a hook capping the joint gradient L2 norm.
func ClipGrad(maxNorm float64) Hook {
	return optim.ClipGrad(maxNorm)
}

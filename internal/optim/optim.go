// Package optim implements gradient-based parameter update rules over
// nn layers.
package optim

import (
	"math"

	"github.com/junsu0302/Aria/internal/nn"
	"github.com/junsu0302/Aria/internal/tensor"
)

// Optimizer updates the parameters of the layer it was set up with
// from the gradients of the latest backward pass.
type Optimizer interface {
	Update()
}

// Hook preprocesses the ready parameters before an update step, e.g.
// for weight decay or gradient clipping.
type Hook func(params []*nn.Parameter)

// Base carries the target layer and hook list shared by all
// optimizers.
type Base struct {
	target nn.Layer
	hooks  []Hook
}

// AddHook appends a preprocessing hook. Hooks run in the order added.
func (b *Base) AddHook(h Hook) {
	b.hooks = append(b.hooks, h)
}

// ready returns the parameters that received a gradient, after running
// the hooks over them.
func (b *Base) ready() []*nn.Parameter {
	var ps []*nn.Parameter
	for _, p := range nn.Params(b.target) {
		if p.Grad() != nil {
			ps = append(ps, p)
		}
	}
	for _, h := range b.hooks {
		h(ps)
	}
	return ps
}

// SGD is plain stochastic gradient descent.
type SGD struct {
	Base
	LR float64
}

func NewSGD(target nn.Layer, lr float64) *SGD {
	return &SGD{Base: Base{target: target}, LR: lr}
}

func (o *SGD) Update() {
	for _, p := range o.ready() {
		p.SetData(tensor.Sub(p.Data(), tensor.Scale(p.Grad().Data(), o.LR)))
	}
}

// MomentumSGD is SGD with a velocity term.
type MomentumSGD struct {
	Base
	LR       float64
	Momentum float64

	vs map[*nn.Parameter]*tensor.Array
}

func NewMomentumSGD(target nn.Layer, lr, momentum float64) *MomentumSGD {
	return &MomentumSGD{
		Base:     Base{target: target},
		LR:       lr,
		Momentum: momentum,
		vs:       map[*nn.Parameter]*tensor.Array{},
	}
}

func (o *MomentumSGD) Update() {
	for _, p := range o.ready() {
		v, ok := o.vs[p]
		if !ok {
			v = tensor.ZerosLike(p.Data())
		}
		v = tensor.Sub(tensor.Scale(v, o.Momentum), tensor.Scale(p.Grad().Data(), o.LR))
		o.vs[p] = v
		p.SetData(tensor.Add(p.Data(), v))
	}
}

// Adam implements the Adam update rule with bias-corrected moment
// estimates.
type Adam struct {
	Base
	Alpha float64
	Beta1 float64
	Beta2 float64
	Eps   float64

	t  int
	ms map[*nn.Parameter]*tensor.Array
	vs map[*nn.Parameter]*tensor.Array
}

func NewAdam(target nn.Layer) *Adam {
	return &Adam{
		Base:  Base{target: target},
		Alpha: 0.001,
		Beta1: 0.9,
		Beta2: 0.999,
		Eps:   1e-8,
		ms:    map[*nn.Parameter]*tensor.Array{},
		vs:    map[*nn.Parameter]*tensor.Array{},
	}
}

// lr is the step size with the bias correction for step t folded in.
func (o *Adam) lr() float64 {
	fix1 := 1 - math.Pow(o.Beta1, float64(o.t))
	fix2 := 1 - math.Pow(o.Beta2, float64(o.t))
	return o.Alpha * math.Sqrt(fix2) / fix1
}

func (o *Adam) Update() {
	params := o.ready()
	o.t++
	lr := o.lr()
	for _, p := range params {
		g := p.Grad().Data()
		m, ok := o.ms[p]
		if !ok {
			m = tensor.ZerosLike(p.Data())
			o.ms[p] = m
		}
		v, ok := o.vs[p]
		if !ok {
			v = tensor.ZerosLike(p.Data())
			o.vs[p] = v
		}

		data := p.Data().Clone()
		for i := range data.Data {
			m.Data[i] += (1 - o.Beta1) * (g.Data[i] - m.Data[i])
			v.Data[i] += (1 - o.Beta2) * (g.Data[i]*g.Data[i] - v.Data[i])
			data.Data[i] -= lr * m.Data[i] / (math.Sqrt(v.Data[i]) + o.Eps)
		}
		p.SetData(data)
	}
}

// WeightDecay returns a hook adding rate*param to each gradient.
func WeightDecay(rate float64) Hook {
	return func(params []*nn.Parameter) {
		for _, p := range params {
			g := tensor.Add(p.Grad().Data(), tensor.Scale(p.Data(), rate))
			p.Grad().SetData(g)
		}
	}
}

// ClipGrad returns a hook rescaling all gradients so their joint L2
// norm does not exceed maxNorm.
func ClipGrad(maxNorm float64) Hook {
	return func(params []*nn.Parameter) {
		var total float64
		for _, p := range params {
			for _, v := range p.Grad().Data().Data {
				total += v * v
			}
		}
		rate := maxNorm / (math.Sqrt(total) + 1e-6)
		if rate >= 1 {
			return
		}
		for _, p := range params {
			p.Grad().SetData(tensor.Scale(p.Grad().Data(), rate))
		}
	}
}

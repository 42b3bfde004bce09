package autodiff

import (
	"weak"

	"github.com/gomlx/exceptions"
	"github.com/junsu0302/Aria/internal/tensor"
)

// Function is a unit of computation with paired forward and backward rules.
//
// Forward maps input buffers to output buffers; Backward maps output
// gradients to input gradients, expressed over Variables so that the
// backward computation can itself be recorded when higher-order gradients
// are requested.
//
// A Function instance is single-use: apply invokes Forward exactly once and
// binds the captured shapes/indices of that invocation. Construct a new
// instance per invocation.
//
// Concrete functions embed Base, which supplies the bookkeeping half of the
// interface (Inputs, Outputs, Generation).
type Function interface {
	Forward(xs ...*tensor.Array) []*tensor.Array
	Backward(gys ...*Variable) []*Variable

	// Inputs returns the variables consumed at apply time.
	Inputs() []*Variable
	// Outputs returns the variables produced at apply time. Entries are
	// nil when the output has been collected; see Base.
	Outputs() []*Variable
	// Generation returns the maximum generation among the inputs.
	Generation() int

	remember(inputs, outputs []*Variable)
}

// Base carries the graph bookkeeping shared by every Function: strong
// references to the inputs and weak references to the outputs.
//
// Inputs are owned because the backward rule reads their data and the
// engine wires gradients into them. Outputs are weak because a client may
// legitimately drop a result while the producing Function is still
// reachable through another variable's creator link; a strong reference
// here would pin every intermediate activation for the lifetime of the
// graph.
type Base struct {
	inputs     []*Variable
	outputs    []weak.Pointer[Variable]
	generation int
}

// Inputs returns the input variables recorded at apply time.
func (b *Base) Inputs() []*Variable {
	return b.inputs
}

// Outputs resolves the weak output references. An entry is nil when that
// output has been collected; its gradient then simply no longer
// contributes.
func (b *Base) Outputs() []*Variable {
	outs := make([]*Variable, len(b.outputs))
	for i, w := range b.outputs {
		outs[i] = w.Value()
	}
	return outs
}

// Generation returns the generation stamped at apply time.
func (b *Base) Generation() int {
	return b.generation
}

func (b *Base) remember(inputs, outputs []*Variable) {
	b.generation = 0
	for _, x := range inputs {
		if x.generation > b.generation {
			b.generation = x.generation
		}
	}
	b.inputs = inputs
	b.outputs = make([]weak.Pointer[Variable], len(outputs))
	for i, y := range outputs {
		b.outputs[i] = weak.Make(y)
	}
}

// asVariable wraps a raw value into a Variable. Accepted kinds are
// *Variable (returned as is), *tensor.Array, numeric scalars, and nil
// (a placeholder, e.g. an omitted bias). Anything else is a type error.
func asVariable(x any) *Variable {
	switch v := x.(type) {
	case *Variable:
		return v
	case *tensor.Array:
		return NewVariable(v)
	case float64:
		return NewVariable(tensor.Scalar(v))
	case float32:
		return NewVariable(tensor.Scalar(float64(v)))
	case int:
		return NewVariable(tensor.Scalar(float64(v)))
	case nil:
		return NewVariable(nil)
	default:
		exceptions.Panicf("autodiff: cannot wrap value of type %T into a Variable", x)
		return nil
	}
}

// apply is the graph builder: the single place graph edges are created.
//
// It wraps every raw input into a Variable, runs the forward rule on the
// underlying buffers, and wraps the outputs. When gradient recording is
// enabled it also stamps the function's generation, wires each output's
// creator link, and records the input/output references. It is re-entrant:
// backward rules call back into apply while a backward sweep is running.
func applyN(f Function, inputs ...any) []*Variable {
	if len(inputs) == 0 {
		exceptions.Panicf("autodiff: %T applied with no inputs", f)
	}
	xs := make([]*Variable, len(inputs))
	datas := make([]*tensor.Array, len(inputs))
	for i, in := range inputs {
		xs[i] = asVariable(in)
		datas[i] = xs[i].data
	}

	ys := f.Forward(datas...)
	outputs := make([]*Variable, len(ys))
	for i, y := range ys {
		outputs[i] = NewVariable(y)
	}

	if BackpropEnabled() {
		f.remember(xs, outputs)
		for _, out := range outputs {
			out.SetCreator(f)
			// Invariant: an output sits strictly deeper than every input.
			for _, x := range xs {
				if out.generation <= x.generation {
					exceptions.Panicf("autodiff: %T output generation %d does not exceed input generation %d",
						f, out.generation, x.generation)
				}
			}
		}
	}
	return outputs
}

// apply is applyN for the common single-output case.
func apply(f Function, inputs ...any) *Variable {
	return applyN(f, inputs...)[0]
}

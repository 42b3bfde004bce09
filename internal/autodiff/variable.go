// Package autodiff implements define-by-run reverse-mode automatic
// differentiation.
//
// Applying an operation to Variables records a node in a dynamic
// computation graph; calling Backward on a result replays that graph in
// reverse dependency order, accumulating gradients into every input.
// Backward rules are themselves expressed over Variables, so the backward
// sweep can be recorded as a new graph (CreateGraph) and differentiated
// again for higher-order gradients.
//
// Example:
//
//	x := autodiff.NewVariable(tensor.Scalar(2.0))
//	y := autodiff.Square(x)
//	y.Backward()
//	fmt.Println(x.Grad().Data().Item()) // dy/dx = 2x = 4
//
// The engine is single-threaded: no two backward calls may run
// concurrently against the same graph, and the mode flags in config.go are
// not synchronized.
package autodiff

import (
	"container/heap"
	"fmt"

	"github.com/junsu0302/Aria/internal/tensor"
)

// Variable is a vertex of the computation graph: a data buffer plus the
// bookkeeping the backward engine needs (gradient, creator link,
// generation). Identity is pointer identity.
type Variable struct {
	// Name optionally labels the variable in graph dumps.
	Name string

	data       *tensor.Array // nil represents a placeholder
	grad       *Variable     // nil until backward populates it
	creator    Function      // nil for leaf variables
	generation int
}

// NewVariable creates a leaf Variable holding data. A nil data is a
// symbolic placeholder (used e.g. for an omitted bias).
func NewVariable(data *tensor.Array) *Variable {
	return &Variable{data: data}
}

// Data returns the underlying buffer (nil for placeholders).
func (v *Variable) Data() *tensor.Array {
	return v.data
}

// SetData replaces the underlying buffer. This is an out-of-graph update
// used by optimizers and weight loading; it does not touch graph edges.
func (v *Variable) SetData(data *tensor.Array) {
	v.data = data
}

// Grad returns the accumulated gradient, or nil before backward.
// The gradient is itself a Variable so it can participate in a recorded
// backward graph.
func (v *Variable) Grad() *Variable {
	return v.grad
}

// SetGrad replaces the accumulated gradient.
func (v *Variable) SetGrad(g *Variable) {
	v.grad = g
}

// Cleargrad resets the gradient, typically between optimization steps.
func (v *Variable) Cleargrad() {
	v.grad = nil
}

// Creator returns the operation that produced this variable, or nil for
// leaves.
func (v *Variable) Creator() Function {
	return v.creator
}

// SetCreator wires the producing operation and stamps the generation.
func (v *Variable) SetCreator(f Function) {
	v.creator = f
	v.generation = f.Generation() + 1
}

// Generation returns the variable's depth in the graph (0 for leaves).
func (v *Variable) Generation() int {
	return v.generation
}

// Shape returns the shape of the underlying buffer.
func (v *Variable) Shape() tensor.Shape {
	return v.data.Shape()
}

// Rank returns the number of dimensions of the underlying buffer.
func (v *Variable) Rank() int {
	return v.data.Rank()
}

// Size returns the number of elements of the underlying buffer.
func (v *Variable) Size() int {
	return v.data.Size()
}

// Len returns the length of the first dimension.
func (v *Variable) Len() int {
	return v.data.Shape()[0]
}

// String renders the variable for debugging.
func (v *Variable) String() string {
	if v.data == nil {
		return "Variable(nil)"
	}
	return fmt.Sprintf("Variable(%v)", v.data)
}

// Unchain severs the link to the creator operation, permanently pruning
// this variable from future backward traversals through that edge.
func (v *Variable) Unchain() {
	v.creator = nil
}

// UnchainBackward walks the creator chain from v and unchains every
// reachable variable, detaching the entire upstream subgraph. Used to
// truncate long temporal graphs between sequence steps.
func (v *Variable) UnchainBackward() {
	if v.creator == nil {
		return
	}
	funcs := []Function{v.creator}
	for len(funcs) > 0 {
		f := funcs[len(funcs)-1]
		funcs = funcs[:len(funcs)-1]
		for _, x := range f.Inputs() {
			if x.creator != nil {
				funcs = append(funcs, x.creator)
				x.Unchain()
			}
		}
	}
}

// BackwardOpt configures a Backward call.
type BackwardOpt func(*backwardConfig)

type backwardConfig struct {
	retainGrad  bool
	createGraph bool
}

// RetainGrad keeps the gradients of intermediate variables instead of
// freeing them once propagated.
func RetainGrad() BackwardOpt {
	return func(c *backwardConfig) { c.retainGrad = true }
}

// CreateGraph records the backward computation itself as a new graph,
// enabling a second Backward call on a gradient for higher-order
// derivatives.
func CreateGraph() BackwardOpt {
	return func(c *backwardConfig) { c.createGraph = true }
}

// Backward computes gradients for every variable that contributed to v.
//
// The traversal pops operations in decreasing generation order, so an
// operation runs only after every operation that could still deliver
// gradients to its outputs has run. Gradients flowing into a shared input
// from multiple consumers accumulate by addition. Unless RetainGrad is
// given, the gradients of each operation's outputs are cleared once
// propagated, freeing intermediate activations.
//
// On a variable with no creator this only seeds the gradient.
func (v *Variable) Backward(opts ...BackwardOpt) {
	var cfg backwardConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if v.grad == nil {
		v.grad = NewVariable(tensor.OnesLike(v.data))
	}
	if v.creator == nil {
		return
	}

	var funcs functionHeap
	seen := map[Function]bool{v.creator: true}
	heap.Push(&funcs, v.creator)

	for funcs.Len() > 0 {
		f := heap.Pop(&funcs).(Function)

		outputs := f.Outputs()
		gys := make([]*Variable, len(outputs))
		for i, y := range outputs {
			if y != nil {
				gys[i] = y.grad
			}
		}

		// Run the backward rule (and the accumulation below) with
		// recording forced to createGraph, so second derivatives can be
		// traced when requested and skipped when not.
		func() {
			defer UsingBackprop(cfg.createGraph)()

			gxs := f.Backward(gys...)
			inputs := f.Inputs()
			if len(gxs) != len(inputs) {
				panic(fmt.Sprintf("autodiff: %T backward returned %d gradients for %d inputs", f, len(gxs), len(inputs)))
			}

			for i, x := range inputs {
				gx := gxs[i]
				if gx == nil {
					continue // input does not participate (e.g. omitted bias)
				}
				if x.grad == nil {
					x.grad = gx
				} else {
					x.grad = Add(x.grad, gx)
				}
				if x.creator != nil && !seen[x.creator] {
					seen[x.creator] = true
					heap.Push(&funcs, x.creator)
				}
			}
		}()

		if !cfg.retainGrad {
			for _, y := range outputs {
				if y != nil {
					y.grad = nil
				}
			}
		}
	}
}

// functionHeap is a max-heap of operations keyed by generation.
type functionHeap []Function

func (h functionHeap) Len() int            { return len(h) }
func (h functionHeap) Less(i, j int) bool  { return h[i].Generation() > h[j].Generation() }
func (h functionHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *functionHeap) Push(x any) { *h = append(*h, x.(Function)) }
func (h *functionHeap) Pop() any {
	old := *h
	n := len(old)
	f := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return f
}

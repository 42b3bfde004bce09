package autodiff

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/junsu0302/Aria/internal/tensor"
)

// poolingOp is 2D max pooling. The forward pass records, for each
// output cell, the flat input index of the winning element. The
// gradient op receives a copy of that index map so the backward scatter
// and the double-backward replay reproduce the forward selection even
// when the graph between them has been unchained.
type poolingOp struct {
	Base
	kh, kw, stride, pad int

	indexes  []int
	inShape  tensor.Shape
	outShape tensor.Shape
}

func (op *poolingOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	x := xs[0]
	if x.Rank() != 4 {
		exceptions.Panicf("autodiff: Pooling expects rank-4 input, got rank %d", x.Rank())
	}
	n, c, h, w := x.Shape()[0], x.Shape()[1], x.Shape()[2], x.Shape()[3]
	oh := tensor.ConvOutSize(h, op.kh, op.stride, op.pad)
	ow := tensor.ConvOutSize(w, op.kw, op.stride, op.pad)

	op.inShape = x.Shape().Clone()
	op.outShape = tensor.Shape{n, c, oh, ow}
	op.indexes = make([]int, n*c*oh*ow)
	y := tensor.Zeros(op.outShape)

	out := 0
	for ni := 0; ni < n; ni++ {
		for ci := 0; ci < c; ci++ {
			base := (ni*c + ci) * h * w
			for ohi := 0; ohi < oh; ohi++ {
				for owi := 0; owi < ow; owi++ {
					best := math.Inf(-1)
					bestIdx := -1
					for khi := 0; khi < op.kh; khi++ {
						hi := ohi*op.stride + khi - op.pad
						if hi < 0 || hi >= h {
							continue
						}
						for kwi := 0; kwi < op.kw; kwi++ {
							wi := owi*op.stride + kwi - op.pad
							if wi < 0 || wi >= w {
								continue
							}
							idx := base + hi*w + wi
							if v := x.Data[idx]; v > best {
								best, bestIdx = v, idx
							}
						}
					}
					y.Data[out] = best
					op.indexes[out] = bestIdx
					out++
				}
			}
		}
	}
	return []*tensor.Array{y}
}

func (op *poolingOp) Backward(gys ...*Variable) []*Variable {
	gx := apply(&pooling2DGradOp{
		indexes:  op.indexes,
		inShape:  op.inShape,
		outShape: op.outShape,
	}, gys[0])
	return []*Variable{gx}
}

// Pooling applies 2D max pooling with a square kernel to x [N,C,H,W].
func Pooling(x any, kernelSize, stride, pad int) *Variable {
	return apply(&poolingOp{kh: kernelSize, kw: kernelSize, stride: stride, pad: pad}, x)
}

// pooling2DGradOp scatters an output gradient back to the pooled
// input positions recorded in the index map.
type pooling2DGradOp struct {
	Base
	indexes  []int
	inShape  tensor.Shape
	outShape tensor.Shape
}

func (op *pooling2DGradOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	gx := tensor.Zeros(op.inShape)
	for i, idx := range op.indexes {
		gx.Data[idx] += xs[0].Data[i]
	}
	return []*tensor.Array{gx}
}

func (op *pooling2DGradOp) Backward(gys ...*Variable) []*Variable {
	ggx := apply(&pooling2DWithIndexesOp{
		indexes:  op.indexes,
		inShape:  op.inShape,
		outShape: op.outShape,
	}, gys[0])
	return []*Variable{ggx}
}

// pooling2DWithIndexesOp replays a pooling selection: it gathers, from
// a full-size input, the elements the original forward pass picked.
type pooling2DWithIndexesOp struct {
	Base
	indexes  []int
	inShape  tensor.Shape
	outShape tensor.Shape
}

func (op *pooling2DWithIndexesOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	y := tensor.Zeros(op.outShape)
	for i, idx := range op.indexes {
		y.Data[i] = xs[0].Data[idx]
	}
	return []*tensor.Array{y}
}

func (op *pooling2DWithIndexesOp) Backward(gys ...*Variable) []*Variable {
	gx := apply(&pooling2DGradOp{
		indexes:  op.indexes,
		inShape:  op.inShape,
		outShape: op.outShape,
	}, gys[0])
	return []*Variable{gx}
}

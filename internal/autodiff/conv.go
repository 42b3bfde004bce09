package autodiff

import (
	"github.com/gomlx/exceptions"
	"github.com/junsu0302/Aria/internal/tensor"
)

// Convolutions are lowered to matrix products over im2col patch
// matrices. Gradient ops copy the geometry of the op they
// differentiate rather than holding a reference to it, so a graph can
// be unchained without breaking later backward passes.

type im2colOp struct {
	Base
	kh, kw, stride, pad int
	inShape             tensor.Shape
}

func (op *im2colOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	op.inShape = xs[0].Shape().Clone()
	col := tensor.Im2col(xs[0], op.kh, op.kw, op.stride, op.stride, op.pad, op.pad)
	return []*tensor.Array{col}
}

func (op *im2colOp) Backward(gys ...*Variable) []*Variable {
	gx := apply(&col2imOp{kh: op.kh, kw: op.kw, stride: op.stride, pad: op.pad, imgShape: op.inShape}, gys[0])
	return []*Variable{gx}
}

// Im2col extracts sliding kernel patches of x into a matrix of shape
// [N*OH*OW, C*KH*KW].
func Im2col(x any, kernelSize, stride, pad int) *Variable {
	return apply(&im2colOp{kh: kernelSize, kw: kernelSize, stride: stride, pad: pad}, x)
}

type col2imOp struct {
	Base
	kh, kw, stride, pad int
	imgShape            tensor.Shape
}

func (op *col2imOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	img := tensor.Col2im(xs[0], op.imgShape, op.kh, op.kw, op.stride, op.stride, op.pad, op.pad)
	return []*tensor.Array{img}
}

func (op *col2imOp) Backward(gys ...*Variable) []*Variable {
	gx := apply(&im2colOp{kh: op.kh, kw: op.kw, stride: op.stride, pad: op.pad}, gys[0])
	return []*Variable{gx}
}

// Col2im scatters patch matrix rows back into an image of imgShape,
// accumulating where patches overlap. It is the adjoint of Im2col.
func Col2im(x any, imgShape tensor.Shape, kernelSize, stride, pad int) *Variable {
	return apply(&col2imOp{kh: kernelSize, kw: kernelSize, stride: stride, pad: pad, imgShape: imgShape.Clone()}, x)
}

type conv2dOp struct {
	Base
	stride, pad int
}

func (op *conv2dOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	x, w := xs[0], xs[1]
	if x.Rank() != 4 || w.Rank() != 4 {
		exceptions.Panicf("autodiff: Conv2d expects rank-4 input and weight, got %d and %d", x.Rank(), w.Rank())
	}
	n, h, wd := x.Shape()[0], x.Shape()[2], x.Shape()[3]
	oc, kh, kw := w.Shape()[0], w.Shape()[2], w.Shape()[3]
	oh := tensor.ConvOutSize(h, kh, op.stride, op.pad)
	ow := tensor.ConvOutSize(wd, kw, op.stride, op.pad)

	col := tensor.Im2col(x, kh, kw, op.stride, op.stride, op.pad, op.pad)
	wm := tensor.Reshape(w, tensor.Shape{oc, w.Size() / oc})
	y := tensor.MatMul(col, tensor.Transpose(wm))
	if len(xs) == 3 && xs[2] != nil {
		y = tensor.Add(y, xs[2])
	}
	y = tensor.Reshape(y, tensor.Shape{n, oh, ow, oc})
	return []*tensor.Array{tensor.Transpose(y, 0, 3, 1, 2)}
}

func (op *conv2dOp) Backward(gys ...*Variable) []*Variable {
	x, w := op.inputs[0], op.inputs[1]
	gy := gys[0]
	h, wd := x.Shape()[2], x.Shape()[3]
	kh, kw := w.Shape()[2], w.Shape()[3]

	gx := Deconv2d(gy, w, nil, op.stride, op.pad, []int{h, wd})
	gw := applyN(&conv2dGradWOp{kh: kh, kw: kw, stride: op.stride, pad: op.pad}, x, gy)[0]
	gxs := []*Variable{gx, gw}
	if len(op.inputs) == 3 {
		if op.inputs[2].data == nil {
			gxs = append(gxs, nil)
		} else {
			gxs = append(gxs, Sum(gy, []int{0, 2, 3}, false))
		}
	}
	return gxs
}

// Conv2d applies a 2D convolution of x [N,C,H,W] with weight
// w [OC,C,KH,KW] and optional bias b [OC]. Pass nil for b to skip the
// bias term.
func Conv2d(x, w, b any, stride, pad int) *Variable {
	return apply(&conv2dOp{stride: stride, pad: pad}, x, w, b)
}

type deconv2dOp struct {
	Base
	stride, pad int
	outH, outW  int
}

func (op *deconv2dOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	x, w := xs[0], xs[1]
	n, c, h, wd := x.Shape()[0], x.Shape()[1], x.Shape()[2], x.Shape()[3]
	oc, kh, kw := w.Shape()[1], w.Shape()[2], w.Shape()[3]
	if op.outH == 0 {
		op.outH = tensor.DeconvOutSize(h, kh, op.stride, op.pad)
		op.outW = tensor.DeconvOutSize(wd, kw, op.stride, op.pad)
	}

	// Transposed convolution as the col2im adjoint: every input site
	// contributes a full kernel patch to the output image.
	xm := tensor.Reshape(tensor.Transpose(x, 0, 2, 3, 1), tensor.Shape{n * h * wd, c})
	wm := tensor.Reshape(w, tensor.Shape{c, oc * kh * kw})
	col := tensor.MatMul(xm, wm)
	img := tensor.Col2im(col, tensor.Shape{n, oc, op.outH, op.outW}, kh, kw, op.stride, op.stride, op.pad, op.pad)
	if len(xs) == 3 && xs[2] != nil {
		img = tensor.Add(img, tensor.Reshape(xs[2], tensor.Shape{1, oc, 1, 1}))
	}
	return []*tensor.Array{img}
}

func (op *deconv2dOp) Backward(gys ...*Variable) []*Variable {
	x, w := op.inputs[0], op.inputs[1]
	gy := gys[0]
	kh, kw := w.Shape()[2], w.Shape()[3]

	gx := Conv2d(gy, w, nil, op.stride, op.pad)
	gw := applyN(&conv2dGradWOp{kh: kh, kw: kw, stride: op.stride, pad: op.pad}, gy, x)[0]
	gxs := []*Variable{gx, gw}
	if len(op.inputs) == 3 {
		if op.inputs[2].data == nil {
			gxs = append(gxs, nil)
		} else {
			gxs = append(gxs, Sum(gy, []int{0, 2, 3}, false))
		}
	}
	return gxs
}

// Deconv2d applies a transposed 2D convolution of x [N,C,H,W] with
// weight w [C,OC,KH,KW] and optional bias b [OC]. outSize fixes the
// spatial output size [OH, OW]; pass nil to derive it from the
// geometry.
func Deconv2d(x, w, b any, stride, pad int, outSize []int) *Variable {
	op := &deconv2dOp{stride: stride, pad: pad}
	if outSize != nil {
		op.outH, op.outW = outSize[0], outSize[1]
	}
	return apply(op, x, w, b)
}

// conv2dGradWOp computes the weight gradient of a convolution from the
// convolution's input and its output gradient. It differentiates in
// turn, so second derivatives through Conv2d work.
type conv2dGradWOp struct {
	Base
	kh, kw, stride, pad int
}

func (op *conv2dGradWOp) Forward(xs ...*tensor.Array) []*tensor.Array {
	x, gy := xs[0], xs[1]
	c := x.Shape()[1]
	n, oc, oh, ow := gy.Shape()[0], gy.Shape()[1], gy.Shape()[2], gy.Shape()[3]

	col := tensor.Im2col(x, op.kh, op.kw, op.stride, op.stride, op.pad, op.pad)
	gym := tensor.Reshape(tensor.Transpose(gy, 0, 2, 3, 1), tensor.Shape{n * oh * ow, oc})
	gw := tensor.MatMul(tensor.Transpose(gym), col)
	return []*tensor.Array{tensor.Reshape(gw, tensor.Shape{oc, c, op.kh, op.kw})}
}

func (op *conv2dGradWOp) Backward(gys ...*Variable) []*Variable {
	x, gy := op.inputs[0], op.inputs[1]
	gw := gys[0]
	h, wd := x.Shape()[2], x.Shape()[3]

	gx := Deconv2d(gy, gw, nil, op.stride, op.pad, []int{h, wd})
	ggy := Conv2d(x, gw, nil, op.stride, op.pad)
	return []*Variable{gx, ggy}
}

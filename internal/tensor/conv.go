package tensor

import (
	"github.com/gomlx/exceptions"
)

// ConvOutSize returns the spatial output size of a convolution.
func ConvOutSize(inputSize, kernelSize, stride, pad int) int {
	return (inputSize+pad*2-kernelSize)/stride + 1
}

// DeconvOutSize returns the spatial output size of a transposed convolution.
func DeconvOutSize(inputSize, kernelSize, stride, pad int) int {
	return stride*(inputSize-1) + kernelSize - 2*pad
}

// Im2col lowers an image batch to a matrix of convolution windows.
//
// img has shape (N, C, H, W); the result has shape
// (N*OH*OW, C*KH*KW), one row per output position, one column per
// kernel-window element. Out-of-bounds positions read as zero padding.
func Im2col(img *Array, kh, kw, sh, sw, ph, pw int) *Array {
	if img.Rank() != 4 {
		exceptions.Panicf("tensor.Im2col: expected rank-4 input, got %s", img.Shape())
	}
	n, c, h, w := img.shape[0], img.shape[1], img.shape[2], img.shape[3]
	oh := ConvOutSize(h, kh, sh, ph)
	ow := ConvOutSize(w, kw, sw, pw)
	if oh <= 0 || ow <= 0 {
		exceptions.Panicf("tensor.Im2col: kernel (%d, %d) stride (%d, %d) pad (%d, %d) does not fit input %s",
			kh, kw, sh, sw, ph, pw, img.Shape())
	}

	out := Zeros(Shape{n * oh * ow, c * kh * kw})
	for ni := 0; ni < n; ni++ {
		for ohi := 0; ohi < oh; ohi++ {
			for owi := 0; owi < ow; owi++ {
				row := ((ni*oh+ohi)*ow + owi) * out.shape[1]
				for ci := 0; ci < c; ci++ {
					for khi := 0; khi < kh; khi++ {
						hi := khi + sh*ohi - ph
						if hi < 0 || hi >= h {
							continue
						}
						for kwi := 0; kwi < kw; kwi++ {
							wi := kwi + sw*owi - pw
							if wi < 0 || wi >= w {
								continue
							}
							col := (ci*kh+khi)*kw + kwi
							out.Data[row+col] = img.Data[((ni*c+ci)*h+hi)*w+wi]
						}
					}
				}
			}
		}
	}
	return out
}

// Col2im is the adjoint of Im2col: it scatters window-matrix values back
// into an image of the given shape, accumulating where windows overlap.
func Col2im(col *Array, imgShape Shape, kh, kw, sh, sw, ph, pw int) *Array {
	if len(imgShape) != 4 {
		exceptions.Panicf("tensor.Col2im: expected rank-4 image shape, got %s", imgShape)
	}
	n, c, h, w := imgShape[0], imgShape[1], imgShape[2], imgShape[3]
	oh := ConvOutSize(h, kh, sh, ph)
	ow := ConvOutSize(w, kw, sw, pw)
	if !col.Shape().Equal(Shape{n * oh * ow, c * kh * kw}) {
		exceptions.Panicf("tensor.Col2im: column shape %s does not match image %s with kernel (%d, %d)",
			col.Shape(), imgShape, kh, kw)
	}

	img := Zeros(imgShape)
	for ni := 0; ni < n; ni++ {
		for ohi := 0; ohi < oh; ohi++ {
			for owi := 0; owi < ow; owi++ {
				row := ((ni*oh+ohi)*ow + owi) * col.shape[1]
				for ci := 0; ci < c; ci++ {
					for khi := 0; khi < kh; khi++ {
						hi := khi + sh*ohi - ph
						if hi < 0 || hi >= h {
							continue
						}
						for kwi := 0; kwi < kw; kwi++ {
							wi := kwi + sw*owi - pw
							if wi < 0 || wi >= w {
								continue
							}
							idx := row + (ci*kh+khi)*kw + kwi
							img.Data[((ni*c+ci)*h+hi)*w+wi] += col.Data[idx]
						}
					}
				}
			}
		}
	}
	return img
}

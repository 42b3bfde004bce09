package tensor

import (
	"math"

	"github.com/gomlx/exceptions"
)

// reduce folds elements along the given axes with f, starting from init.
// A nil axes slice reduces over every axis.
func reduce(a *Array, axes []int, keepdims bool, init float64, f func(acc, x float64) float64) *Array {
	rank := a.Rank()
	reduced := make([]bool, rank)
	if axes == nil {
		for i := range reduced {
			reduced[i] = true
		}
	} else {
		for _, ax := range axes {
			reduced[normAxis(ax, rank)] = true
		}
	}

	outShape := Shape{}
	for d := 0; d < rank; d++ {
		if reduced[d] {
			if keepdims {
				outShape = append(outShape, 1)
			}
			continue
		}
		outShape = append(outShape, a.shape[d])
	}

	out := Full(outShape, init)
	outStrides := outShape.ComputeStrides()
	for i := range a.Data {
		rem := i
		flat := 0
		od := 0
		for d := 0; d < rank; d++ {
			coord := rem / a.strides[d]
			rem %= a.strides[d]
			if reduced[d] {
				if keepdims {
					od++
				}
				continue
			}
			flat += coord * outStrides[od]
			od++
		}
		out.Data[flat] = f(out.Data[flat], a.Data[i])
	}
	return out
}

// Sum reduces a by addition over the given axes (nil means all axes).
func Sum(a *Array, axes []int, keepdims bool) *Array {
	return reduce(a, axes, keepdims, 0, func(acc, x float64) float64 { return acc + x })
}

// Max reduces a by maximum over the given axes (nil means all axes).
func Max(a *Array, axes []int, keepdims bool) *Array {
	return reduce(a, axes, keepdims, math.Inf(-1), math.Max)
}

// Min reduces a by minimum over the given axes (nil means all axes).
func Min(a *Array, axes []int, keepdims bool) *Array {
	return reduce(a, axes, keepdims, math.Inf(1), math.Min)
}

// SumTo reduces a by addition down to the target shape, summing over the
// leading and broadcast (size 1) axes. It is the exact inverse of
// BroadcastTo on shapes.
func SumTo(a *Array, shape Shape) *Array {
	if a.shape.Equal(shape) {
		return a.Clone()
	}
	lead := a.Rank() - shape.Rank()
	if lead < 0 {
		exceptions.Panicf("tensor.SumTo: cannot reduce %s to larger-rank %s", a.shape, shape)
	}
	axes := make([]int, 0, a.Rank())
	for i := 0; i < lead; i++ {
		axes = append(axes, i)
	}
	for i, dim := range shape {
		switch {
		case dim == a.shape[lead+i]:
			// kept axis
		case dim == 1:
			axes = append(axes, lead+i)
		default:
			exceptions.Panicf("tensor.SumTo: cannot reduce %s to %s", a.shape, shape)
		}
	}
	summed := Sum(a, axes, true)
	return Reshape(summed, shape)
}

// LogSumExp computes log(sum(exp(a))) along the given axis with the usual
// max-shift stabilization, keeping the reduced dimension.
func LogSumExp(a *Array, axis int) *Array {
	m := Max(a, []int{axis}, true)
	shifted := Sub(a, m)
	s := Sum(Exp(shifted), []int{axis}, true)
	return Add(m, Log(s))
}

package tensor

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/junsu0302/Aria/internal/parallel"
)

// binary applies f elementwise over a and b under broadcasting.
func binary(a, b *Array, f func(x, y float64) float64) *Array {
	if a.shape.Equal(b.shape) {
		// Fast path: identical layouts, no index arithmetic.
		out := Zeros(a.shape)
		cfg := parallel.DefaultConfig()
		parallel.For(len(out.Data), func(i int) {
			out.Data[i] = f(a.Data[i], b.Data[i])
		}, cfg)
		return out
	}

	shape := BroadcastShapes(a.shape, b.shape)
	out := Zeros(shape)
	sa := broadcastStrides(a.shape, shape)
	sb := broadcastStrides(b.shape, shape)
	strides := shape.ComputeStrides()
	cfg := parallel.DefaultConfig()
	parallel.For(len(out.Data), func(i int) {
		ia, ib := 0, 0
		rem := i
		for d := 0; d < len(shape); d++ {
			coord := rem / strides[d]
			rem %= strides[d]
			ia += coord * sa[d]
			ib += coord * sb[d]
		}
		out.Data[i] = f(a.Data[ia], b.Data[ib])
	}, cfg)
	return out
}

// unary applies f to every element.
func unary(a *Array, f func(x float64) float64) *Array {
	out := Zeros(a.shape)
	cfg := parallel.DefaultConfig()
	parallel.For(len(out.Data), func(i int) {
		out.Data[i] = f(a.Data[i])
	}, cfg)
	return out
}

// Add returns a + b with broadcasting.
func Add(a, b *Array) *Array {
	return binary(a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b with broadcasting.
func Sub(a, b *Array) *Array {
	return binary(a, b, func(x, y float64) float64 { return x - y })
}

// Mul returns a * b with broadcasting.
func Mul(a, b *Array) *Array {
	return binary(a, b, func(x, y float64) float64 { return x * y })
}

// Div returns a / b with broadcasting.
func Div(a, b *Array) *Array {
	return binary(a, b, func(x, y float64) float64 { return x / y })
}

// Maximum returns the elementwise maximum of a and b with broadcasting.
func Maximum(a, b *Array) *Array {
	return binary(a, b, math.Max)
}

// Equal returns a 1/0 mask marking elements where a == b, with broadcasting.
func Equal(a, b *Array) *Array {
	return binary(a, b, func(x, y float64) float64 {
		if x == y {
			return 1
		}
		return 0
	})
}

// Neg returns -a.
func Neg(a *Array) *Array {
	return unary(a, func(x float64) float64 { return -x })
}

// Scale returns a * s for a scalar s.
func Scale(a *Array, s float64) *Array {
	return unary(a, func(x float64) float64 { return x * s })
}

// AddScalar returns a + s for a scalar s.
func AddScalar(a *Array, s float64) *Array {
	return unary(a, func(x float64) float64 { return x + s })
}

// Pow returns a ** c elementwise for a scalar exponent.
func Pow(a *Array, c float64) *Array {
	return unary(a, func(x float64) float64 { return math.Pow(x, c) })
}

// Exp returns e ** a elementwise.
func Exp(a *Array) *Array {
	return unary(a, math.Exp)
}

// Log returns the natural logarithm elementwise.
func Log(a *Array) *Array {
	return unary(a, math.Log)
}

// Sin returns the sine elementwise.
func Sin(a *Array) *Array {
	return unary(a, math.Sin)
}

// Cos returns the cosine elementwise.
func Cos(a *Array) *Array {
	return unary(a, math.Cos)
}

// Tanh returns the hyperbolic tangent elementwise.
func Tanh(a *Array) *Array {
	return unary(a, math.Tanh)
}

// MatMul computes the matrix product of two rank-2 arrays.
// Panics when either argument is not a matrix or the inner dimensions differ.
func MatMul(a, b *Array) *Array {
	if a.Rank() != 2 || b.Rank() != 2 {
		exceptions.Panicf("tensor.MatMul: expected rank-2 arrays, got %s and %s", a.shape, b.shape)
	}
	m, k := a.shape[0], a.shape[1]
	k2, n := b.shape[0], b.shape[1]
	if k != k2 {
		exceptions.Panicf("tensor.MatMul: inner dimensions do not match: %s x %s", a.shape, b.shape)
	}
	out := Zeros(Shape{m, n})
	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 1 // rows are coarse units of work
	parallel.For(m, func(i int) {
		row := a.Data[i*k : (i+1)*k]
		dst := out.Data[i*n : (i+1)*n]
		for p, av := range row {
			if av == 0 {
				continue
			}
			brow := b.Data[p*n : (p+1)*n]
			for j, bv := range brow {
				dst[j] += av * bv
			}
		}
	}, cfg)
	return out
}

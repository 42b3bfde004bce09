package autodiff

import (
	"github.com/junsu0302/Aria/internal/tensor"
)

// NumericalDiff approximates df/dx by central differences with the
// given eps. It perturbs one element at a time, so it is only suitable
// for checking analytic gradients on small inputs.
func NumericalDiff(f func(*Variable) *Variable, x *Variable, eps float64) *tensor.Array {
	grad := tensor.ZerosLike(x.data)
	for i := range x.data.Data {
		orig := x.data.Data[i]

		x.data.Data[i] = orig + eps
		y1 := f(x)
		x.data.Data[i] = orig - eps
		y0 := f(x)
		x.data.Data[i] = orig

		diff := tensor.Sub(y1.data, y0.data)
		var total float64
		for _, v := range diff.Data {
			total += v
		}
		grad.Data[i] = total / (2 * eps)
	}
	return grad
}

package autodiff

import (
	"math/rand"

	"github.com/junsu0302/Aria/internal/tensor"
)

// Dropout zeroes each element of x with probability ratio and scales
// the survivors by 1/(1-ratio) so the expectation is unchanged. In
// test mode (see TestMode) it is the identity.
func Dropout(x any, ratio float64) *Variable {
	xv := asVariable(x)
	if !TrainMode() {
		return xv
	}
	scale := 1 / (1 - ratio)
	mask := tensor.ZerosLike(xv.data)
	for i := range mask.Data {
		if rand.Float64() > ratio {
			mask.Data[i] = scale
		}
	}
	return Mul(xv, mask)
}

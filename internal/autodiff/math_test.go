package autodiff_test

import (
	"math"
	"testing"

	"github.com/junsu0302/Aria/internal/autodiff"
	"github.com/junsu0302/Aria/internal/tensor"
)

const gradTol = 1e-6

// checkGrad compares the analytic gradient of f at x against a central
// difference approximation.
func checkGrad(t *testing.T, f func(*autodiff.Variable) *autodiff.Variable, x *autodiff.Variable) {
	t.Helper()
	num := autodiff.NumericalDiff(f, x, 1e-4)

	x.Cleargrad()
	y := f(x)
	y.Backward()
	got := x.Grad().Data()

	if !got.Shape().Equal(x.Shape()) {
		t.Fatalf("grad shape = %v, want %v", got.Shape(), x.Shape())
	}
	for i := range num.Data {
		if diff := math.Abs(got.Data[i] - num.Data[i]); diff > gradTol*(1+math.Abs(num.Data[i])) {
			t.Fatalf("grad[%d] = %v, numerical %v", i, got.Data[i], num.Data[i])
		}
	}
}

// TestGradients_Elementwise tests analytic against numerical gradients
// for the elementwise operations.
func TestGradients_Elementwise(t *testing.T) {
	x := autodiff.NewVariable(tensor.FromSlice([]float64{0.3, -1.2, 2.1, 0.8}, 2, 2))
	tests := []struct {
		name string
		f    func(*autodiff.Variable) *autodiff.Variable
	}{
		{"Square", func(v *autodiff.Variable) *autodiff.Variable { return autodiff.Square(v) }},
		{"Exp", func(v *autodiff.Variable) *autodiff.Variable { return autodiff.Exp(v) }},
		{"Sin", func(v *autodiff.Variable) *autodiff.Variable { return autodiff.Sin(v) }},
		{"Cos", func(v *autodiff.Variable) *autodiff.Variable { return autodiff.Cos(v) }},
		{"Tanh", func(v *autodiff.Variable) *autodiff.Variable { return autodiff.Tanh(v) }},
		{"Neg", func(v *autodiff.Variable) *autodiff.Variable { return autodiff.Neg(v) }},
		{"Sigmoid", func(v *autodiff.Variable) *autodiff.Variable { return autodiff.Sigmoid(v) }},
		{"Pow3", func(v *autodiff.Variable) *autodiff.Variable { return autodiff.Pow(v, 3) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGrad(t, tt.f, x)
		})
	}
}

// TestGradients_LogReLU tests ops needing a constrained domain.
func TestGradients_LogReLU(t *testing.T) {
	pos := autodiff.NewVariable(tensor.FromSlice([]float64{0.5, 1.5, 2.5}, 3))
	checkGrad(t, func(v *autodiff.Variable) *autodiff.Variable { return autodiff.Log(v) }, pos)
	// keep values away from the ReLU kink
	checkGrad(t, func(v *autodiff.Variable) *autodiff.Variable { return autodiff.ReLU(v) },
		autodiff.NewVariable(tensor.FromSlice([]float64{-2, -0.5, 0.5, 2}, 4)))
}

// TestDiv_Backward tests the quotient rule on both operands.
func TestDiv_Backward(t *testing.T) {
	x0 := autodiff.NewVariable(tensor.Scalar(6))
	x1 := autodiff.NewVariable(tensor.Scalar(2))
	y := autodiff.Div(x0, x1)
	y.Backward()
	if got := x0.Grad().Data().Item(); got != 0.5 {
		t.Errorf("d(x0/x1)/dx0 = %v, want 0.5", got)
	}
	// -x0/x1^2 = -6/4
	if got := x1.Grad().Data().Item(); got != -1.5 {
		t.Errorf("d(x0/x1)/dx1 = %v, want -1.5", got)
	}
}

// TestSub_Backward tests the sign of the second operand's gradient.
func TestSub_Backward(t *testing.T) {
	x0 := autodiff.NewVariable(tensor.Scalar(5))
	x1 := autodiff.NewVariable(tensor.Scalar(3))
	y := autodiff.Sub(x0, x1)
	y.Backward()
	if x0.Grad().Data().Item() != 1 || x1.Grad().Data().Item() != -1 {
		t.Errorf("Sub grads = %v, %v, want 1, -1",
			x0.Grad().Data().Item(), x1.Grad().Data().Item())
	}
}

// TestScalarMix tests mixing Go scalars into operations.
func TestScalarMix(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(2))
	y := autodiff.Add(autodiff.Mul(x, 3.0), 1)
	if got := y.Data().Item(); got != 7 {
		t.Errorf("3x+1 at 2 = %v, want 7", got)
	}
	y.Backward()
	if got := x.Grad().Data().Item(); got != 3 {
		t.Errorf("d(3x+1)/dx = %v, want 3", got)
	}
}

// TestMatMul_Backward tests matrix product gradient shapes and values.
func TestMatMul_Backward(t *testing.T) {
	x := autodiff.NewVariable(tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3))
	w := autodiff.NewVariable(tensor.Ones(tensor.Shape{3, 4}))
	y := autodiff.MatMul(x, w)
	y.Backward()
	if !x.Grad().Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("gx shape = %v, want [2 3]", x.Grad().Shape())
	}
	if !w.Grad().Shape().Equal(tensor.Shape{3, 4}) {
		t.Fatalf("gw shape = %v, want [3 4]", w.Grad().Shape())
	}
	// gx = ones(2,4) @ ones(4,3) = 4 everywhere
	if got := x.Grad().Data().At(0, 0); got != 4 {
		t.Errorf("gx element = %v, want 4", got)
	}
	// gw row j = column sums of x
	if got := w.Grad().Data().At(0, 0); got != 5 {
		t.Errorf("gw element = %v, want 5", got)
	}
}

// TestLinear_Backward tests the fused affine op including a nil bias.
func TestLinear_Backward(t *testing.T) {
	x := autodiff.NewVariable(tensor.Ones(tensor.Shape{4, 3}))
	w := autodiff.NewVariable(tensor.Ones(tensor.Shape{3, 2}))
	b := autodiff.NewVariable(tensor.Zeros(tensor.Shape{2}))

	y := autodiff.Linear(x, w, b)
	if got := y.Data().At(0, 0); got != 3 {
		t.Errorf("linear output = %v, want 3", got)
	}
	y.Backward()
	// gb = column sums of gy = batch size
	if got := b.Grad().Data().Data[0]; got != 4 {
		t.Errorf("gb = %v, want 4", got)
	}

	y2 := autodiff.Linear(x, w, nil)
	if got := y2.Data().At(0, 0); got != 3 {
		t.Errorf("bias-free linear output = %v, want 3", got)
	}
	y2.Backward()
}

// TestMaxReduce_Backward tests that the gradient routes only to the
// winning elements.
func TestMaxReduce_Backward(t *testing.T) {
	x := autodiff.NewVariable(tensor.FromSlice([]float64{1, 5, 3, 2, 4, 6}, 2, 3))
	y := autodiff.MaxReduce(x, []int{1}, false)
	y.Backward()
	want := []float64{0, 1, 0, 0, 0, 1}
	for i := range want {
		if x.Grad().Data().Data[i] != want[i] {
			t.Fatalf("Max grad = %v, want %v", x.Grad().Data().Data, want)
		}
	}
}

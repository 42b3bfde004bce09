package autodiff_test

import (
	"testing"

	"github.com/junsu0302/Aria/internal/autodiff"
	"github.com/junsu0302/Aria/internal/tensor"
)

// TestAdd_BroadcastGrad tests that gradients of broadcast operands are
// reduced back to the operand shape.
func TestAdd_BroadcastGrad(t *testing.T) {
	x := autodiff.NewVariable(tensor.Ones(tensor.Shape{2, 3}))
	b := autodiff.NewVariable(tensor.FromSlice([]float64{1, 2, 3}, 3))
	y := autodiff.Add(x, b)
	y.Backward()

	if !x.Grad().Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("gx shape = %v, want [2 3]", x.Grad().Shape())
	}
	if !b.Grad().Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("gb shape = %v, want [3]", b.Grad().Shape())
	}
	for _, v := range b.Grad().Data().Data {
		if v != 2 {
			t.Errorf("gb = %v, want 2s (summed over the broadcast rows)", b.Grad().Data().Data)
		}
	}
}

// TestMul_BroadcastGrad tests broadcast reduction through a product.
func TestMul_BroadcastGrad(t *testing.T) {
	x := autodiff.NewVariable(tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3))
	s := autodiff.NewVariable(tensor.Scalar(2))
	y := autodiff.Mul(x, s)
	y.Backward()
	if !s.Grad().Shape().Equal(tensor.Shape{}) {
		t.Fatalf("gs shape = %v, want scalar", s.Grad().Shape())
	}
	// gs = sum(x) = 21
	if got := s.Grad().Data().Item(); got != 21 {
		t.Errorf("gs = %v, want 21", got)
	}
}

// TestBroadcastTo_SumTo_Backward tests that the two ops are each
// other's gradient.
func TestBroadcastTo_SumTo_Backward(t *testing.T) {
	x := autodiff.NewVariable(tensor.FromSlice([]float64{1, 2, 3}, 1, 3))
	y := autodiff.BroadcastTo(x, tensor.Shape{4, 3})
	y.Backward()
	if !x.Grad().Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("BroadcastTo grad shape = %v, want [1 3]", x.Grad().Shape())
	}
	for _, v := range x.Grad().Data().Data {
		if v != 4 {
			t.Errorf("BroadcastTo grad = %v, want 4s", x.Grad().Data().Data)
		}
	}

	z := autodiff.NewVariable(tensor.Ones(tensor.Shape{4, 3}))
	s := autodiff.SumTo(z, tensor.Shape{1, 3})
	s.Backward()
	if !z.Grad().Shape().Equal(tensor.Shape{4, 3}) {
		t.Fatalf("SumTo grad shape = %v, want [4 3]", z.Grad().Shape())
	}
}

// TestBroadcastTo_SameShape tests the recording short-circuit: a
// same-shape call adds no graph node.
func TestBroadcastTo_SameShape(t *testing.T) {
	x := autodiff.NewVariable(tensor.Ones(tensor.Shape{2, 3}))
	if y := autodiff.BroadcastTo(x, tensor.Shape{2, 3}); y.Creator() != nil {
		t.Error("same-shape BroadcastTo recorded an operation")
	}
	if y := autodiff.SumTo(x, tensor.Shape{2, 3}); y.Creator() != nil {
		t.Error("same-shape SumTo recorded an operation")
	}
}

// TestSum_Backward tests gradient expansion through axis reductions.
func TestSum_Backward(t *testing.T) {
	x := autodiff.NewVariable(tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3))
	y := autodiff.Sum(x, []int{0}, false)
	y.Backward()
	if !x.Grad().Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("Sum grad shape = %v, want [2 3]", x.Grad().Shape())
	}
	for _, v := range x.Grad().Data().Data {
		if v != 1 {
			t.Errorf("Sum grad = %v, want ones", x.Grad().Data().Data)
		}
	}

	x.Cleargrad()
	all := autodiff.SumAll(x)
	if all.Data().Item() != 21 {
		t.Errorf("SumAll = %v, want 21", all.Data().Item())
	}
	all.Backward()
	if !x.Grad().Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("SumAll grad shape = %v, want [2 3]", x.Grad().Shape())
	}
}

// TestReshape_Backward tests that gradients take the original shape,
// and that a same-shape reshape is not recorded.
func TestReshape_Backward(t *testing.T) {
	x := autodiff.NewVariable(tensor.Arange(0, 6))
	y := autodiff.Reshape(x, tensor.Shape{2, 3})
	y.Backward()
	if !x.Grad().Shape().Equal(tensor.Shape{6}) {
		t.Errorf("Reshape grad shape = %v, want [6]", x.Grad().Shape())
	}
	if z := autodiff.Reshape(x, tensor.Shape{6}); z.Creator() != nil {
		t.Error("same-shape Reshape recorded an operation")
	}
}

// TestTranspose_Backward tests the inverse-permutation gradient.
func TestTranspose_Backward(t *testing.T) {
	x := autodiff.NewVariable(tensor.Randn(tensor.Shape{2, 3, 4}))
	y := autodiff.Transpose(x, 1, 2, 0)
	if !y.Shape().Equal(tensor.Shape{3, 4, 2}) {
		t.Fatalf("Transpose shape = %v, want [3 4 2]", y.Shape())
	}
	y.Backward()
	if !x.Grad().Shape().Equal(tensor.Shape{2, 3, 4}) {
		t.Errorf("Transpose grad shape = %v, want [2 3 4]", x.Grad().Shape())
	}
}

// TestGetItem_Backward tests gather forward and scatter-accumulate
// backward with a repeated index.
func TestGetItem_Backward(t *testing.T) {
	x := autodiff.NewVariable(tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 3, 2))
	y := autodiff.GetItem(x, []int{2, 0, 2})
	if !y.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("GetItem shape = %v, want [3 2]", y.Shape())
	}
	if y.Data().At(0, 0) != 5 || y.Data().At(1, 1) != 2 {
		t.Errorf("GetItem data = %v", y.Data().Data)
	}

	y.Backward()
	g := x.Grad().Data()
	if g.At(2, 0) != 2 {
		t.Errorf("repeated row grad = %v, want accumulated 2", g.At(2, 0))
	}
	if g.At(1, 0) != 0 {
		t.Errorf("unselected row grad = %v, want 0", g.At(1, 0))
	}
}

// TestGetItem_DoubleBackward tests that the scatter op's gradient is
// the original gather.
func TestGetItem_DoubleBackward(t *testing.T) {
	x := autodiff.NewVariable(tensor.FromSlice([]float64{1, 2, 3, 4}, 2, 2))
	y := autodiff.GetItem(x, []int{1, 1})
	y.Backward(autodiff.CreateGraph())

	gx := x.Grad()
	x.Cleargrad()
	z := autodiff.SumAll(gx)
	z.Backward()
	// d(sum gx)/d(gy) gathered back: every selected row contributes 1
	if gx.Creator() == nil {
		t.Error("scatter gradient was not recorded under CreateGraph")
	}
}

package tensor_test

import (
	"testing"

	"github.com/junsu0302/Aria/internal/tensor"
)

// TestShape_NumElements tests element counting, including rank 0.
func TestShape_NumElements(t *testing.T) {
	if n := (tensor.Shape{2, 3, 4}).NumElements(); n != 24 {
		t.Errorf("NumElements() = %d, want 24", n)
	}
	if n := (tensor.Shape{}).NumElements(); n != 1 {
		t.Errorf("scalar NumElements() = %d, want 1", n)
	}
}

// TestShape_Validate tests rejection of non-positive dimensions.
func TestShape_Validate(t *testing.T) {
	if err := (tensor.Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate() accepted a zero dimension")
	}
	if err := (tensor.Shape{2, -1}).Validate(); err == nil {
		t.Error("Validate() accepted a negative dimension")
	}
	if err := (tensor.Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate() rejected a valid shape: %v", err)
	}
}

// TestComputeStrides tests row-major stride computation.
func TestComputeStrides(t *testing.T) {
	got := (tensor.Shape{2, 3, 4}).ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ComputeStrides() = %v, want %v", got, want)
		}
	}
}

// TestBroadcastShapes tests NumPy-style shape broadcasting.
func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want tensor.Shape
	}{
		{tensor.Shape{2, 3}, tensor.Shape{2, 3}, tensor.Shape{2, 3}},
		{tensor.Shape{2, 3}, tensor.Shape{3}, tensor.Shape{2, 3}},
		{tensor.Shape{2, 1}, tensor.Shape{1, 3}, tensor.Shape{2, 3}},
		{tensor.Shape{}, tensor.Shape{4}, tensor.Shape{4}},
	}
	for _, tt := range tests {
		got := tensor.BroadcastShapes(tt.a, tt.b)
		if !got.Equal(tt.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestBroadcastShapes_Incompatible tests that mismatched dims panic.
func TestBroadcastShapes_Incompatible(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("BroadcastShapes accepted incompatible shapes")
		}
	}()
	tensor.BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{4})
}

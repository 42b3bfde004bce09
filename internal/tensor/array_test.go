package tensor_test

import (
	"testing"

	"github.com/junsu0302/Aria/internal/tensor"
)

// TestNew tests construction and shape/data mismatch rejection.
func TestNew(t *testing.T) {
	a, err := tensor.New([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !a.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", a.Shape())
	}
	if _, err := tensor.New([]float64{1, 2}, tensor.Shape{2, 3}); err == nil {
		t.Error("New() accepted mismatched data length")
	}
}

// TestAtSet tests multi-dimensional indexing.
func TestAtSet(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{2, 3})
	a.Set(7, 1, 2)
	if got := a.At(1, 2); got != 7 {
		t.Errorf("At(1, 2) = %v, want 7", got)
	}
	if got := a.Data[5]; got != 7 {
		t.Errorf("flat Data[5] = %v, want 7", got)
	}
}

// TestClone tests that clones do not share buffers.
func TestClone(t *testing.T) {
	a := tensor.FromSlice([]float64{1, 2, 3}, 3)
	b := a.Clone()
	b.Data[0] = 99
	if a.Data[0] != 1 {
		t.Error("Clone() shares its data buffer with the original")
	}
}

// TestConstructors tests the value-filled constructors.
func TestConstructors(t *testing.T) {
	if got := tensor.Ones(tensor.Shape{2, 2}).Data[3]; got != 1 {
		t.Errorf("Ones element = %v, want 1", got)
	}
	if got := tensor.Full(tensor.Shape{3}, 2.5).Data[1]; got != 2.5 {
		t.Errorf("Full element = %v, want 2.5", got)
	}
	if got := tensor.Eye(3).At(1, 1); got != 1 {
		t.Errorf("Eye diagonal = %v, want 1", got)
	}
	if got := tensor.Eye(3).At(0, 2); got != 0 {
		t.Errorf("Eye off-diagonal = %v, want 0", got)
	}
	a := tensor.Arange(2, 6)
	if a.Size() != 4 || a.Data[0] != 2 || a.Data[3] != 5 {
		t.Errorf("Arange(2, 6) = %v", a.Data)
	}
}

// TestItem tests scalar extraction and its failure on larger arrays.
func TestItem(t *testing.T) {
	if got := tensor.Scalar(3.5).Item(); got != 3.5 {
		t.Errorf("Item() = %v, want 3.5", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("Item() accepted a multi-element array")
		}
	}()
	tensor.Ones(tensor.Shape{2}).Item()
}

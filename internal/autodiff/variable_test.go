package autodiff_test

import (
	"testing"

	"github.com/junsu0302/Aria/internal/autodiff"
	"github.com/junsu0302/Aria/internal/tensor"
)

// TestBackward_Square tests the simplest chain: d(x^2)/dx = 2x.
func TestBackward_Square(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(3))
	y := autodiff.Square(x)
	y.Backward()
	if got := x.Grad().Data().Item(); got != 6 {
		t.Errorf("d(x^2)/dx at 3 = %v, want 6", got)
	}
}

// TestBackward_Chain tests a composed chain (x^2)^2 through two ops.
func TestBackward_Chain(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(2))
	y := autodiff.Square(autodiff.Square(x))
	y.Backward()
	// d(x^4)/dx = 4x^3 = 32
	if got := x.Grad().Data().Item(); got != 32 {
		t.Errorf("d(x^4)/dx at 2 = %v, want 32", got)
	}
}

// TestBackward_Diamond tests gradient accumulation where one variable
// feeds two branches that later rejoin. Correct generation ordering is
// what makes the result exact rather than a partial sum.
func TestBackward_Diamond(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(2))
	a := autodiff.Square(x)
	y := autodiff.Add(autodiff.Square(a), autodiff.Square(a))
	y.Backward()
	// y = 2x^4, dy/dx = 8x^3 = 64
	if got := y.Data().Item(); got != 32 {
		t.Errorf("y = %v, want 32", got)
	}
	if got := x.Grad().Data().Item(); got != 64 {
		t.Errorf("dy/dx = %v, want 64", got)
	}
}

// TestBackward_SharedInput tests accumulation into a directly reused
// input: d(x+x)/dx = 2.
func TestBackward_SharedInput(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(3))
	y := autodiff.Add(autodiff.Add(x, x), x)
	y.Backward()
	if got := x.Grad().Data().Item(); got != 3 {
		t.Errorf("d(3x)/dx = %v, want 3", got)
	}
}

// TestBackward_ClearsIntermediateGrads tests that intermediate and
// output gradients are freed unless RetainGrad is given.
func TestBackward_ClearsIntermediateGrads(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(2))
	a := autodiff.Square(x)
	y := autodiff.Square(a)
	y.Backward()
	if a.Grad() != nil {
		t.Error("intermediate grad survived backward without RetainGrad")
	}
	if y.Grad() != nil {
		t.Error("output grad survived backward without RetainGrad")
	}
	if x.Grad() == nil {
		t.Fatal("leaf grad missing")
	}
}

// TestBackward_RetainGrad tests that RetainGrad keeps every gradient.
func TestBackward_RetainGrad(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(2))
	a := autodiff.Square(x)
	y := autodiff.Square(a)
	y.Backward(autodiff.RetainGrad())
	if a.Grad() == nil {
		t.Fatal("intermediate grad missing with RetainGrad")
	}
	// da carries d(a^2)/da = 2a = 8
	if got := a.Grad().Data().Item(); got != 8 {
		t.Errorf("intermediate grad = %v, want 8", got)
	}
	if y.Grad() == nil || y.Grad().Data().Item() != 1 {
		t.Error("output grad not retained as the seed")
	}
}

// TestBackward_NoCreator tests that backward on a leaf only seeds it.
func TestBackward_NoCreator(t *testing.T) {
	x := autodiff.NewVariable(tensor.FromSlice([]float64{1, 2}, 2))
	x.Backward()
	g := x.Grad()
	if g == nil {
		t.Fatal("leaf grad not seeded")
	}
	for _, v := range g.Data().Data {
		if v != 1 {
			t.Errorf("seed grad = %v, want ones", g.Data().Data)
		}
	}
}

// TestBackward_Repeated tests that grads accumulate across calls until
// cleared, then reset cleanly.
func TestBackward_Repeated(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(3))
	y := autodiff.Add(x, x)
	y.Backward()
	y2 := autodiff.Add(x, x)
	y2.Backward()
	if got := x.Grad().Data().Item(); got != 4 {
		t.Errorf("accumulated grad = %v, want 4", got)
	}
	x.Cleargrad()
	y3 := autodiff.Add(x, x)
	y3.Backward()
	if got := x.Grad().Data().Item(); got != 2 {
		t.Errorf("grad after Cleargrad = %v, want 2", got)
	}
}

// TestUnchainBackward tests truncating the upstream graph. The severed
// part must not receive gradients while the downstream part still does.
func TestUnchainBackward(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(2))
	a := autodiff.Square(x)
	y := autodiff.Square(a)

	y.UnchainBackward()
	if a.Creator() != nil {
		t.Error("upstream creator link survived UnchainBackward")
	}
	if y.Creator() == nil {
		t.Error("UnchainBackward severed the starting variable's own creator")
	}

	y.Backward()
	if a.Grad() == nil {
		t.Error("new leaf did not receive a gradient")
	}
	if x.Grad() != nil {
		t.Error("gradient flowed through an unchained edge")
	}
}

// TestGeneration tests generation stamping along a chain.
func TestGeneration(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(1))
	if x.Generation() != 0 {
		t.Errorf("leaf generation = %d, want 0", x.Generation())
	}
	a := autodiff.Square(x)
	b := autodiff.Square(a)
	if a.Generation() != 1 || b.Generation() != 2 {
		t.Errorf("generations = %d, %d, want 1, 2", a.Generation(), b.Generation())
	}
	// an op over mixed generations sits under the deepest input
	c := autodiff.Add(x, b)
	if c.Generation() != 3 {
		t.Errorf("mixed-input generation = %d, want 3", c.Generation())
	}
}

// TestNoGrad tests that recording stops inside a NoGrad scope and
// resumes after restore, including when the scope exits by panic.
func TestNoGrad(t *testing.T) {
	x := autodiff.NewVariable(tensor.Scalar(2))

	func() {
		defer autodiff.NoGrad()()
		y := autodiff.Square(x)
		if y.Creator() != nil {
			t.Error("operation recorded inside NoGrad")
		}
	}()
	if !autodiff.BackpropEnabled() {
		t.Error("recording not restored after NoGrad scope")
	}

	func() {
		defer func() { recover() }()
		defer autodiff.NoGrad()()
		panic("boom")
	}()
	if !autodiff.BackpropEnabled() {
		t.Error("recording not restored after panic inside NoGrad scope")
	}
}

// TestTestMode tests the train flag scope.
func TestTestMode(t *testing.T) {
	if !autodiff.TrainMode() {
		t.Fatal("train mode should be the default")
	}
	restore := autodiff.TestMode()
	if autodiff.TrainMode() {
		t.Error("TestMode did not clear the train flag")
	}
	restore()
	if !autodiff.TrainMode() {
		t.Error("restore did not reset the train flag")
	}
}

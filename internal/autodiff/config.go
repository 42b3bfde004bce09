package autodiff

// Process-wide mode flags. The engine is single-threaded by contract
// (see package doc); these are plain variables with scoped-restore helpers
// rather than synchronized state.
var config = struct {
	enableBackprop bool // record graph edges during apply
	train          bool // training mode, consumed by Dropout and friends
}{
	enableBackprop: true,
	train:          true,
}

// BackpropEnabled reports whether operations record graph edges.
func BackpropEnabled() bool {
	return config.enableBackprop
}

// TrainMode reports whether training mode is active.
func TrainMode() bool {
	return config.train
}

// UsingBackprop sets the gradient-recording flag and returns a restore
// closure. The intended usage restores the previous value on every exit
// path, including panics:
//
//	defer autodiff.UsingBackprop(false)()
func UsingBackprop(v bool) (restore func()) {
	prev := config.enableBackprop
	config.enableBackprop = v
	return func() { config.enableBackprop = prev }
}

// UsingTrain sets the training-mode flag and returns a restore closure.
func UsingTrain(v bool) (restore func()) {
	prev := config.train
	config.train = v
	return func() { config.train = prev }
}

// NoGrad disables gradient recording for the dynamic extent of the caller:
//
//	defer autodiff.NoGrad()()
//
// Operations invoked while the scope is active behave as plain numeric
// functions: no creator links, no generation stamping.
func NoGrad() (restore func()) {
	return UsingBackprop(false)
}

// TestMode disables training mode for the dynamic extent of the caller:
//
//	defer autodiff.TestMode()()
func TestMode() (restore func()) {
	return UsingTrain(false)
}

// Package nn provides layers built on the autodiff engine: trainable
// parameters, a composable layer container, and weight persistence.
package nn

import (
	"github.com/junsu0302/Aria/internal/autodiff"
	"github.com/junsu0302/Aria/internal/tensor"
)

// Parameter is a Variable that a layer owns and an optimizer updates.
// The distinct type is what lets layers tell trainable state apart
// from ordinary intermediate values.
type Parameter struct {
	*autodiff.Variable
}

// NewParameter wraps data as a named trainable parameter. data may be
// nil for parameters that are initialized lazily on the first forward
// pass.
func NewParameter(data *tensor.Array, name string) *Parameter {
	v := autodiff.NewVariable(data)
	v.Name = name
	return &Parameter{Variable: v}
}

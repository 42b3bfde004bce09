package nn

import (
	"github.com/junsu0302/Aria/internal/autodiff"
)

// Layer is a unit of a model: a forward computation plus the trainable
// parameters it owns, directly or through sublayers.
type Layer interface {
	Forward(x *autodiff.Variable) *autodiff.Variable

	// Visit calls fn for every parameter in registration order,
	// descending into sublayers. Names of nested parameters are
	// joined with "/".
	Visit(fn func(name string, p *Parameter))
}

// Base provides parameter and sublayer registration for concrete
// layers. Embed it and register state in the constructor; iteration
// order is registration order, so saved weight files are stable.
type Base struct {
	names  []string
	params map[string]*Parameter
	layers map[string]Layer
}

func (b *Base) register(name string) {
	if b.params == nil {
		b.params = map[string]*Parameter{}
		b.layers = map[string]Layer{}
	}
	b.names = append(b.names, name)
}

// RegisterParam adds a directly owned parameter under name.
func (b *Base) RegisterParam(name string, p *Parameter) {
	b.register(name)
	b.params[name] = p
}

// RegisterLayer adds a sublayer under name.
func (b *Base) RegisterLayer(name string, l Layer) {
	b.register(name)
	b.layers[name] = l
}

// Visit implements Layer.
func (b *Base) Visit(fn func(name string, p *Parameter)) {
	for _, name := range b.names {
		if p, ok := b.params[name]; ok {
			fn(name, p)
			continue
		}
		prefix := name
		b.layers[name].Visit(func(sub string, p *Parameter) {
			fn(prefix+"/"+sub, p)
		})
	}
}

// Params collects every parameter reachable from the layer. Lazily
// initialized parameters that have not materialized yet are skipped.
func Params(l Layer) []*Parameter {
	var ps []*Parameter
	l.Visit(func(_ string, p *Parameter) {
		if p.Data() != nil {
			ps = append(ps, p)
		}
	})
	return ps
}

// Cleargrads resets the gradients of every parameter of l.
func Cleargrads(l Layer) {
	for _, p := range Params(l) {
		p.Cleargrad()
	}
}

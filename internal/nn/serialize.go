package nn

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/junsu0302/Aria/internal/tensor"
)

type savedParam struct {
	Shape []int
	Data  []float64
}

// SaveWeights writes every materialized parameter of l to path. The
// file maps flattened parameter names to raw buffers, so a model can
// be rebuilt later and loaded by structure alone.
func SaveWeights(path string, l Layer) error {
	saved := map[string]savedParam{}
	l.Visit(func(name string, p *Parameter) {
		if p.Data() == nil {
			return
		}
		saved[name] = savedParam{Shape: p.Data().Shape(), Data: p.Data().Data}
	})

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating weight file %s", path)
	}
	if err := gob.NewEncoder(f).Encode(saved); err != nil {
		f.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			klog.Warningf("removing partial weight file %s: %v", path, rmErr)
		}
		return errors.Wrap(err, "encoding weights")
	}
	return errors.Wrapf(f.Close(), "closing weight file %s", path)
}

// LoadWeights reads weights saved by SaveWeights into l. Parameters
// present in the file overwrite the layer's current data; parameters
// missing from the file are left untouched and logged.
func LoadWeights(path string, l Layer) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening weight file %s", path)
	}
	defer f.Close()

	saved := map[string]savedParam{}
	if err := gob.NewDecoder(f).Decode(&saved); err != nil {
		return errors.Wrap(err, "decoding weights")
	}

	var loadErr error
	l.Visit(func(name string, p *Parameter) {
		if loadErr != nil {
			return
		}
		sp, ok := saved[name]
		if !ok {
			klog.Warningf("weight file %s has no entry for parameter %s", path, name)
			return
		}
		arr, err := tensor.New(sp.Data, sp.Shape)
		if err != nil {
			loadErr = errors.Wrapf(err, "restoring parameter %s", name)
			return
		}
		p.SetData(arr)
	})
	return loadErr
}

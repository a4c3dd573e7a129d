package nn

import (
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go-micrograd/autograd"
)


// MLP is a stack of fully connected layers.
type MLP struct {
	layers []*Layer
}


type mlpOptions struct {
	hidden Activation
	output *Activation
	init   Initializer
}

type Option func(*mlpOptions)

// activation for every layer except the last (default tanh)
func WithActivation(a Activation) Option {
	return func(o *mlpOptions) { o.hidden = a }
}

// activation for the last layer; without it the last layer uses the hidden activation
func WithOutputActivation(a Activation) Option {
	return func(o *mlpOptions) { o.output = &a }
}

func WithInitializer(init Initializer) Option {
	return func(o *mlpOptions) { o.init = init }
}


// NewMLP builds layers of sizes nin -> nouts[0] -> ... -> nouts[len-1].
// weights and biases default to uniform [-1, 1] seeded from the clock.
func NewMLP(nin int, nouts []int, opts ...Option) (*MLP, error) {
	if len(nouts) == 0 {
		return nil, errors.New("mlp: at least one layer size is required")
	}
	o := mlpOptions{hidden: Tanh}
	for _, opt := range opts {
		opt(&o)
	}
	if o.init == nil {
		o.init = NewUniformInitializer(-1, 1, uint64(time.Now().UnixNano()))
	}

	sizes := append([]int{nin}, nouts...)
	layers := make([]*Layer, len(nouts))
	for i := range nouts {
		act := o.hidden
		if i == len(nouts)-1 && o.output != nil {
			act = *o.output
		}
		l, err := NewLayer(sizes[i], sizes[i+1], act, o.init)
		if err != nil {
			return nil, errors.Wrapf(err, "mlp: layer %d", i)
		}
		layers[i] = l
	}
	return &MLP{layers: layers}, nil
}


// Forward runs x through every layer.
func (m *MLP) Forward(x []*autograd.Value) ([]*autograd.Value, error) {
	var err error
	for i, l := range m.layers {
		x, err = l.Forward(x)
		if err != nil {
			return nil, errors.Wrapf(err, "mlp: layer %d", i)
		}
	}
	return x, nil
}

// Predict lifts raw inputs to leaves and runs Forward.
func (m *MLP) Predict(x []float64) ([]*autograd.Value, error) {
	return m.Forward(FromFloats(x))
}

func (m *MLP) Parameters() []*autograd.Value {
	return lo.FlatMap(m.layers, func(l *Layer, _ int) []*autograd.Value {
		return l.Parameters()
	})
}

func (m *MLP) ZeroGrad() {
	for _, l := range m.layers {
		l.ZeroGrad()
	}
}

func (m *MLP) Name() string { return "MLP" }

func (m *MLP) Layers() []*Layer { return m.layers }



// FromFloats lifts plain numbers to graph leaves.
func FromFloats(xs []float64) []*autograd.Value {
	return lo.Map(xs, func(x float64, _ int) *autograd.Value {
		return autograd.NewValue(x)
	})
}

// Floats reads the forward values back out.
func Floats(vs []*autograd.Value) []float64 {
	return lo.Map(vs, func(v *autograd.Value, _ int) float64 {
		return v.Data()
	})
}
